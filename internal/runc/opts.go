// SPDX-License-Identifier: MPL-2.0

package runc

// CreateOpts holds the verb-specific flags for "create" and "run".
type CreateOpts struct {
	// PidFile is where the runtime writes the init pid. Resolved to an
	// absolute path before use.
	PidFile string
	// ConsoleSocket is the unix socket the runtime sends the pty master to
	// when the process requests a terminal.
	ConsoleSocket string
	// Detach leaves the container running in the background.
	Detach bool
	// NoPivot disables pivot_root (for initramfs-style root filesystems).
	NoPivot bool
	// NoNewKeyring keeps the container in the calling process's session
	// keyring.
	NoNewKeyring bool
}

func (o *CreateOpts) args() ([]string, error) {
	var args []string
	if o.PidFile != "" {
		abs, err := absPath(o.PidFile)
		if err != nil {
			return nil, err
		}
		args = append(args, "--pid-file", abs)
	}
	if o.ConsoleSocket != "" {
		args = append(args, "--console-socket", o.ConsoleSocket)
	}
	if o.Detach {
		args = append(args, "--detach")
	}
	if o.NoPivot {
		args = append(args, "--no-pivot")
	}
	if o.NoNewKeyring {
		args = append(args, "--no-new-keyring")
	}
	return args, nil
}

// ExecOpts holds the verb-specific flags for "exec".
type ExecOpts struct {
	PidFile       string
	ConsoleSocket string
	Detach        bool
}

func (o *ExecOpts) args() ([]string, error) {
	var args []string
	if o.PidFile != "" {
		abs, err := absPath(o.PidFile)
		if err != nil {
			return nil, err
		}
		args = append(args, "--pid-file", abs)
	}
	if o.ConsoleSocket != "" {
		args = append(args, "--console-socket", o.ConsoleSocket)
	}
	if o.Detach {
		args = append(args, "--detach")
	}
	return args, nil
}

// DeleteOpts holds the verb-specific flags for "delete".
type DeleteOpts struct {
	// Force deletes the container even if it is still running.
	Force bool
}

func (o *DeleteOpts) args() []string {
	if o.Force {
		return []string{"--force"}
	}
	return nil
}

// KillOpts holds the verb-specific flags for "kill".
type KillOpts struct {
	// All delivers the signal to every process in the container, not just
	// the init process.
	All bool
}

func (o *KillOpts) args() []string {
	if o.All {
		return []string{"--all"}
	}
	return nil
}
