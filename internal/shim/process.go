// SPDX-License-Identifier: MPL-2.0

// Package shim owns the process registry of one container: the primary
// process plus any number of exec processes, and the routing of lifecycle
// requests onto them. The OS-level process wrappers themselves are
// collaborators implementing the Process interface; this package never
// reaches into their state machines.
package shim

import (
	"context"
	"time"
)

// Stdio names the endpoints a process's standard streams are wired to.
// Terminal marks processes that requested a pty instead of pipes.
type Stdio struct {
	Stdin    string
	Stdout   string
	Stderr   string
	Terminal bool
}

// Process is one supervised OS process: a container's init process or an
// exec'd secondary process. Implementations carry their own internal
// synchronization; the registry only serializes lookups.
type Process interface {
	// ID returns the process id within the container (the container id for
	// the primary process, the exec id otherwise).
	ID() string
	// Pid returns the OS pid, or zero before the process has started.
	Pid() int
	// ExitStatus returns the exit status captured when the process exited.
	ExitStatus() int
	// ExitedAt returns the time the process exited, or the zero time while
	// it is still running.
	ExitedAt() time.Time
	// Start starts the process.
	Start(ctx context.Context) error
	// Delete tears down the process and its OS-level resources.
	Delete(ctx context.Context) error
	// Kill delivers a signal to the process, or to its whole process group
	// when all is set.
	Kill(ctx context.Context, sig uint32, all bool) error
	// Stdio returns the stream wiring the process was created with.
	Stdio() Stdio
}
