// SPDX-License-Identifier: MPL-2.0

package shim

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// optionsFilename is the per-bundle options document.
	optionsFilename = "options.toml"
	// runtimeFilename holds just the runtime binary name in plain text.
	runtimeFilename = "runtime"
)

// Options is the small per-container document written into the bundle
// directory at create time and read back on later operations against the
// same bundle.
type Options struct {
	// BinaryName is the runtime binary used for this container.
	BinaryName string `toml:"binary_name"`
	// Root is the runtime root directory for this container's state.
	Root string `toml:"root"`
	// SystemdCgroup records whether the systemd cgroup manager is used.
	SystemdCgroup bool `toml:"systemd_cgroup"`
	// CriuPath is kept for compatibility; checkpoint/restore is not
	// implemented.
	CriuPath string `toml:"criu_path,omitempty"`
}

// ReadOptions reads the bundle's options document. A missing file is not
// an error: it returns (nil, nil) and callers fall back to defaults. A
// present file is honored verbatim.
func ReadOptions(bundle string) (*Options, error) {
	data, err := os.ReadFile(filepath.Join(bundle, optionsFilename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var opts Options
	if err := toml.Unmarshal(data, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// WriteOptions writes the bundle's options document, readable only by the
// shim's user.
func WriteOptions(bundle string, opts *Options) error {
	data, err := toml.Marshal(opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(bundle, optionsFilename), data, 0o600)
}

// ReadRuntime reads the bundle's plain-text runtime-name file.
func ReadRuntime(bundle string) (string, error) {
	data, err := os.ReadFile(filepath.Join(bundle, runtimeFilename))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteRuntime writes the bundle's plain-text runtime-name file.
func WriteRuntime(bundle, runtime string) error {
	return os.WriteFile(filepath.Join(bundle, runtimeFilename), []byte(runtime), 0o600)
}
