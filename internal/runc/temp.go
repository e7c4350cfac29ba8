// SPDX-License-Identifier: MPL-2.0

package runc

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// specFileDir is the runtime-private subdirectory spec documents are
// written into. It lives under the client's root when one is configured so
// the files share the runtime state's lifetime and permissions.
const specFileDir = "runcshim"

// writeSpecFile serializes v as JSON into a uniquely named file under the
// runtime-private directory and returns its path. The file must outlive
// the invocation that consumes it; callers remove it afterwards.
func (r *Runc) writeSpecFile(v any, pattern string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", &SpecFileError{Err: err}
	}

	base := r.root
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, specFileDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", &SpecFileError{Err: err}
	}

	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", &SpecFileError{Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", &SpecFileError{Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", &SpecFileError{Err: err}
	}
	return f.Name(), nil
}
