// SPDX-License-Identifier: MPL-2.0

package runc

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSpawn is the sentinel error wrapped by SpawnError.
	ErrSpawn = errors.New("runtime binary could not be started")

	// ErrCommand is the sentinel error wrapped by CommandError.
	ErrCommand = errors.New("runtime command failed to complete")

	// ErrCommandFailed is the sentinel error wrapped by ExitError.
	ErrCommandFailed = errors.New("runtime command returned non-zero exit status")

	// ErrTimeout is the sentinel error wrapped by TimeoutError.
	ErrTimeout = errors.New("runtime command timed out")

	// ErrDecode is the sentinel error wrapped by DecodeError.
	ErrDecode = errors.New("runtime output could not be decoded")

	// ErrSpecFile is the sentinel error wrapped by SpecFileError.
	ErrSpecFile = errors.New("spec file could not be written")

	// ErrMissingStats is returned when an events query yields no statistics.
	ErrMissingStats = errors.New("runtime returned no container statistics")

	// ErrNotImplemented is the sentinel error wrapped by NotImplementedError.
	ErrNotImplemented = errors.New("not implemented")
)

type (
	// SpawnError is returned when the runtime binary cannot be started at
	// all (missing binary, exec permission denied).
	SpawnError struct {
		Err error
	}

	// CommandError is returned when the runtime binary started but waiting
	// on it or communicating with it failed.
	CommandError struct {
		Err error
	}

	// ExitError is returned when the runtime binary ran to completion with
	// a non-zero exit status. Both captured streams are carried verbatim so
	// the runtime's own complaint is never lost, regardless of whether the
	// caller asked for combined output.
	ExitError struct {
		Status ExitCode
		Stdout string
		Stderr string
	}

	// TimeoutError is returned when a context-scheduled invocation did not
	// complete within the configured timeout. It is distinct from ExitError
	// so callers can tell "ran and failed" from "never completed".
	TimeoutError struct {
		Timeout time.Duration
	}

	// DecodeError is returned when captured output expected to be
	// machine-readable did not parse.
	DecodeError struct {
		Err error
	}

	// SpecFileError is returned when an auxiliary spec document could not
	// be serialized to the runtime-private directory.
	SpecFileError struct {
		Err error
	}

	// NotImplementedError is returned by lifecycle verbs that are stubbed.
	// It marks a capability gap, not a runtime failure.
	NotImplementedError struct {
		Verb string
	}
)

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn runtime binary: %v", e.Err)
}

// Unwrap returns the underlying OS error joined with ErrSpawn.
func (e *SpawnError) Unwrap() []error { return []error{ErrSpawn, e.Err} }

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("runtime command failed: %v", e.Err)
}

// Unwrap returns the underlying error joined with ErrCommand.
func (e *CommandError) Unwrap() []error { return []error{ErrCommand, e.Err} }

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("runtime exited with status %d: stdout: %q, stderr: %q",
		e.Status, e.Stdout, e.Stderr)
}

// Unwrap returns ErrCommandFailed so callers can use errors.Is for
// programmatic detection.
func (e *ExitError) Unwrap() error { return ErrCommandFailed }

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("runtime command did not complete within %s", e.Timeout)
}

// Unwrap returns ErrTimeout for errors.Is() compatibility.
func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode runtime output: %v", e.Err)
}

// Unwrap returns the underlying decode error joined with ErrDecode.
func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// Error implements the error interface.
func (e *SpecFileError) Error() string {
	return fmt.Sprintf("failed to write spec file: %v", e.Err)
}

// Unwrap returns the underlying error joined with ErrSpecFile.
func (e *SpecFileError) Unwrap() []error { return []error{ErrSpecFile, e.Err} }

// Error implements the error interface.
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%q is not implemented", e.Verb)
}

// Unwrap returns ErrNotImplemented for errors.Is() compatibility.
func (e *NotImplementedError) Unwrap() error { return ErrNotImplemented }
