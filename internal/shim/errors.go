// SPDX-License-Identifier: MPL-2.0

package shim

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the sentinel error wrapped by NotFoundError.
	ErrNotFound = errors.New("process not found")

	// ErrNotImplemented is the sentinel error wrapped by
	// NotImplementedError.
	ErrNotImplemented = errors.New("not implemented")
)

type (
	// NotFoundError is returned when a registry lookup by id fails.
	NotFoundError struct {
		ID string
	}

	// NotImplementedError is returned by lifecycle verbs whose
	// implementation belongs to the process-wrapper collaborator and has
	// not been supplied. It marks a capability gap, not an outage.
	NotImplementedError struct {
		Verb string
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("process %q not found", e.ID)
}

// Unwrap returns ErrNotFound so callers can use errors.Is for programmatic
// detection.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface.
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%q is not implemented", e.Verb)
}

// Unwrap returns ErrNotImplemented for errors.Is() compatibility.
func (e *NotImplementedError) Unwrap() error { return ErrNotImplemented }
