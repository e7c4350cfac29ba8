// SPDX-License-Identifier: MPL-2.0

package shim

import "time"

type (
	// CreateRequest carries everything needed to create a container's
	// primary process. It is the value-object form of the transport
	// layer's create call; this package does not parse the wire protocol.
	CreateRequest struct {
		ID       string
		Bundle   string
		Terminal bool
		Stdin    string
		Stdout   string
		Stderr   string
	}

	// StartRequest targets the primary process (empty ExecID) or an exec
	// process.
	StartRequest struct {
		ID     string
		ExecID string
	}

	// DeleteRequest targets the primary process (empty ExecID) or an exec
	// process.
	DeleteRequest struct {
		ID     string
		ExecID string
	}

	// DeleteResponse reports the final observable state of the deleted
	// process.
	DeleteResponse struct {
		Pid        int
		ExitStatus int
		ExitedAt   time.Time
	}

	// KillRequest delivers a signal to one process, or to every process in
	// the container when All is set.
	KillRequest struct {
		ID     string
		ExecID string
		Signal uint32
		All    bool
	}

	// ExecRequest registers a new exec process under ExecID.
	ExecRequest struct {
		ID       string
		ExecID   string
		Terminal bool
		Stdin    string
		Stdout   string
		Stderr   string
	}
)
