// SPDX-License-Identifier: MPL-2.0

// Package oci holds the subset of the OCI runtime-spec documents this shim
// serializes for the runtime binary: the process document passed to "exec"
// and the resource document passed to "update".
package oci

type (
	// Process describes a process to run inside a container.
	Process struct {
		Terminal bool     `json:"terminal,omitempty"`
		User     User     `json:"user"`
		Args     []string `json:"args,omitempty"`
		Env      []string `json:"env,omitempty"`
		Cwd      string   `json:"cwd"`
	}

	// User specifies the uid/gid the process runs as.
	User struct {
		UID            uint32   `json:"uid"`
		GID            uint32   `json:"gid"`
		AdditionalGids []uint32 `json:"additionalGids,omitempty"`
	}

	// LinuxResources is the resource-limit document for "update".
	LinuxResources struct {
		Memory *LinuxMemory `json:"memory,omitempty"`
		CPU    *LinuxCPU    `json:"cpu,omitempty"`
		Pids   *LinuxPids   `json:"pids,omitempty"`
	}

	// LinuxMemory limits memory usage in bytes.
	LinuxMemory struct {
		Limit       *int64 `json:"limit,omitempty"`
		Reservation *int64 `json:"reservation,omitempty"`
		Swap        *int64 `json:"swap,omitempty"`
	}

	// LinuxCPU limits cpu usage.
	LinuxCPU struct {
		Shares *uint64 `json:"shares,omitempty"`
		Quota  *int64  `json:"quota,omitempty"`
		Period *uint64 `json:"period,omitempty"`
		Cpus   string  `json:"cpus,omitempty"`
	}

	// LinuxPids limits the number of processes.
	LinuxPids struct {
		Limit int64 `json:"limit"`
	}
)
