// SPDX-License-Identifier: MPL-2.0

package runc

import "time"

type (
	// Container is one entry of the runtime's "list" output.
	Container struct {
		ID          string            `json:"id"`
		Pid         int               `json:"pid"`
		Status      string            `json:"status"`
		Bundle      string            `json:"bundle"`
		Rootfs      string            `json:"rootfs"`
		Created     time.Time         `json:"created"`
		Annotations map[string]string `json:"annotations,omitempty"`
	}

	// State is the runtime's "state" document for one container.
	State struct {
		Version     string            `json:"ociVersion"`
		ID          string            `json:"id"`
		Status      string            `json:"status"`
		Pid         int               `json:"pid"`
		Bundle      string            `json:"bundle"`
		Rootfs      string            `json:"rootfs"`
		Created     time.Time         `json:"created"`
		Annotations map[string]string `json:"annotations,omitempty"`
	}

	// Event is one entry of the runtime's "events" stream.
	Event struct {
		Type  string `json:"type"`
		ID    string `json:"id"`
		Stats *Stats `json:"data,omitempty"`
	}

	// Stats carries the resource statistics reported by "events --stats".
	Stats struct {
		CPU    CPUStats    `json:"cpu"`
		Memory MemoryStats `json:"memory"`
		Pids   PidsStats   `json:"pids"`
	}

	// CPUStats is the cpu section of Stats.
	CPUStats struct {
		Usage CPUUsage `json:"usage"`
	}

	// CPUUsage holds cumulative cpu time in nanoseconds.
	CPUUsage struct {
		Total  uint64   `json:"total"`
		Kernel uint64   `json:"kernel"`
		User   uint64   `json:"user"`
		PerCPU []uint64 `json:"percpu,omitempty"`
	}

	// MemoryStats is the memory section of Stats.
	MemoryStats struct {
		Usage MemoryEntry `json:"usage"`
		Swap  MemoryEntry `json:"swap"`
	}

	// MemoryEntry holds one memory counter group in bytes.
	MemoryEntry struct {
		Limit   uint64 `json:"limit"`
		Usage   uint64 `json:"usage"`
		Max     uint64 `json:"max"`
		Failcnt uint64 `json:"failcnt"`
	}

	// PidsStats is the pids section of Stats.
	PidsStats struct {
		Current uint64 `json:"current"`
		Limit   uint64 `json:"limit"`
	}

	// Version reports the runtime binary's version information.
	Version struct {
		Runc   string
		Spec   string
		Commit string
	}
)
