// SPDX-License-Identifier: MPL-2.0

package runc

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"runcshim/internal/oci"
)

// Create creates a new container from the bundle at the given path.
//
// Generated command: <runtime> [global] create --bundle <abs-bundle> [opts] <id>
func (r *Runc) Create(ctx context.Context, id, bundle string, opts *CreateOpts) (*Response, error) {
	abs, err := absPath(bundle)
	if err != nil {
		return nil, err
	}
	args := []string{"create", "--bundle", abs}
	if opts != nil {
		oa, err := opts.args()
		if err != nil {
			return nil, err
		}
		args = append(args, oa...)
	}
	args = append(args, id)
	return r.CommandContext(ctx, args, true)
}

// Start starts an already created container.
func (r *Runc) Start(ctx context.Context, id string) (*Response, error) {
	return r.CommandContext(ctx, []string{"start", id}, true)
}

// Run creates, starts and waits on a container in one invocation.
//
// Generated command: <runtime> [global] run --bundle <abs-bundle> [opts] <id>
func (r *Runc) Run(ctx context.Context, id, bundle string, opts *CreateOpts) (*Response, error) {
	abs, err := absPath(bundle)
	if err != nil {
		return nil, err
	}
	args := []string{"run", "--bundle", abs}
	if opts != nil {
		oa, err := opts.args()
		if err != nil {
			return nil, err
		}
		args = append(args, oa...)
	}
	args = append(args, id)
	return r.CommandContext(ctx, args, true)
}

// Delete deletes a container and its runtime state.
func (r *Runc) Delete(ctx context.Context, id string, opts *DeleteOpts) (*Response, error) {
	args := []string{"delete"}
	if opts != nil {
		args = append(args, opts.args()...)
	}
	args = append(args, id)
	return r.CommandContext(ctx, args, true)
}

// Kill sends a signal to the container's processes.
func (r *Runc) Kill(ctx context.Context, id string, sig uint32, opts *KillOpts) error {
	args := []string{"kill"}
	if opts != nil {
		args = append(args, opts.args()...)
	}
	args = append(args, id, strconv.FormatUint(uint64(sig), 10))
	_, err := r.CommandContext(ctx, args, true)
	return err
}

// Exec runs an additional process inside the container. The process
// document is serialized to a spec file that outlives the invocation.
func (r *Runc) Exec(ctx context.Context, id string, spec *oci.Process, opts *ExecOpts) error {
	file, err := r.writeSpecFile(spec, "runc-process")
	if err != nil {
		return err
	}
	defer os.Remove(file)

	args := []string{"exec", "--process", file}
	if opts != nil {
		oa, err := opts.args()
		if err != nil {
			return err
		}
		args = append(args, oa...)
	}
	args = append(args, id)
	_, err = r.CommandContext(ctx, args, true)
	return err
}

// Update applies a new resource-limit document to a running container.
func (r *Runc) Update(ctx context.Context, id string, resources *oci.LinuxResources) error {
	file, err := r.writeSpecFile(resources, "runc-resources")
	if err != nil {
		return err
	}
	defer os.Remove(file)

	_, err = r.CommandContext(ctx, []string{"update", "--resources", file, id}, true)
	return err
}

// Pause suspends every process in the container.
func (r *Runc) Pause(ctx context.Context, id string) error {
	_, err := r.CommandContext(ctx, []string{"pause", id}, true)
	return err
}

// Resume resumes a paused container.
func (r *Runc) Resume(ctx context.Context, id string) error {
	_, err := r.CommandContext(ctx, []string{"resume", id}, true)
	return err
}

// List returns every container known to this runtime root.
func (r *Runc) List(ctx context.Context) ([]Container, error) {
	res, err := r.CommandContext(ctx, []string{"list", "--format-json"}, false)
	if err != nil {
		return nil, err
	}
	var out []Container
	if err := decodeMaybeNull(res.Output, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ps returns the pids of every process inside the container.
func (r *Runc) Ps(ctx context.Context, id string) ([]int, error) {
	res, err := r.CommandContext(ctx, []string{"ps", "--format-json", id}, false)
	if err != nil {
		return nil, err
	}
	var pids []int
	if err := decodeMaybeNull(res.Output, &pids); err != nil {
		return nil, err
	}
	return pids, nil
}

// State returns the runtime's state document for the container.
func (r *Runc) State(ctx context.Context, id string) (*State, error) {
	res, err := r.CommandContext(ctx, []string{"state", id}, true)
	if err != nil {
		return nil, err
	}
	var state State
	if err := json.Unmarshal([]byte(res.Output), &state); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &state, nil
}

// Stats returns the latest resource statistics for the container.
func (r *Runc) Stats(ctx context.Context, id string) (*Stats, error) {
	res, err := r.CommandContext(ctx, []string{"events", "--stats", id}, true)
	if err != nil {
		return nil, err
	}
	var event Event
	if err := json.Unmarshal([]byte(res.Output), &event); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if event.Stats == nil {
		return nil, ErrMissingStats
	}
	return event.Stats, nil
}

// RuncVersion reports the runtime binary's version information.
func (r *Runc) RuncVersion(ctx context.Context) (Version, error) {
	res, err := r.CommandContext(ctx, []string{"--version"}, false)
	if err != nil {
		return Version{}, err
	}
	return parseVersion(res.Output), nil
}

// Events would stream container notifications; the streaming surface is
// not implemented.
func (r *Runc) Events(ctx context.Context, id string) error {
	return &NotImplementedError{Verb: "events"}
}

// Checkpoint is not implemented.
func (r *Runc) Checkpoint(ctx context.Context, id string) error {
	return &NotImplementedError{Verb: "checkpoint"}
}

// Restore is not implemented.
func (r *Runc) Restore(ctx context.Context, id string) error {
	return &NotImplementedError{Verb: "restore"}
}

// decodeMaybeNull decodes the stdout of a query verb. runc, being a Go
// program, prints the literal text "null" instead of an empty collection
// when there is nothing to report; that sentinel decodes to an empty
// result rather than reaching the JSON decoder, which would happily hand
// back a nil collection.
func decodeMaybeNull(output string, v any) error {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(trimmed), v); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// parseVersion extracts the fields of "runc --version" output:
//
//	runc version 1.1.12
//	commit: v1.1.12-0-g51d5e946
//	spec: 1.0.2-dev
func parseVersion(output string) Version {
	var v Version
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "runc version "):
			v.Runc = strings.TrimPrefix(line, "runc version ")
		case strings.HasPrefix(line, "commit: "):
			v.Commit = strings.TrimPrefix(line, "commit: ")
		case strings.HasPrefix(line, "spec: "):
			v.Spec = strings.TrimPrefix(line, "spec: ")
		}
	}
	return v
}
