// SPDX-License-Identifier: MPL-2.0

package shim

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// Container is the registry for one container's processes: the mandatory
// primary process and a keyed collection of exec processes. One mutex
// serializes all registry mutation; it is never held across the OS-level
// work a resolved process performs, so a slow runtime invocation cannot
// stall unrelated lifecycle requests. Two operations racing on the same
// process id are serialized by the process wrapper's own invariants, not
// here.
type Container struct {
	mu sync.Mutex

	id     string
	bundle string

	// primary is the container's init process. It is set at construction
	// and never removed; the container struct itself is torn down by the
	// caller after a delete of the primary.
	primary Process
	// processes holds the exec processes by exec id.
	processes map[string]Process

	logger *log.Logger
}

// NewContainer builds the registry around an already created primary
// process and persists the bundle's options and runtime-name files so
// later operations against the bundle honor them.
func NewContainer(req CreateRequest, primary Process, opts *Options, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	if opts != nil {
		if err := WriteOptions(req.Bundle, opts); err != nil {
			return nil, err
		}
		// The binary name is duplicated into its own plain-text file for
		// tools that only need the runtime name.
		if err := WriteRuntime(req.Bundle, opts.BinaryName); err != nil {
			return nil, err
		}
	}
	return &Container{
		id:        req.ID,
		bundle:    req.Bundle,
		primary:   primary,
		processes: make(map[string]Process),
		logger:    logger,
	}, nil
}

// ID returns the container id.
func (c *Container) ID() string { return c.id }

// Bundle returns the container's bundle directory.
func (c *Container) Bundle() string { return c.bundle }

// Pid returns the primary process's pid.
func (c *Container) Pid() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.primary.Pid()
}

// Process resolves a process id. The empty id and the container's own id
// both name the primary process, regardless of what the exec map holds.
func (c *Container) Process(id string) (Process, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolve(id)
}

// resolve must be called with c.mu held.
func (c *Container) resolve(id string) (Process, error) {
	if id == "" || id == c.id {
		return c.primary, nil
	}
	p, ok := c.processes[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return p, nil
}

// ProcessAdd registers an exec process under its id, replacing any stale
// entry with the same id.
func (c *Container) ProcessAdd(p Process) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processes[p.ID()] = p
}

// ProcessRemove removes an exec process from the registry and returns it,
// or nil if the id was not registered. The primary process is never held
// in the map and cannot be removed.
func (c *Container) ProcessRemove(id string) Process {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.processes[id]
	delete(c.processes, id)
	return p
}

// All returns the primary process followed by every exec process.
func (c *Container) All() []Process {
	c.mu.Lock()
	defer c.mu.Unlock()
	all := make([]Process, 0, len(c.processes)+1)
	all = append(all, c.primary)
	for _, p := range c.processes {
		all = append(all, p)
	}
	return all
}

// Start starts the requested process and returns its pid. The registry
// lock is released before the process performs its OS-level work.
func (c *Container) Start(ctx context.Context, req *StartRequest) (int, error) {
	p, err := c.Process(req.ExecID)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("starting process", "container", c.id, "process", p.ID())
	if err := p.Start(ctx); err != nil {
		return 0, err
	}
	return p.Pid(), nil
}

// Delete tears down the requested process. An exec process is removed from
// the registry afterwards; the primary process stays resolvable, its
// container being the caller's to tear down. The response reports the
// process's final pid, exit status and exit time.
func (c *Container) Delete(ctx context.Context, req *DeleteRequest) (*DeleteResponse, error) {
	p, err := c.Process(req.ExecID)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("deleting process", "container", c.id, "process", p.ID())
	if err := p.Delete(ctx); err != nil {
		return nil, err
	}
	if req.ExecID != "" {
		if removed := c.ProcessRemove(req.ExecID); removed == nil {
			return nil, &NotFoundError{ID: req.ExecID}
		}
	}
	return &DeleteResponse{
		Pid:        p.Pid(),
		ExitStatus: p.ExitStatus(),
		ExitedAt:   p.ExitedAt(),
	}, nil
}

// Kill delivers the requested signal. With All set the signal targets the
// container's whole process group rather than a single pid.
func (c *Container) Kill(ctx context.Context, req *KillRequest) error {
	p, err := c.Process(req.ExecID)
	if err != nil {
		return err
	}
	c.logger.Debug("killing process",
		"container", c.id, "process", p.ID(), "signal", req.Signal, "all", req.All)
	return p.Kill(ctx, req.Signal, req.All)
}

// The verbs below have stable signatures so the transport layer sees a
// consistent surface, but their implementations belong to the
// process-wrapper collaborator.

// Exec registers and starts a secondary process.
func (c *Container) Exec(ctx context.Context, req *ExecRequest) error {
	return &NotImplementedError{Verb: "exec"}
}

// Pause suspends the container.
func (c *Container) Pause(ctx context.Context) error {
	return &NotImplementedError{Verb: "pause"}
}

// Resume resumes a paused container.
func (c *Container) Resume(ctx context.Context) error {
	return &NotImplementedError{Verb: "resume"}
}

// ResizePty resizes a process's terminal.
func (c *Container) ResizePty(ctx context.Context, execID string, width, height uint32) error {
	return &NotImplementedError{Verb: "resize_pty"}
}

// CloseIO closes a process's stdin.
func (c *Container) CloseIO(ctx context.Context, execID string) error {
	return &NotImplementedError{Verb: "close_io"}
}

// Checkpoint checkpoints the container.
func (c *Container) Checkpoint(ctx context.Context) error {
	return &NotImplementedError{Verb: "checkpoint"}
}

// Update applies new resource limits to the container.
func (c *Container) Update(ctx context.Context) error {
	return &NotImplementedError{Verb: "update"}
}
