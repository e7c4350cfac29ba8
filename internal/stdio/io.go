// SPDX-License-Identifier: MPL-2.0

// Package stdio creates and wires the OS pipes that connect a spawned
// process's standard streams to supervisor-controlled endpoints.
package stdio

import (
	"os"
	"os/exec"
)

// IO is the capability set a process wrapper uses to wire the standard
// streams of a child it is about to spawn. Accessors return the parent-side
// end of each stream, or nil when the stream was not requested.
type IO interface {
	// Stdin returns the end the parent writes to feed the child's stdin.
	Stdin() *os.File
	// Stdout returns the end the parent reads the child's stdout from.
	Stdout() *os.File
	// Stderr returns the end the parent reads the child's stderr from.
	Stderr() *os.File

	// Set attaches the child-side ends to a not-yet-started command.
	Set(cmd *exec.Cmd)
	// CloseAfterStart closes the ends that belong to the child once it has
	// started, so the parent can observe EOF when the child exits.
	CloseAfterStart() error
	// Close closes every end still owned by the set. Idempotent.
	Close() error
}

// Opt configures NewPipeIO.
type Opt func(*opts)

type opts struct {
	openStdin  bool
	openStdout bool
	openStderr bool
}

func defaultOpts() opts {
	return opts{openStdin: true, openStdout: true, openStderr: true}
}

// WithStdin controls whether a stdin pipe is created.
func WithStdin(open bool) Opt {
	return func(o *opts) { o.openStdin = open }
}

// WithStdout controls whether a stdout pipe is created.
func WithStdout(open bool) Opt {
	return func(o *opts) { o.openStdout = open }
}

// WithStderr controls whether a stderr pipe is created.
func WithStderr(open bool) Opt {
	return func(o *opts) { o.openStderr = open }
}

type pipeIO struct {
	in  *Pipe
	out *Pipe
	err *Pipe
}

// NewPipeIO creates a pipe-backed IO set. Each requested stream gets its own
// pipe, with the child-facing end chowned to uid/gid. Construction is
// atomic: if any pipe cannot be opened or chowned, everything opened so far
// is closed before the error is returned.
func NewPipeIO(uid, gid int, options ...Opt) (IO, error) {
	o := defaultOpts()
	for _, opt := range options {
		opt(&o)
	}

	io := &pipeIO{}
	if o.openStdin {
		p, err := NewPipe()
		if err != nil {
			return nil, err
		}
		io.in = p
		// The child reads stdin, so the read end is the child-facing one.
		if err := p.ChownReader(uid, gid); err != nil {
			io.Close()
			return nil, err
		}
	}
	if o.openStdout {
		p, err := NewPipe()
		if err != nil {
			io.Close()
			return nil, err
		}
		io.out = p
		if err := p.ChownWriter(uid, gid); err != nil {
			io.Close()
			return nil, err
		}
	}
	if o.openStderr {
		p, err := NewPipe()
		if err != nil {
			io.Close()
			return nil, err
		}
		io.err = p
		if err := p.ChownWriter(uid, gid); err != nil {
			io.Close()
			return nil, err
		}
	}
	return io, nil
}

func (i *pipeIO) Stdin() *os.File {
	if i.in == nil {
		return nil
	}
	return i.in.Writer()
}

func (i *pipeIO) Stdout() *os.File {
	if i.out == nil {
		return nil
	}
	return i.out.Reader()
}

func (i *pipeIO) Stderr() *os.File {
	if i.err == nil {
		return nil
	}
	return i.err.Reader()
}

func (i *pipeIO) Set(cmd *exec.Cmd) {
	if i.in != nil {
		cmd.Stdin = i.in.Reader()
	}
	if i.out != nil {
		cmd.Stdout = i.out.Writer()
	}
	if i.err != nil {
		cmd.Stderr = i.err.Writer()
	}
}

// CloseAfterStart closes the write ends of the stdout and stderr pipes. The
// started child holds its own copies; keeping ours open would prevent the
// parent from ever reading EOF.
func (i *pipeIO) CloseAfterStart() error {
	var first error
	for _, p := range []*Pipe{i.out, i.err} {
		if p == nil {
			continue
		}
		if err := p.CloseWrite(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (i *pipeIO) Close() error {
	var first error
	for _, p := range []*Pipe{i.in, i.out, i.err} {
		if p == nil {
			continue
		}
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewSTDIO returns an IO that wires the child directly to the supervisor's
// own standard streams. Close is a no-op: the supervisor's streams are not
// ours to close.
func NewSTDIO() IO {
	return &stdio{}
}

type stdio struct{}

func (s *stdio) Stdin() *os.File  { return os.Stdin }
func (s *stdio) Stdout() *os.File { return os.Stdout }
func (s *stdio) Stderr() *os.File { return os.Stderr }

func (s *stdio) Set(cmd *exec.Cmd) {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
}

func (s *stdio) CloseAfterStart() error { return nil }

func (s *stdio) Close() error { return nil }

// NewNullIO returns an IO that leaves every stream unwired. A child spawned
// with it reads EOF from stdin and writes to the null device.
func NewNullIO() (IO, error) {
	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &nullIO{devnull: devnull}, nil
}

type nullIO struct {
	devnull *os.File
}

func (n *nullIO) Stdin() *os.File  { return nil }
func (n *nullIO) Stdout() *os.File { return nil }
func (n *nullIO) Stderr() *os.File { return nil }

func (n *nullIO) Set(cmd *exec.Cmd) {
	cmd.Stdin = nil
	cmd.Stdout = n.devnull
	cmd.Stderr = n.devnull
}

func (n *nullIO) CloseAfterStart() error { return nil }

func (n *nullIO) Close() error {
	if n.devnull == nil {
		return nil
	}
	err := n.devnull.Close()
	n.devnull = nil
	return err
}
