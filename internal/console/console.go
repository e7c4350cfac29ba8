// SPDX-License-Identifier: MPL-2.0

// Package console allocates the pty pair handed to processes that request
// a terminal instead of piped streams. The child-side state machine lives
// in the process wrapper; this package only owns the descriptors.
package console

import (
	"os"

	"github.com/creack/pty"
)

// Console owns one pty master/slave pair.
type Console struct {
	master *os.File
	slave  *os.File
}

// New allocates a pty pair.
func New() (*Console, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, err
	}
	return &Console{master: master, slave: slave}, nil
}

// Master returns the supervisor-side end, or nil after Close.
func (c *Console) Master() *os.File { return c.master }

// Slave returns the child-side end, or nil after it has been transferred
// or closed.
func (c *Console) Slave() *os.File { return c.slave }

// TakeSlave transfers ownership of the child-side end to the caller. The
// console will no longer close it.
func (c *Console) TakeSlave() *os.File {
	s := c.slave
	c.slave = nil
	return s
}

// Resize sets the terminal window size on the master end.
func (c *Console) Resize(rows, cols uint16) error {
	if c.master == nil {
		return nil
	}
	return pty.Setsize(c.master, &pty.Winsize{Rows: rows, Cols: cols})
}

// CloseSlave closes the child-side end if still owned. Called after the
// child has started and holds its own copy. Idempotent.
func (c *Console) CloseSlave() error {
	if c.slave == nil {
		return nil
	}
	err := c.slave.Close()
	c.slave = nil
	return err
}

// Close closes both ends still owned. Idempotent.
func (c *Console) Close() error {
	serr := c.CloseSlave()
	if c.master != nil {
		merr := c.master.Close()
		c.master = nil
		if merr != nil {
			return merr
		}
	}
	return serr
}
