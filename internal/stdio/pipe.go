// SPDX-License-Identifier: MPL-2.0

package stdio

import (
	"os"

	"golang.org/x/sys/unix"
)

// Pipe owns the two ends of one OS pipe. Each end is owned exactly once:
// handing an end to a spawn configuration marks it consumed, and consumed
// ends are skipped by every later close so the descriptor is never closed
// twice.
type Pipe struct {
	r *os.File
	w *os.File
}

// NewPipe opens a new OS pipe.
func NewPipe() (*Pipe, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &Pipe{r: r, w: w}, nil
}

// Reader returns the read end, or nil if it has been closed or transferred.
func (p *Pipe) Reader() *os.File { return p.r }

// Writer returns the write end, or nil if it has been closed or transferred.
func (p *Pipe) Writer() *os.File { return p.w }

// ChownReader changes the owner of the read end.
func (p *Pipe) ChownReader(uid, gid int) error {
	if p.r == nil {
		return nil
	}
	return unix.Fchown(int(p.r.Fd()), uid, gid)
}

// ChownWriter changes the owner of the write end.
func (p *Pipe) ChownWriter(uid, gid int) error {
	if p.w == nil {
		return nil
	}
	return unix.Fchown(int(p.w.Fd()), uid, gid)
}

// TakeReader transfers ownership of the read end to the caller. The pipe
// will no longer close it.
func (p *Pipe) TakeReader() *os.File {
	r := p.r
	p.r = nil
	return r
}

// TakeWriter transfers ownership of the write end to the caller. The pipe
// will no longer close it.
func (p *Pipe) TakeWriter() *os.File {
	w := p.w
	p.w = nil
	return w
}

// CloseRead closes the read end if it is still owned. Idempotent.
func (p *Pipe) CloseRead() error {
	if p.r == nil {
		return nil
	}
	err := p.r.Close()
	p.r = nil
	return err
}

// CloseWrite closes the write end if it is still owned. Idempotent.
func (p *Pipe) CloseWrite() error {
	if p.w == nil {
		return nil
	}
	err := p.w.Close()
	p.w = nil
	return err
}

// Close closes both ends that are still owned. Idempotent.
func (p *Pipe) Close() error {
	rerr := p.CloseRead()
	werr := p.CloseWrite()
	if rerr != nil {
		return rerr
	}
	return werr
}
