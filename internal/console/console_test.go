// SPDX-License-Identifier: MPL-2.0

package console

import (
	"testing"
)

func TestNewAllocatesBothEnds(t *testing.T) {
	t.Parallel()

	c, err := New()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer c.Close()

	if c.Master() == nil || c.Slave() == nil {
		t.Fatal("fresh console is missing an end")
	}
	if c.Master().Fd() == c.Slave().Fd() {
		t.Error("master and slave share a descriptor")
	}
}

func TestTakeSlaveTransfersOwnership(t *testing.T) {
	t.Parallel()

	c, err := New()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer c.Close()

	s := c.TakeSlave()
	if s == nil {
		t.Fatal("TakeSlave() = nil")
	}
	defer s.Close()
	if c.Slave() != nil {
		t.Error("console still exposes a taken slave")
	}
	if err := c.CloseSlave(); err != nil {
		t.Errorf("CloseSlave() after take: %v", err)
	}
	// The taken end survived.
	if _, err := s.Stat(); err != nil {
		t.Errorf("taken slave was closed by the console: %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	t.Parallel()

	c, err := New()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if c.Master() != nil || c.Slave() != nil {
		t.Error("closed console still exposes an end")
	}
	// Resize after close is a no-op, not a crash.
	if err := c.Resize(24, 80); err != nil {
		t.Errorf("Resize() after Close() error = %v", err)
	}
}

func TestResize(t *testing.T) {
	t.Parallel()

	c, err := New()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer c.Close()

	if err := c.Resize(24, 80); err != nil {
		t.Errorf("Resize() error = %v", err)
	}
}
