// SPDX-License-Identifier: MPL-2.0

package shim

import (
	"testing"
)

func TestOptionsRoundTrip(t *testing.T) {
	t.Parallel()

	bundle := t.TempDir()
	want := &Options{
		BinaryName:    "crun",
		Root:          "/run/crun",
		SystemdCgroup: true,
	}
	if err := WriteOptions(bundle, want); err != nil {
		t.Fatalf("WriteOptions() error = %v", err)
	}
	got, err := ReadOptions(bundle)
	if err != nil {
		t.Fatalf("ReadOptions() error = %v", err)
	}
	if got == nil {
		t.Fatal("ReadOptions() = nil after write")
	}
	if *got != *want {
		t.Errorf("ReadOptions() = %+v, want %+v", got, want)
	}
}

func TestReadOptionsAbsent(t *testing.T) {
	t.Parallel()

	got, err := ReadOptions(t.TempDir())
	if err != nil {
		t.Fatalf("ReadOptions() error = %v", err)
	}
	if got != nil {
		t.Errorf("ReadOptions() = %+v, want nil for an absent file", got)
	}
}

func TestRuntimeFileRoundTrip(t *testing.T) {
	t.Parallel()

	bundle := t.TempDir()
	if err := WriteRuntime(bundle, "runc"); err != nil {
		t.Fatalf("WriteRuntime() error = %v", err)
	}
	got, err := ReadRuntime(bundle)
	if err != nil {
		t.Fatalf("ReadRuntime() error = %v", err)
	}
	if got != "runc" {
		t.Errorf("ReadRuntime() = %q, want %q", got, "runc")
	}
}

func TestNewContainerWritesBundleFiles(t *testing.T) {
	t.Parallel()

	bundle := t.TempDir()
	opts := &Options{BinaryName: "runc", Root: "/run/runc"}
	_, err := NewContainer(CreateRequest{ID: "c1", Bundle: bundle}, &fakeProcess{id: "c1"}, opts, nil)
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}

	readBack, err := ReadOptions(bundle)
	if err != nil {
		t.Fatalf("ReadOptions() error = %v", err)
	}
	if readBack == nil || *readBack != *opts {
		t.Errorf("options = %+v, want %+v", readBack, opts)
	}
	runtime, err := ReadRuntime(bundle)
	if err != nil {
		t.Fatalf("ReadRuntime() error = %v", err)
	}
	if runtime != "runc" {
		t.Errorf("runtime = %q, want %q", runtime, "runc")
	}
}
