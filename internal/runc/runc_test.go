// SPDX-License-Identifier: MPL-2.0

package runc

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

// Following go-runc's style, the runtime binary is stood in for by
// trivially succeeding and failing binaries.
const (
	cmdTrue  = "/bin/true"
	cmdFalse = "/bin/false"
	cmdSleep = "/bin/sleep"
)

func okClient(t *testing.T, opts ...Opt) *Runc {
	t.Helper()
	r, err := New(append([]Opt{WithCommand(cmdTrue)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func failClient(t *testing.T, opts ...Opt) *Runc {
	t.Helper()
	r, err := New(append([]Opt{WithCommand(cmdFalse)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestCommand(t *testing.T) {
	t.Parallel()

	t.Run("success yields empty output and success status", func(t *testing.T) {
		t.Parallel()
		res, err := okClient(t).Command(nil, true)
		if err != nil {
			t.Fatalf("Command() error = %v", err)
		}
		if !res.Status.IsSuccess() {
			t.Errorf("Status = %d, want success", res.Status)
		}
		if res.Output != "" {
			t.Errorf("Output = %q, want empty", res.Output)
		}
		if res.Pid <= 0 {
			t.Errorf("Pid = %d, want > 0", res.Pid)
		}
	})

	t.Run("failure carries exit code and both streams", func(t *testing.T) {
		t.Parallel()
		res, err := failClient(t).Command(nil, true)
		if err == nil {
			t.Fatalf("Command() = %+v, want error", res)
		}
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("error = %v, want *ExitError", err)
		}
		if exitErr.Status != 1 {
			t.Errorf("Status = %d, want 1", exitErr.Status)
		}
		if exitErr.Stdout != "" || exitErr.Stderr != "" {
			t.Errorf("streams = %q/%q, want empty", exitErr.Stdout, exitErr.Stderr)
		}
		if !errors.Is(err, ErrCommandFailed) {
			t.Error("error does not match ErrCommandFailed")
		}
	})

	t.Run("missing binary yields spawn error", func(t *testing.T) {
		t.Parallel()
		r, err := New(WithCommand("/nonexistent/runtime-binary"))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		_, err = r.Command(nil, true)
		if !errors.Is(err, ErrSpawn) {
			t.Fatalf("error = %v, want ErrSpawn", err)
		}
	})
}

func TestCommandOutputCapture(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		combined bool
		want     string
	}{
		{name: "stdout only", combined: false, want: "out\n"},
		{name: "combined appends stderr", combined: true, want: "out\nerr\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := New(
				WithCommand("/bin/sh"),
				WithExecCommand(shellCommand),
			)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			res, err := r.Command([]string{"echo out; echo err >&2"}, tt.combined)
			if err != nil {
				t.Fatalf("Command() error = %v", err)
			}
			if res.Output != tt.want {
				t.Errorf("Output = %q, want %q", res.Output, tt.want)
			}
		})
	}
}

func TestCommandContext(t *testing.T) {
	t.Parallel()

	t.Run("identical semantics to blocking mode", func(t *testing.T) {
		t.Parallel()
		res, err := okClient(t).CommandContext(context.Background(), nil, true)
		if err != nil {
			t.Fatalf("CommandContext() error = %v", err)
		}
		if !res.Status.IsSuccess() || res.Output != "" {
			t.Errorf("got %+v, want success with empty output", res)
		}

		_, err = failClient(t).CommandContext(context.Background(), nil, true)
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("error = %v, want *ExitError", err)
		}
		if exitErr.Status != 1 {
			t.Errorf("Status = %d, want 1", exitErr.Status)
		}
	})

	t.Run("success past the deadline is still a success", func(t *testing.T) {
		t.Parallel()
		r, err := New(
			WithTimeout(50*time.Millisecond),
			WithExecCommand(func(ctx context.Context, name string, arg ...string) *exec.Cmd {
				// Detached from ctx: the child is not killed at the
				// deadline and exits cleanly after it has passed.
				return exec.Command("/bin/sh", "-c", "sleep 0.2")
			}),
		)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		res, err := r.CommandContext(context.Background(), nil, true)
		if err != nil {
			t.Fatalf("CommandContext() error = %v, want clean exit reported as success", err)
		}
		if !res.Status.IsSuccess() {
			t.Errorf("Status = %d, want success", res.Status)
		}
	})

	t.Run("timeout is distinct from command failure", func(t *testing.T) {
		t.Parallel()
		r, err := New(WithCommand(cmdSleep), WithTimeout(50*time.Millisecond))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		start := time.Now()
		_, err = r.CommandContext(context.Background(), []string{"10"}, true)
		if !errors.Is(err, ErrTimeout) {
			t.Fatalf("error = %v, want ErrTimeout", err)
		}
		if errors.Is(err, ErrCommandFailed) {
			t.Error("timeout must not match ErrCommandFailed")
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("timed-out child was not killed promptly (took %s)", elapsed)
		}
	})
}

func TestCreate(t *testing.T) {
	t.Parallel()

	opts := &CreateOpts{}

	t.Run("succeeding runtime", func(t *testing.T) {
		t.Parallel()
		res, err := okClient(t).Create(context.Background(), "fake-id", "fake-bundle", opts)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if !res.Status.IsSuccess() || res.Output != "" {
			t.Errorf("got %+v, want success with empty output", res)
		}
	})

	t.Run("failing runtime", func(t *testing.T) {
		t.Parallel()
		_, err := failClient(t).Create(context.Background(), "fake-id", "fake-bundle", opts)
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("error = %v, want *ExitError", err)
		}
		if exitErr.Status != 1 || exitErr.Stdout != "" || exitErr.Stderr != "" {
			t.Errorf("got %+v, want status 1 with empty streams", exitErr)
		}
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	res, err := okClient(t).Run(context.Background(), "fake-id", "fake-bundle", &CreateOpts{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Status.IsSuccess() {
		t.Errorf("Status = %d, want success", res.Status)
	}

	_, err = failClient(t).Run(context.Background(), "fake-id", "fake-bundle", &CreateOpts{})
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("error = %v, want ErrCommandFailed", err)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	if _, err := okClient(t).Delete(context.Background(), "fake-id", &DeleteOpts{Force: true}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, err := failClient(t).Delete(context.Background(), "fake-id", nil)
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("error = %v, want ErrCommandFailed", err)
	}
}

func TestKill(t *testing.T) {
	t.Parallel()

	if err := okClient(t).Kill(context.Background(), "fake-id", 9, &KillOpts{All: true}); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}
	err := failClient(t).Kill(context.Background(), "fake-id", 9, nil)
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("error = %v, want ErrCommandFailed", err)
	}
}

func TestExecWritesSpecFile(t *testing.T) {
	t.Parallel()

	r := okClient(t, WithRoot(t.TempDir()))
	err := r.Exec(context.Background(), "fake-id", dummyProcess(), &ExecOpts{})
	if err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	r := okClient(t, WithRoot(t.TempDir()))
	if err := r.Update(context.Background(), "fake-id", dummyResources()); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
}

func TestUnimplementedVerbs(t *testing.T) {
	t.Parallel()

	r := okClient(t)
	ctx := context.Background()

	for _, tt := range []struct {
		verb string
		err  error
	}{
		{verb: "events", err: r.Events(ctx, "fake-id")},
		{verb: "checkpoint", err: r.Checkpoint(ctx, "fake-id")},
		{verb: "restore", err: r.Restore(ctx, "fake-id")},
	} {
		if !errors.Is(tt.err, ErrNotImplemented) {
			t.Errorf("%s: error = %v, want ErrNotImplemented", tt.verb, tt.err)
		}
		var nie *NotImplementedError
		if !errors.As(tt.err, &nie) || nie.Verb != tt.verb {
			t.Errorf("%s: error does not name the verb: %v", tt.verb, tt.err)
		}
	}
}
