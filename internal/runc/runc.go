// SPDX-License-Identifier: MPL-2.0

// Package runc invokes an OCI runtime binary (runc or a drop-in
// replacement) and maps its exit semantics onto typed results. It covers
// argument construction, synchronous and context-scheduled execution with
// output capture, and decoding of the runtime's machine-readable queries.
package runc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"
	"time"
)

const (
	// DefaultCommand is the runtime binary used when none is configured.
	DefaultCommand = "runc"

	// LogFormatJSON asks the runtime to emit JSON logs.
	LogFormatJSON LogFormat = "json"
	// LogFormatText asks the runtime to emit plain-text logs.
	LogFormatText LogFormat = "text"
)

// ErrInvalidLogFormat is the sentinel error wrapped by InvalidLogFormatError.
var ErrInvalidLogFormat = errors.New("invalid log format")

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// LogFormat selects the runtime's log output format.
	// The zero value ("") is valid and means "runtime default".
	LogFormat string

	// InvalidLogFormatError is returned when a LogFormat is not a
	// recognized format.
	InvalidLogFormatError struct {
		Value LogFormat
	}

	// ExitCode represents a process exit status code.
	// The zero value (0) means success.
	ExitCode int

	// Opt configures a Runc client at construction time.
	Opt func(*Runc)

	// Runc is a client for one runtime binary with a fixed global
	// configuration. The configuration is immutable once built; every
	// invocation derives the same global argument prefix from it.
	Runc struct {
		command       string
		root          string
		debug         bool
		log           string
		logFormat     LogFormat
		systemdCgroup bool
		rootless      *bool
		setpgid       bool
		timeout       time.Duration

		execCommand ExecCommandFunc
	}

	// Response carries the result of one successful invocation. It is
	// produced once and never mutated.
	Response struct {
		Pid    int
		Status ExitCode
		Output string
	}
)

// Error implements the error interface.
func (e *InvalidLogFormatError) Error() string {
	return fmt.Sprintf("invalid log format %q (valid: json, text)", e.Value)
}

// Unwrap returns ErrInvalidLogFormat so callers can use errors.Is for
// programmatic detection.
func (e *InvalidLogFormatError) Unwrap() error { return ErrInvalidLogFormat }

// Validate returns an error if the LogFormat is not one of the defined
// formats. The zero value ("") is valid and omits the --log-format flag.
func (f LogFormat) Validate() error {
	switch f {
	case LogFormatJSON, LogFormatText, "":
		return nil
	default:
		return &InvalidLogFormatError{Value: f}
	}
}

// String returns the string representation of the LogFormat.
func (f LogFormat) String() string { return string(f) }

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// --- Option Functions ---

// WithCommand sets the runtime binary to invoke.
func WithCommand(command string) Opt {
	return func(r *Runc) { r.command = command }
}

// WithRoot sets the runtime's root directory for container state.
func WithRoot(root string) Opt {
	return func(r *Runc) { r.root = root }
}

// WithDebug enables the runtime's debug output.
func WithDebug(debug bool) Opt {
	return func(r *Runc) { r.debug = debug }
}

// WithLog sets the runtime's log file path.
func WithLog(path string) Opt {
	return func(r *Runc) { r.log = path }
}

// WithLogFormat sets the runtime's log format.
func WithLogFormat(format LogFormat) Opt {
	return func(r *Runc) { r.logFormat = format }
}

// WithSystemdCgroup asks the runtime to use the systemd cgroup manager.
func WithSystemdCgroup(enabled bool) Opt {
	return func(r *Runc) { r.systemdCgroup = enabled }
}

// WithRootless sets the --rootless flag explicitly. When never set, the
// flag is omitted and the runtime auto-detects.
func WithRootless(rootless bool) Opt {
	return func(r *Runc) { r.rootless = &rootless }
}

// WithSetPgid places each spawned runtime process in its own process group.
func WithSetPgid(setpgid bool) Opt {
	return func(r *Runc) { r.setpgid = setpgid }
}

// WithTimeout bounds context-scheduled invocations. Zero means no bound.
func WithTimeout(timeout time.Duration) Opt {
	return func(r *Runc) { r.timeout = timeout }
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) Opt {
	return func(r *Runc) { r.execCommand = fn }
}

// --- Constructor ---

// New creates a runtime client. The resulting configuration is fixed for
// the client's lifetime.
func New(opts ...Opt) (*Runc, error) {
	r := &Runc{
		command:     DefaultCommand,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.logFormat.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// BinaryPath returns the configured runtime binary.
func (r *Runc) BinaryPath() string { return r.command }

// Root returns the configured runtime root directory.
func (r *Runc) Root() string { return r.root }

// Timeout returns the configured invocation timeout.
func (r *Runc) Timeout() time.Duration { return r.timeout }

// --- Argument Builders ---

// Args returns the global argument prefix shared by every invocation.
// Ordering is fixed: root, debug, log path, log format, systemd-cgroup,
// rootless.
func (r *Runc) Args() []string {
	var args []string
	if r.root != "" {
		args = append(args, "--root", r.root)
	}
	if r.debug {
		args = append(args, "--debug")
	}
	if r.log != "" {
		args = append(args, "--log", r.log)
	}
	if r.logFormat != "" {
		args = append(args, "--log-format", string(r.logFormat))
	}
	if r.systemdCgroup {
		args = append(args, "--systemd-cgroup")
	}
	if r.rootless != nil {
		args = append(args, fmt.Sprintf("--rootless=%t", *r.rootless))
	}
	return args
}

// --- Command Execution ---

// prepare builds an exec.Cmd for the runtime binary with stdin suppressed
// and both output streams captured.
func (r *Runc) prepare(ctx context.Context, stdout, stderr *bytes.Buffer, args ...string) *exec.Cmd {
	cmd := r.execCommand(ctx, r.command, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if r.setpgid {
		setPgid(cmd)
	}
	return cmd
}

// CommandRaw executes the runtime binary with exactly the given arguments,
// ignoring the client's global configuration. Exit status zero yields a
// Response whose Output is stdout, or stdout+stderr when combined is set.
// Any other exit status yields an ExitError carrying both streams.
func (r *Runc) CommandRaw(args []string, combined bool) (*Response, error) {
	var stdout, stderr bytes.Buffer
	cmd := r.prepare(context.Background(), &stdout, &stderr, args...)

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Err: err}
	}
	pid := cmd.Process.Pid

	err := cmd.Wait()
	return r.respond(pid, err, stdout.String(), stderr.String(), combined)
}

// Command executes the runtime binary with the global argument prefix
// prepended, blocking until it exits.
func (r *Runc) Command(args []string, combined bool) (*Response, error) {
	return r.CommandRaw(append(r.Args(), args...), combined)
}

// CommandContext executes the runtime binary with the global argument
// prefix prepended, waiting under the caller's context bounded by the
// configured timeout. Success and failure semantics are identical to
// Command; only the scheduling differs. On expiry the child is killed
// (SIGKILL via the command's context) rather than left to orphan the
// container's resources, and a TimeoutError is returned.
func (r *Runc) CommandContext(ctx context.Context, args []string, combined bool) (*Response, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := r.prepare(ctx, &stdout, &stderr, append(r.Args(), args...)...)

	if err := cmd.Start(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &TimeoutError{Timeout: r.timeout}
		}
		return nil, &SpawnError{Err: err}
	}
	pid := cmd.Process.Pid

	err := cmd.Wait()
	// Attribute the outcome to the deadline only when the wait actually
	// failed: a child that exited cleanly just before expiry succeeded.
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return nil, &TimeoutError{Timeout: r.timeout}
	}
	return r.respond(pid, err, stdout.String(), stderr.String(), combined)
}

// respond maps a wait outcome onto the typed result model.
func (r *Runc) respond(pid int, err error, stdout, stderr string, combined bool) (*Response, error) {
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExitError{
				Status: ExitCode(exitErr.ExitCode()),
				Stdout: stdout,
				Stderr: stderr,
			}
		}
		return nil, &CommandError{Err: err}
	}

	output := stdout
	if combined {
		output = stdout + stderr
	}
	return &Response{Pid: pid, Status: 0, Output: output}, nil
}

func setPgid(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// absPath normalizes a bundle path to an absolute path so the runtime
// resolves it independently of the supervisor's working directory.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &CommandError{Err: err}
	}
	return abs, nil
}
