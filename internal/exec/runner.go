// Package exec runs external commands attached to the current terminal.
package exec

import (
	"context"
	"errors"
	"io"
	"os"
	osexec "os/exec"
)

// Runner is the seam between the setup flow and the operating system.
type Runner interface {
	// LookPath reports where name resolves on PATH.
	LookPath(name string) (string, error)

	// RunAttached runs name in dir with the runner's streams and waits for it to exit.
	// A process that ran and exited non-zero yields its exit code and a nil error;
	// the error is reserved for spawn and I/O failures.
	RunAttached(ctx context.Context, dir, name string, args ...string) (int, error)
}

// OSRunner implements Runner using os/exec.
type OSRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewOSRunner returns a runner that inherits the process's standard streams.
func NewOSRunner() *OSRunner {
	return &OSRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *OSRunner) LookPath(name string) (string, error) {
	return osexec.LookPath(name)
}

func (r *OSRunner) RunAttached(ctx context.Context, dir, name string, args ...string) (int, error) {
	cmd := osexec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, err
}

// Available reports whether name can be found on PATH.
func Available(r Runner, name string) bool {
	_, err := r.LookPath(name)
	return err == nil
}
