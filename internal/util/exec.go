package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/stridesearch/sslaunch/internal/model"
)

// Runner defines the interface for running commands.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (model.Result, error)
}

// StartError is returned when the process could not be started at all.
type StartError struct {
	Name string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("cannot start %s: %v", e.Name, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// waitDelay bounds how long Wait keeps draining pipes held open by
// grandchildren after the child itself has been killed.
const waitDelay = 2 * time.Second

// RealRunner implementation using os/exec.
type RealRunner struct{}

// Run executes a command with stdin detached and stdout/stderr captured
// separately. A non-zero exit status is reported in the result, not as an
// error; the error is reserved for start failures and cancellation.
func (r *RealRunner) Run(ctx context.Context, name string, args ...string) (model.Result, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		return model.Result{ExitCode: -1}, &StartError{Name: name, Err: err}
	}

	err := cmd.Wait()
	result := model.Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	if err == nil {
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return result, err
	}
	return result, nil
}
