package util

import (
	"context"
	"strings"
	"sync"

	"github.com/stridesearch/sslaunch/internal/model"
)

// FakeRunner implements Runner for tests. Results and errors are keyed by the
// space-joined command line.
type FakeRunner struct {
	mu sync.Mutex

	// Commands stores all executed commands for verification
	Commands [][]string

	// Results maps command signatures to their results
	Results map[string]model.Result

	// Errors maps command signatures to their errors
	Errors map[string]error

	// DefaultResult is returned when no specific result is configured
	DefaultResult model.Result

	// Block, when set, makes Run wait until it is closed or ctx is done
	Block chan struct{}
}

// NewFakeRunner creates a new fake runner
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Results: make(map[string]model.Result),
		Errors:  make(map[string]error),
	}
}

// Run records the command and returns the configured result
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (model.Result, error) {
	f.mu.Lock()
	f.Commands = append(f.Commands, append([]string{name}, args...))
	signature := commandSignature(name, args...)
	result, hasResult := f.Results[signature]
	err := f.Errors[signature]
	block := f.Block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return model.Result{ExitCode: -1}, ctx.Err()
		}
	}

	if err != nil {
		return model.Result{ExitCode: -1}, err
	}
	if hasResult {
		return result, nil
	}
	return f.DefaultResult, nil
}

// SetResult configures the result for a specific command
func (f *FakeRunner) SetResult(name string, result model.Result, args ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Results[commandSignature(name, args...)] = result
}

// SetError configures the error for a specific command
func (f *FakeRunner) SetError(name string, err error, args ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[commandSignature(name, args...)] = err
}

// ClearError removes a configured error
func (f *FakeRunner) ClearError(name string, args ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Errors, commandSignature(name, args...))
}

// CallCount returns how many commands were run
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Commands)
}

func commandSignature(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
