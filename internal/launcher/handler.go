// Package launcher implements the button callback: it runs the Stride Search
// executable and appends what it printed to the output buffer.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stridesearch/sslaunch/internal/doctor"
	"github.com/stridesearch/sslaunch/internal/model"
	"github.com/stridesearch/sslaunch/internal/output"
	"github.com/stridesearch/sslaunch/internal/util"
)

// ErrBusy is returned when a run is requested while another is in flight.
var ErrBusy = errors.New("a run is already in progress")

// LaunchError reports that the executable could not be started.
type LaunchError struct {
	Path string
	Dir  string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Options configures a Handler.
type Options struct {
	Executable string
	ShowStderr bool
}

// Handler runs the configured executable and feeds the output buffer.
type Handler struct {
	logger *zap.Logger
	runner util.Runner
	buffer *output.Buffer
	opts   Options
	now    func() time.Time

	running atomic.Bool

	mu      sync.Mutex
	done    chan struct{} // closed when the current run returns
	history []model.RunRecord
}

// NewHandler creates a handler writing into buffer.
func NewHandler(logger *zap.Logger, runner util.Runner, buffer *output.Buffer, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		logger: logger,
		runner: runner,
		buffer: buffer,
		opts:   opts,
		now:    time.Now,
	}
}

// Buffer returns the output buffer the handler appends to.
func (h *Handler) Buffer() *output.Buffer { return h.buffer }

// Executable returns the configured executable path.
func (h *Handler) Executable() string { return h.opts.Executable }

// Running reports whether a run is in flight.
func (h *Handler) Running() bool { return h.running.Load() }

// Execute starts the executable and waits for it to exit. It does not touch
// the output buffer, so it may run off the UI thread. The path is resolved
// against the working directory at every call.
func (h *Handler) Execute(ctx context.Context) (model.RunRecord, model.Result, error) {
	h.mu.Lock()
	if !h.running.CompareAndSwap(false, true) {
		h.mu.Unlock()
		return model.RunRecord{}, model.Result{}, ErrBusy
	}
	done := make(chan struct{})
	h.done = done
	h.mu.Unlock()
	defer func() {
		h.running.Store(false)
		close(done)
	}()

	_, dir := util.ResolvePath(h.opts.Executable)
	record := model.RunRecord{
		ID:         uuid.NewString(),
		Executable: h.opts.Executable,
		Dir:        dir,
		StartedAt:  h.now(),
	}
	log := h.logger.With(zap.String("run_id", record.ID), zap.String("executable", record.Executable))
	log.Info("Starting run", zap.String("dir", dir))

	result, err := h.runner.Run(ctx, util.CommandPath(h.opts.Executable))
	record.Duration = h.now().Sub(record.StartedAt)
	record.ExitCode = result.ExitCode
	record.StdoutBytes = len(result.Stdout)
	record.StderrBytes = len(result.Stderr)
	record.Stderr = util.DecodeText(result.Stderr)

	var startErr *util.StartError
	switch {
	case errors.As(err, &startErr):
		record.Err = &LaunchError{Path: h.opts.Executable, Dir: dir, Err: startErr.Err}
	case err != nil:
		record.Launched = true
		record.Err = err
	default:
		record.Launched = true
	}
	record.Findings = doctor.Diagnose(record)
	h.record(record)

	fields := []zap.Field{
		zap.String("status", string(record.Status())),
		zap.Int("exit_code", record.ExitCode),
		zap.Duration("duration", record.Duration),
		zap.Int("stdout_bytes", record.StdoutBytes),
		zap.Int("stderr_bytes", record.StderrBytes),
		zap.Strings("findings", record.Findings),
	}
	switch record.Status() {
	case model.StatusLaunchErr:
		log.Error("Failed to launch executable", append(fields, zap.Error(record.Err))...)
	case model.StatusCancelled:
		log.Warn("Run cancelled", append(fields, zap.Error(record.Err))...)
	case model.StatusFailed:
		log.Warn("Run exited with non-zero status", fields...)
	default:
		log.Info("Run completed", fields...)
	}
	if record.Stderr != "" {
		log.Debug("Captured stderr", zap.String("stderr", record.Stderr))
	}

	return record, result, record.Err
}

// Apply appends a finished run's stdout to the output buffer and returns the
// appended text. Stderr is appended only when ShowStderr is set. Must be
// called from the UI thread.
func (h *Handler) Apply(result model.Result) string {
	text := util.DecodeText(result.Stdout)
	h.buffer.Append(output.Stdout, text)
	if h.opts.ShowStderr && len(result.Stderr) > 0 {
		errText := util.DecodeText(result.Stderr)
		h.buffer.Append(output.Stderr, errText)
		text += errText
	}
	return text
}

// Run executes the program and applies its output, synchronously. On error
// nothing is appended.
func (h *Handler) Run(ctx context.Context) (model.RunRecord, error) {
	record, result, err := h.Execute(ctx)
	if err != nil {
		return record, err
	}
	h.Apply(result)
	return record, nil
}

// Wait blocks until the run in flight, if any, has returned. It is safe to
// call while runs are being started; a run that starts after Wait has looked
// is not waited for.
func (h *Handler) Wait() {
	h.mu.Lock()
	done := h.done
	h.mu.Unlock()
	if done != nil {
		<-done
	}
}

// History returns a copy of every run recorded this session.
func (h *Handler) History() []model.RunRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.RunRecord, len(h.history))
	copy(out, h.history)
	return out
}

func (h *Handler) record(r model.RunRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.history = append(h.history, r)
}
