package model

import (
	"fmt"
	"time"
)

// Window and button strings shared by every frontend.
const (
	WindowTitle = "Stride Search"
	ButtonLabel = "Run Stride Search"
)

// DefaultExecutable is the Stride Search data test binary, relative to the
// launcher's working directory.
const DefaultExecutable = "../build/bin/ssLLDataTest.exe"

// Result is what a finished child process left behind.
type Result struct {
	Stdout   []byte // Captured standard output
	Stderr   []byte // Captured standard error
	ExitCode int    // Process exit status, -1 when killed by a signal
}

// RunStatus summarises how a run ended.
type RunStatus string

// RunStatus values
const (
	StatusSucceeded RunStatus = "Succeeded"
	StatusFailed    RunStatus = "Failed"
	StatusLaunchErr RunStatus = "LaunchError"
	StatusCancelled RunStatus = "Cancelled"
)

// RunRecord describes one button activation for logs and the session summary.
type RunRecord struct {
	ID          string        // Run identifier (UUID)
	Executable  string        // Path as configured
	Dir         string        // Working directory the path was resolved against
	StartedAt   time.Time     // When the child was started
	Duration    time.Duration // Wall time until exit
	Launched    bool          // Whether the child process was started at all
	ExitCode    int           // Exit status, meaningless unless Err is nil
	StdoutBytes int           // Number of captured stdout bytes
	StderrBytes int           // Number of captured stderr bytes
	Stderr      string        // Decoded stderr, kept for diagnosis
	Err         error         // Launch or cancellation error
	Findings    []string      // Doctor findings
}

// Status derives the run status from the record.
func (r RunRecord) Status() RunStatus {
	switch {
	case r.Err != nil && !r.Launched:
		return StatusLaunchErr
	case r.Err != nil:
		return StatusCancelled
	case r.ExitCode != 0:
		return StatusFailed
	default:
		return StatusSucceeded
	}
}

// Label returns a short human readable label like "exit 0" or "launch error".
func (r RunRecord) Label() string {
	switch r.Status() {
	case StatusLaunchErr:
		return "launch error"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("exit %d", r.ExitCode)
	}
}
