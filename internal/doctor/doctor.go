package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/stridesearch/sslaunch/internal/model"
)

// AnalyzeLaunchError explains why the executable could not be started
func AnalyzeLaunchError(err error, path, dir string) []string {
	var issues []string
	if err == nil {
		return issues
	}

	where := path
	if dir != "" {
		where = fmt.Sprintf("%s (resolved against %s)", path, dir)
	}

	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, exec.ErrNotFound):
		issues = append(issues, fmt.Sprintf("Executable not found at %s. Build Stride Search first or set SSLAUNCH_EXECUTABLE.", where))
	case errors.Is(err, fs.ErrPermission):
		issues = append(issues, fmt.Sprintf("Executable at %s is not runnable. Check its permissions (chmod +x).", where))
	case strings.Contains(strings.ToLower(err.Error()), "exec format error"):
		issues = append(issues, fmt.Sprintf("%s is not a binary for this platform. Rebuild it for this machine.", where))
	default:
		issues = append(issues, fmt.Sprintf("Could not start %s: %v", where, err))
	}
	return issues
}

// AnalyzeExitCode checks the exit status for known failure patterns
func AnalyzeExitCode(exitCode int) []string {
	var issues []string
	switch exitCode {
	case 0:
	case 1, 2:
		issues = append(issues, fmt.Sprintf("Program failed (Exit Code %d). This is usually an internal application error; check its stderr.", exitCode))
	case 126:
		issues = append(issues, "Command found but not executable (Exit Code 126).")
	case 127:
		issues = append(issues, "Command not found (Exit Code 127). A helper program or shared library loader is missing.")
	case 134:
		issues = append(issues, "Program aborted (SIGABRT). Likely a failed assertion.")
	case 137:
		issues = append(issues, "Program was killed (SIGKILL). Likely ran out of memory.")
	case 139:
		issues = append(issues, "Segmentation fault (SIGSEGV). The program crashed reading invalid memory.")
	case -1:
		issues = append(issues, "Program was terminated by a signal.")
	default:
		issues = append(issues, fmt.Sprintf("Program exited with status %d.", exitCode))
	}
	return issues
}

// AnalyzeStderr checks captured stderr for common error patterns
func AnalyzeStderr(stderr string) []string {
	var issues []string
	if stderr == "" {
		return issues
	}

	lower := strings.ToLower(stderr)
	if strings.Contains(lower, "netcdf") || strings.Contains(lower, "nc_open") {
		issues = append(issues, "NetCDF error detected. Check that the input data files exist and are readable.")
	} else if strings.Contains(lower, "no such file") {
		issues = append(issues, "Missing file reported on stderr. Check input data paths relative to the working directory.")
	}
	if strings.Contains(lower, "permission denied") {
		issues = append(issues, "Permission denied reported on stderr. Check file system permissions.")
	}
	if strings.Contains(lower, "segmentation fault") || strings.Contains(lower, "core dumped") {
		issues = append(issues, "Crash reported on stderr (segmentation fault).")
	}
	if strings.Contains(lower, "bad_alloc") || strings.Contains(lower, "out of memory") {
		issues = append(issues, "Memory exhaustion reported on stderr.")
	}
	if strings.Contains(lower, "error while loading shared libraries") {
		issues = append(issues, "Shared library missing. Check LD_LIBRARY_PATH or install the NetCDF runtime.")
	}
	return issues
}

// Diagnose analyzes a finished run and returns its findings
func Diagnose(record model.RunRecord) []string {
	switch record.Status() {
	case model.StatusLaunchErr:
		return AnalyzeLaunchError(record.Err, record.Executable, record.Dir)
	case model.StatusCancelled:
		return []string{"Run was cancelled before the program finished."}
	}

	issues := AnalyzeExitCode(record.ExitCode)
	return append(issues, AnalyzeStderr(record.Stderr)...)
}
