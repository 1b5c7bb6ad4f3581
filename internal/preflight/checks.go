package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"reelcast/internal/config"
	"reelcast/internal/deps"
)

// Result captures the outcome of one preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckRun evaluates everything a workflow run needs before any step executes:
// writable work and log roots plus the required external binaries.
func CheckRun(cfg *config.Config) []Result {
	results := []Result{
		CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Command
		}
		if !status.Available && status.Optional {
			result.Passed = true
			result.Detail = status.Detail + " (optional)"
		}
		results = append(results, result)
	}
	return results
}

// FirstFailure returns the first failed result, if any.
func FirstFailure(results []Result) (Result, bool) {
	for _, result := range results {
		if !result.Passed {
			return result, true
		}
	}
	return Result{}, false
}
