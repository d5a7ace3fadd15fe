// Package debug provides env/flag gated diagnostic output for dev-wizard.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	enabled     = os.Getenv("DEV_WIZARD_DEBUG") != ""
	verboseMode = false
	quietMode   = false
	runID       = ""
	logMutex    sync.Mutex

	stderr io.Writer = os.Stderr
	stdout io.Writer = os.Stdout
)

func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// SetQuiet enables quiet mode (suppress non-essential output)
func SetQuiet(quiet bool) {
	quietMode = quiet
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quietMode
}

// SetRunID tags subsequent debug lines with the current run id.
func SetRunID(id string) {
	logMutex.Lock()
	defer logMutex.Unlock()
	runID = id
}

// Logf writes a diagnostic line to stderr when debugging is enabled.
func Logf(format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	logMutex.Lock()
	defer logMutex.Unlock()
	if runID != "" {
		fmt.Fprintf(stderr, "[%s] ", shortID(runID))
	}
	fmt.Fprintf(stderr, format, args...)
}

func Printf(format string, args ...interface{}) {
	if Enabled() {
		fmt.Fprintf(stdout, format, args...)
	}
}

// PrintNormal prints output unless quiet mode is enabled
// Use this for normal informational output that should be suppressed in quiet mode
func PrintNormal(format string, args ...interface{}) {
	if !quietMode {
		fmt.Fprintf(stdout, format, args...)
	}
}

// PrintlnNormal prints a line unless quiet mode is enabled
func PrintlnNormal(args ...interface{}) {
	if !quietMode {
		fmt.Fprintln(stdout, args...)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
