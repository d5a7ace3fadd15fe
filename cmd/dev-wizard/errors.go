package main

import (
	"fmt"
	"os"

	"github.com/steveyegge/dev-wizard/internal/prompt"
)

// FatalError writes an error message to stderr and exits with code 1.
// Use this for fatal errors that prevent the command from completing.
func FatalError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// FatalErrorWithHint writes an error message with a hint to stderr and exits.
//
// Example:
//
//	FatalErrorWithHint("scenario not found", "Run 'dev-wizard scenarios list'")
func FatalErrorWithHint(message, hint string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	os.Exit(1)
}

// WarnError writes a warning message to stderr and returns.
func WarnError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// exitOnError ends the command for a non-nil err. An operator abort is not a
// failure: it prints "Cancelled." and exits 0.
func exitOnError(err error) {
	if err == nil {
		return
	}
	if prompt.IsCancelled(err) {
		fmt.Fprintln(os.Stderr, "Cancelled.")
		os.Exit(0)
	}
	if jsonOutput {
		outputJSONError(err, errorCode(err))
	}
	FatalError("%v", err)
}
