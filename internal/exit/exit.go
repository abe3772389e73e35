// Package exit carries process termination outcomes from the config and
// runner layers back to main without calling os.Exit deep in the stack.
package exit

import (
	"fmt"
	"io"
	"os"
)

// Result holds the output destination, message and exit code for program
// termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a result that prints to stdout and exits with code 0.
func Success(message string) *Result {
	return &Result{Output: os.Stdout, ExitCode: 0, Message: message}
}

// Error creates a result that prints to stderr and exits with code 1.
func Error(message string) *Result {
	return &Result{Output: os.Stderr, ExitCode: 1, Message: message}
}

// Errorf is Error with fmt.Sprintf formatting.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}
