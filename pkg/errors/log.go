package errors

import (
	"fmt"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a reported error to stderr.
func (h *LogHandler) HandleError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[beacon error] [%s] %v\n", KindOf(err), err)
	if !h.Verbose {
		return
	}
	if agg, ok := err.(*TeardownError); ok {
		for _, failure := range agg.Failures {
			fmt.Fprintf(os.Stderr, "  - %v\n", failure)
		}
	}
}

// HandlePanic logs a PanicError to stderr.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(os.Stderr, "[beacon panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[beacon panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}
