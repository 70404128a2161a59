// Package debug provides opt-in tracing for the extraction pipeline. Every
// call takes an enabled flag so callers can leave trace statements in place
// at no cost when tracing is off.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

var logger = log.New(os.Stderr, "[trace] ", log.Ltime|log.Lmicroseconds)

// SetOutput redirects trace output, mainly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Output prints a trace line if enabled.
func Output(enabled bool, format string, args ...interface{}) {
	if enabled {
		logger.Print(fmt.Sprintf(format, args...))
	}
}

// Stage prints a trace line tagged with the pipeline stage that produced it.
func Stage(enabled bool, stage, format string, args ...interface{}) {
	if enabled {
		logger.Printf("%-7s %s", stage, fmt.Sprintf(format, args...))
	}
}

// Timing logs the start of operation and returns a func that logs its
// duration when called.
func Timing(enabled bool, operation string) func() {
	if !enabled {
		return func() {}
	}

	start := time.Now()
	Output(enabled, "start %s", operation)

	return func() {
		Output(enabled, "done  %s (%v)", operation, time.Since(start))
	}
}
