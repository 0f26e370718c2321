// Package monitoring holds the process-wide log streams used by the
// tracking packages.
//
// Notifications meant for the person watching the tracker (the startup
// banner, "Tracking N points.") go through Logf. Operational output is split
// into three streams so a long run can keep the main log quiet:
//
//   - ops:   actionable problems (sink failures, rejected engine params)
//   - diag:  session lifecycle and tuning context
//   - trace: per-frame telemetry
package monitoring

import (
	"io"
	"log"
	"sync"
)

// Logf is the notification logger. It defaults to log.Printf but may be
// replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the notification logger. Passing nil sets a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

var (
	streamMu    sync.RWMutex
	opsLogger   *log.Logger
	diagLogger  *log.Logger
	traceLogger *log.Logger
)

func init() {
	opsLogger = newLogger(log.Writer())
}

// SetLogWriters configures the three logging streams.
// Pass nil for any writer to disable that stream.
func SetLogWriters(ops, diag, trace io.Writer) {
	streamMu.Lock()
	defer streamMu.Unlock()
	opsLogger = newLogger(ops)
	diagLogger = newLogger(diag)
	traceLogger = newLogger(trace)
}

// SetLevel routes streams up to and including level to w and disables the
// rest. Unknown levels behave like "ops".
func SetLevel(level string, w io.Writer) {
	switch level {
	case "trace":
		SetLogWriters(w, w, w)
	case "diag":
		SetLogWriters(w, w, nil)
	default:
		SetLogWriters(w, nil, nil)
	}
}

func newLogger(w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, "[pointtrack] ", log.LstdFlags|log.Lmicroseconds)
}

func printf(l **log.Logger, format string, args ...interface{}) {
	streamMu.RLock()
	logger := *l
	streamMu.RUnlock()
	if logger != nil {
		logger.Printf(format, args...)
	}
}

// Opsf logs to the ops stream.
func Opsf(format string, args ...interface{}) { printf(&opsLogger, format, args...) }

// Diagf logs to the diag stream.
func Diagf(format string, args ...interface{}) { printf(&diagLogger, format, args...) }

// Tracef logs to the trace stream.
func Tracef(format string, args ...interface{}) { printf(&traceLogger, format, args...) }
