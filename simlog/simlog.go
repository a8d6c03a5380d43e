// Package simlog is a small configurable logger for job-firing traces
// (connect established, disconnect propagated, topology decision
// taken), gated by --verbose. Adapted from the original cassandra
// logger/logger.go; Init must be called before any other function.
//
// This is deliberately a separate channel from the REPL's own stdout
// protocol (status lines, DOT graphs, "unknown command ..."): that
// output is always unconditional, while this one is silent unless
// --verbose is set, so logging can never perturb the byte-identical
// replay property (SPEC_FULL.md §10).
package simlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Logger is a configurable logger that can write to multiple outputs.
type Logger struct {
	mu      sync.Mutex
	outputs []io.Writer
	enabled bool
}

var global *Logger

// Init initializes the global logger. verbose controls whether
// traces reach stderr; further writers can be added with AddOutput.
func Init(verbose bool) {
	outputs := []io.Writer{}
	if verbose {
		outputs = append(outputs, os.Stderr)
	}
	global = &Logger{outputs: outputs, enabled: true}
}

// AddOutput adds an additional output writer. Buffer is not an
// io.Writer, so it cannot be passed here.
func AddOutput(w io.Writer) {
	if global == nil {
		return
	}
	global.mu.Lock()
	defer global.mu.Unlock()
	global.outputs = append(global.outputs, w)
}

// Tracef logs a formatted job-firing trace line.
func Tracef(format string, v ...interface{}) {
	if global == nil {
		return
	}
	global.mu.Lock()
	defer global.mu.Unlock()
	if !global.enabled || len(global.outputs) == 0 {
		return
	}
	msg := strings.TrimSuffix(fmt.Sprintf(format, v...), "\n") + "\n"
	for _, output := range global.outputs {
		output.Write([]byte(msg))
	}
}
