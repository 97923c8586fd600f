package logging

import (
	"fmt"
	"os"
	"sync"
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	showInfo bool
	verbose  bool
	debug    bool
	mu       sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger.
// showInfo enables Info() output, verbose additionally enables
// Verbose(), and debug enables everything. Each level implies the ones
// below it; Warn() and Error() always produce output.
func NewConsoleLogger(showInfo, verbose, debug bool) *ConsoleLogger {
	return &ConsoleLogger{
		showInfo: showInfo || verbose || debug,
		verbose:  verbose || debug,
		debug:    debug,
	}
}

// Debug logs low-level diagnostic information if debug mode is enabled.
func (l *ConsoleLogger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.write("[DEBUG] "+format, args)
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] "+format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	if !l.showInfo {
		return
	}
	l.write(format, args)
}

// Warn logs recoverable problems.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.write("[WARN] "+format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR] "+format, args)
}

func (l *ConsoleLogger) write(format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	} else {
		fmt.Fprint(os.Stderr, format+"\n")
	}
}
