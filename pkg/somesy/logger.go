package somesy

// Logger provides a pluggable logging interface for somesy operations.
// Implementations must be safe for concurrent use by multiple goroutines.
//
// The levels mirror the verbosity ladder of the CLI: by default only
// warnings and errors are shown, -s enables Info, -v enables Verbose
// and -d enables Debug.
type Logger interface {
	// Debug logs low-level diagnostic information, e.g. individual
	// person merge decisions. Only logged in debug mode.
	Debug(format string, args ...interface{})

	// Verbose logs detailed progress information.
	// Only logged when verbose mode (or debug mode) is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Warn logs recoverable problems, e.g. a person record that could
	// not be parsed from a target file. Always logged.
	Warn(format string, args ...interface{})

	// Error logs error messages. Always logged.
	Error(format string, args ...interface{})
}
