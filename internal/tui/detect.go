package tui

import (
	"os"

	"golang.org/x/term"
)

// Environment variables that force batch behavior even when a terminal
// is attached. SOMESY_NON_INTERACTIVE must be exactly "1", the others
// count as set whenever they are non-empty.
var batchEnvVars = []string{"CI", "NO_COLOR"}

// IsInteractive reports whether prompts may be shown. That requires a
// terminal on both stdin and stdout and none of the batch-mode
// environment variables.
func IsInteractive() bool {
	if os.Getenv("SOMESY_NON_INTERACTIVE") == "1" {
		return false
	}
	for _, name := range batchEnvVars {
		if os.Getenv(name) != "" {
			return false
		}
	}
	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}
