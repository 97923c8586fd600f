package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/cli"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(somesy.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(somesy.ExitCodeForError(err))
	}
}
