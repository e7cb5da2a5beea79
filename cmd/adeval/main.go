package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dkfz-mic/adeval/internal/evalerr"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Evaluation completed
	ExitInvalidInput = 1 // Input tables or documents failed validation
	ExitError        = 2 // Configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, evalerr.ErrInvalidInput) {
		return ExitInvalidInput
	}
	return ExitError
}
