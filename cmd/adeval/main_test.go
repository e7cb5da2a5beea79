package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dkfz-mic/adeval/internal/evalerr"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitSuccess},
		{"validation error", &evalerr.ValidationError{Source: "a.csv", Problems: []string{"bad"}}, ExitInvalidInput},
		{"wrapped validation error", fmt.Errorf("loading: %w", &evalerr.ValidationError{Source: "a.csv"}), ExitInvalidInput},
		{"invalid input sentinel", evalerr.Invalid("length mismatch"), ExitInvalidInput},
		{"degenerate curve", &evalerr.StageError{Stage: evalerr.StageDetection, Position: evalerr.NoPosition, Err: evalerr.Degenerate("one class")}, ExitError},
		{"regular error", errors.New("disk full"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"evaluate", "validate", "compare", "report", "history", "init"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
}
