// Package evalerr defines the error taxonomy shared by the evaluation engine
// and its input layer.
package evalerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput marks malformed input: missing values, a missing label
	// class, mismatched vector lengths or values outside {0,1}.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateCurve marks ROC input whose ground truth has a single class.
	ErrDegenerateCurve = errors.New("degenerate ROC input")
)

// ValidationError collects every problem found in one input source so the
// user can fix them in a single pass.
type ValidationError struct {
	Source   string
	Problems []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		fmt.Fprintf(&b, "%s: ", e.Source)
	}
	b.WriteString(ErrInvalidInput.Error())
	switch len(e.Problems) {
	case 0:
	case 1:
		fmt.Fprintf(&b, ": %s", e.Problems[0])
	default:
		fmt.Fprintf(&b, " (%d problems): %s", len(e.Problems), strings.Join(e.Problems, "; "))
	}
	return b.String()
}

// Is reports ValidationError as ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Stage names one step of the detection pipeline.
type Stage string

const (
	StageScore     Stage = "score"
	StageDetection Stage = "detection"
	StageStanford  Stage = "stanford"
)

// NoPosition is used for StageError values that are not tied to a sweep position.
const NoPosition = -1

// StageError wraps a failure with the pipeline stage and, for per-threshold
// work, the sweep position it happened at.
type StageError struct {
	Stage    Stage
	Position int
	Err      error
}

func (e *StageError) Error() string {
	if e.Position == NoPosition {
		return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s stage (Youden + %d): %v", e.Stage, e.Position, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Invalid returns an error wrapping ErrInvalidInput with a formatted message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Degenerate returns an error wrapping ErrDegenerateCurve with a formatted message.
func Degenerate(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDegenerateCurve, fmt.Sprintf(format, args...))
}
