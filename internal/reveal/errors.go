package reveal

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownExercise marks an exercise identifier with no registry entry.
	ErrUnknownExercise = errors.New("unknown exercise")
	// ErrMissingBlock marks a matched password whose solution block does not
	// exist on the page.
	ErrMissingBlock = errors.New("missing solution block")
)

// RevealError wraps deterministic configuration failures of a single
// Reveal invocation.
type RevealError struct {
	Kind error
	Msg  string
}

func (e *RevealError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *RevealError) Unwrap() error { return e.Kind }

func unknownExercisef(format string, args ...any) error {
	return &RevealError{Kind: ErrUnknownExercise, Msg: fmt.Sprintf(format, args...)}
}

func missingBlockf(format string, args ...any) error {
	return &RevealError{Kind: ErrMissingBlock, Msg: fmt.Sprintf(format, args...)}
}
