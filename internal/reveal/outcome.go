package reveal

// Outcome is the terminal state of a single Reveal invocation.
//
// Every invocation ends in exactly one outcome; there are no intermediate
// observable states and no state carried over to the next invocation.
type Outcome string

const (
	// OutcomeRevealed: the password matched and the block is now visible.
	OutcomeRevealed Outcome = "revealed"
	// OutcomeWrongPassword: the entered value did not match. A user-facing
	// rejection, not a system error.
	OutcomeWrongPassword Outcome = "wrong-password"
	// OutcomeCancelled: the user dismissed the prompt. Silent no-op.
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeUnknownExercise: the identifier has no registry entry. Reported
	// before any prompt is shown.
	OutcomeUnknownExercise Outcome = "unknown-exercise"
	// OutcomeMissingBlock: the password matched but the page has no block
	// for the exercise.
	OutcomeMissingBlock Outcome = "missing-block"
	// OutcomeNone: the invocation aborted before reaching a terminal state
	// (prompt transport or page write failure). Always paired with an error.
	OutcomeNone Outcome = ""
)

// IsConfigError reports whether the outcome signals a page/registry
// configuration problem rather than a user decision.
func (o Outcome) IsConfigError() bool {
	switch o {
	case OutcomeUnknownExercise, OutcomeMissingBlock:
		return true
	default:
		return false
	}
}

func (o Outcome) String() string {
	if o == OutcomeNone {
		return "none"
	}
	return string(o)
}
