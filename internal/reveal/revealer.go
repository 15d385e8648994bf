package reveal

import "fmt"

// BlockIDPrefix is prepended to an exercise identifier to derive the page
// identifier of its solution block.
const BlockIDPrefix = "solution-"

// BlockID derives the page identifier of the solution block for an exercise.
func BlockID(exerciseID string) string { return BlockIDPrefix + exerciseID }

// Prompter solicits one value from the user.
//
// RequestInput blocks until the user responds. ok is false when the user
// cancelled; in that case value is empty and err is nil. err is reserved for
// transport failures (an unusable terminal), never for cancellation.
type Prompter interface {
	RequestInput(prompt string) (value string, ok bool, err error)
}

// Notifier delivers a one-way, user-facing message.
type Notifier interface {
	Notify(msg string)
}

// Page locates and mutates solution blocks on a course page.
type Page interface {
	// HasBlock reports whether a block with the given identifier exists.
	HasBlock(blockID string) bool
	// ShowBlock makes the block visible. Showing an already visible block
	// is a no-op.
	ShowBlock(blockID string) error
}

// User-facing messages. The pages this tool targets are Spanish course
// material, so the messages match the pages.
const (
	msgWrongPassword   = "Contraseña incorrecta."
	msgUnknownExercise = "Ejercicio no registrado: %s"
	msgMissingBlock    = "No existe la solución del ejercicio %s en la página."
)

// Revealer gates solution blocks behind a password prompt.
//
// It holds no mutable state; invocations are independent and there is no
// retry, lockout or rate limiting across them.
type Revealer struct {
	registry *Registry
	prompter Prompter
	notifier Notifier
	page     Page
}

// NewRevealer wires the operation to its ports. All four are required.
func NewRevealer(registry *Registry, prompter Prompter, notifier Notifier, page Page) (*Revealer, error) {
	if registry == nil {
		return nil, fmt.Errorf("nil registry")
	}
	if prompter == nil {
		return nil, fmt.Errorf("nil prompter")
	}
	if notifier == nil {
		return nil, fmt.Errorf("nil notifier")
	}
	if page == nil {
		return nil, fmt.Errorf("nil page")
	}
	return &Revealer{registry: registry, prompter: prompter, notifier: notifier, page: page}, nil
}

// Reveal prompts for the password of exerciseID and, on a match, makes the
// block "solution-<exerciseID>" visible.
//
// Outcome mapping:
//   - identifier not registered: no prompt is shown, the user is notified,
//     and a wrapped ErrUnknownExercise is returned
//   - prompt cancelled: silent termination, nil error
//   - wrong password: the user is notified, the page is untouched, nil error
//   - match with no block on the page: the user is notified and a wrapped
//     ErrMissingBlock is returned
//
// Only a prompt transport or page write failure yields OutcomeNone.
func (r *Revealer) Reveal(exerciseID string) (Outcome, error) {
	secret, found := r.registry.Lookup(exerciseID)
	if !found {
		r.notifier.Notify(fmt.Sprintf(msgUnknownExercise, exerciseID))
		return OutcomeUnknownExercise, unknownExercisef("%q has no registry entry", exerciseID)
	}

	value, ok, err := r.prompter.RequestInput(fmt.Sprintf("Contraseña para %s: ", exerciseID))
	if err != nil {
		return OutcomeNone, fmt.Errorf("prompt: %w", err)
	}
	if !ok {
		return OutcomeCancelled, nil
	}

	if !secret.Matches(value) {
		r.notifier.Notify(msgWrongPassword)
		return OutcomeWrongPassword, nil
	}

	blockID := BlockID(exerciseID)
	if !r.page.HasBlock(blockID) {
		r.notifier.Notify(fmt.Sprintf(msgMissingBlock, exerciseID))
		return OutcomeMissingBlock, missingBlockf("page has no element %q", blockID)
	}
	if err := r.page.ShowBlock(blockID); err != nil {
		return OutcomeNone, fmt.Errorf("show block %q: %w", blockID, err)
	}
	return OutcomeRevealed, nil
}
