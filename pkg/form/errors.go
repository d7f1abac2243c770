package form

import "errors"

var (
	// ErrUnknownField is returned when an operation names a field the form
	// does not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrSubmitInProgress is returned when Submit is called while a previous
	// submission is still pending.
	ErrSubmitInProgress = errors.New("form: submit already in progress")
	// ErrValidation is returned by Submit when at least one field failed
	// validation. The callback is not invoked in that case.
	ErrValidation = errors.New("form: validation failed")
	// ErrSubmitPanicked wraps the value recovered from a panicking submit
	// callback.
	ErrSubmitPanicked = errors.New("submit callback panicked")
)

// DefaultSubmitErrorMessage is stored in State.SubmitError when the submit
// callback fails with an error that carries no message, or panics.
const DefaultSubmitErrorMessage = "An error occurred while submitting the form"

// UserError carries a display message for State.SubmitError alongside the
// underlying cause. Submit callbacks return it when err.Error() is not fit
// to show.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}

func (e *UserError) Unwrap() error {
	return e.Err
}
