package form

import "github.com/goliatone/go-showcase/pkg/model"

// Action is a state transition request consumed by Reduce. The set of
// variants is closed: only types declared in this package implement it.
type Action interface {
	isAction()
}

// SetValue replaces a field value and clears its error.
type SetValue struct {
	Name  string
	Value model.Value
}

// SetError attaches (or, with an empty message, clears) a field error.
type SetError struct {
	Name    string
	Message string
}

// SetTouched marks a field as interacted with.
type SetTouched struct {
	Name string
}

// SubmitStarted marks the form as submitting and clears the submit error.
type SubmitStarted struct{}

// ValidationFailed attaches errors to the failing fields, marks every field
// touched so the messages display, and ends the submission.
type ValidationFailed struct {
	Errors map[string]string
}

// SubmitSucceeded ends the submission and marks the form submitted.
type SubmitSucceeded struct{}

// SubmitFailed ends the submission with a form-level message.
type SubmitFailed struct {
	Message string
}

// SubmitSettled ends a submission whose form was reset while the callback
// ran. Only IsSubmitting is cleared; the outcome is discarded.
type SubmitSettled struct{}

// Reset restores every field to the supplied initial values and clears
// touched flags, errors, and the submitted flag. A pending submission keeps
// IsSubmitting until its callback returns.
type Reset struct {
	Initial map[string]model.Value
}

func (SetValue) isAction()         {}
func (SetError) isAction()         {}
func (SetTouched) isAction()       {}
func (SubmitStarted) isAction()    {}
func (ValidationFailed) isAction() {}
func (SubmitSucceeded) isAction()  {}
func (SubmitFailed) isAction()     {}
func (SubmitSettled) isAction()    {}
func (Reset) isAction()            {}
