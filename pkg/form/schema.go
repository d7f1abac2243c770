package form

import (
	"context"

	"github.com/goliatone/go-showcase/pkg/model"
)

// Validator checks a single field value. A nil error means valid; otherwise
// the error message becomes the field error.
type Validator func(value model.Value) error

// Schema maps field names to validators. Fields without an entry are always
// valid.
type Schema map[string]Validator

// SubmitFunc receives the flat value map (string or bool per field) of a form
// that passed validation. Returning an error marks the submission failed.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// Listener observes every state produced by the engine.
type Listener func(State)
