package form

import (
	"strings"

	"github.com/goliatone/go-showcase/pkg/model"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSchema installs the validation schema.
func WithSchema(schema Schema) Option {
	return func(e *Engine) {
		if len(schema) == 0 {
			return
		}
		if e.schema == nil {
			e.schema = make(Schema, len(schema))
		}
		for name, validator := range schema {
			e.schema[name] = validator
		}
	}
}

// WithSubmit installs the submit callback. Without one, valid submissions
// succeed immediately.
func WithSubmit(fn SubmitFunc) Option {
	return func(e *Engine) {
		e.submit = fn
	}
}

// WithInitialValues overrides definition defaults. The values are also what
// Reset restores.
func WithInitialValues(values map[string]model.Value) Option {
	return func(e *Engine) {
		for name, value := range values {
			if e.initialOverrides == nil {
				e.initialOverrides = make(map[string]model.Value, len(values))
			}
			e.initialOverrides[name] = value
		}
	}
}

// WithSubmitErrorFallback replaces DefaultSubmitErrorMessage.
func WithSubmitErrorFallback(message string) Option {
	return func(e *Engine) {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			e.fallback = trimmed
		}
	}
}

// WithListener registers a state listener at construction time.
func WithListener(fn Listener) Option {
	return func(e *Engine) {
		if fn != nil {
			e.listeners = append(e.listeners, fn)
		}
	}
}
