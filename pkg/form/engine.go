package form

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-showcase/pkg/model"
)

// Engine owns the state of one form instance. Dispatches are serialised, so
// every transition applies atomically. Listeners run after the lock is
// released and may call back into the engine.
type Engine struct {
	mu sync.Mutex

	def              model.FormDefinition
	state            State
	kinds            map[string]model.FieldKind
	initial          map[string]model.Value
	initialOverrides map[string]model.Value
	schema           Schema
	submit           SubmitFunc
	fallback         string
	listeners        []Listener
	resets           uint64
}

// New builds an engine for def. Initial values come from WithInitialValues,
// then from field defaults, then from the type-correct empty value.
func New(def model.FormDefinition, options ...Option) (*Engine, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		def:      def,
		kinds:    make(map[string]model.FieldKind, len(def.Fields)),
		initial:  make(map[string]model.Value, len(def.Fields)),
		fallback: DefaultSubmitErrorMessage,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	for _, field := range def.Fields {
		e.kinds[field.Name] = field.Kind
		value := field.InitialValue()
		if override, ok := e.initialOverrides[field.Name]; ok {
			value = model.Coerce(field.Kind, override)
		}
		e.initial[field.Name] = value
	}
	for name := range e.initialOverrides {
		if _, ok := e.kinds[name]; !ok {
			return nil, fmt.Errorf("%w %q in initial values", ErrUnknownField, name)
		}
	}
	for name := range e.schema {
		if _, ok := e.kinds[name]; !ok {
			return nil, fmt.Errorf("%w %q in validation schema", ErrUnknownField, name)
		}
	}

	e.state = NewState(def.FieldNames(), e.initial)
	return e, nil
}

// Definition returns the form definition the engine was built from.
func (e *Engine) Definition() model.FormDefinition {
	return e.def
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Subscribe registers a listener and returns a function that removes it.
func (e *Engine) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
	idx := len(e.listeners) - 1
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if idx < len(e.listeners) {
			e.listeners[idx] = nil
		}
	}
}

// Dispatch applies a raw action.
func (e *Engine) Dispatch(action Action) State {
	e.mu.Lock()
	next := e.applyLocked(action)
	listeners := e.listenersLocked()
	e.mu.Unlock()

	notify(listeners, next)
	return next.Clone()
}

// SetFieldValue replaces a field value (coerced to the field kind) and clears
// its error. It does not validate.
func (e *Engine) SetFieldValue(name string, value model.Value) error {
	kind, ok := e.kinds[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	e.Dispatch(SetValue{Name: name, Value: model.Coerce(kind, value)})
	return nil
}

// SetFieldError attaches a validation message without touching value or
// touched flag.
func (e *Engine) SetFieldError(name, message string) error {
	if _, ok := e.kinds[name]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	e.Dispatch(SetError{Name: name, Message: message})
	return nil
}

// SetFieldTouched marks a field as interacted with.
func (e *Engine) SetFieldTouched(name string) error {
	if _, ok := e.kinds[name]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	e.Dispatch(SetTouched{Name: name})
	return nil
}

// BlurField marks a field touched and stores the validation result for its
// current value. It returns the message ("" when valid).
func (e *Engine) BlurField(name string) (string, error) {
	if _, ok := e.kinds[name]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownField, name)
	}

	e.mu.Lock()
	e.applyLocked(SetTouched{Name: name})
	message := e.ValidateField(name, e.state.Fields[name].Value)
	next := e.applyLocked(SetError{Name: name, Message: message})
	listeners := e.listenersLocked()
	e.mu.Unlock()

	notify(listeners, next)
	return message, nil
}

// ValidateField runs the schema validator for name against value. Fields
// without a validator are always valid.
func (e *Engine) ValidateField(name string, value model.Value) string {
	validator := e.schema[name]
	if validator == nil {
		return ""
	}
	if err := validator(value); err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			return msg
		}
		return "Invalid value"
	}
	return ""
}

// Submit validates every field and, when all pass, invokes the submit
// callback with the flat value map. Validation failures attach field errors
// and return ErrValidation without calling the callback. Callback errors are
// stored in State.SubmitError (a UserError's Message takes precedence) and
// returned wrapped. A panicking callback fails with ErrSubmitPanicked. IsSubmitting is cleared
// on every path before Submit returns.
func (e *Engine) Submit(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	e.mu.Lock()
	if e.state.IsSubmitting {
		e.mu.Unlock()
		return ErrSubmitInProgress
	}
	started := e.applyLocked(SubmitStarted{})
	values := started.Values()
	generation := e.resets

	var failed map[string]string
	for _, name := range started.Order {
		if msg := e.ValidateField(name, started.Fields[name].Value); msg != "" {
			if failed == nil {
				failed = make(map[string]string)
			}
			failed[name] = msg
		}
	}

	if len(failed) > 0 {
		next := e.applyLocked(ValidationFailed{Errors: failed})
		listeners := e.listenersLocked()
		e.mu.Unlock()

		notify(listeners, started)
		notify(listeners, next)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(sortedKeys(failed), ", "))
	}

	submit := e.submit
	listeners := e.listenersLocked()
	e.mu.Unlock()
	notify(listeners, started)

	submitErr := runSubmit(ctx, submit, values)

	var result Action = SubmitSucceeded{}
	if submitErr != nil {
		msg := strings.TrimSpace(submitErr.Error())
		var userErr *UserError
		if errors.As(submitErr, &userErr) {
			msg = strings.TrimSpace(userErr.Message)
		}
		if msg == "" || errors.Is(submitErr, ErrSubmitPanicked) {
			msg = e.fallback
		}
		result = SubmitFailed{Message: msg}
	}

	e.mu.Lock()
	if e.resets != generation {
		result = SubmitSettled{}
	}
	next := e.applyLocked(result)
	listeners = e.listenersLocked()
	e.mu.Unlock()
	notify(listeners, next)

	if submitErr != nil {
		return fmt.Errorf("form: submit: %w", submitErr)
	}
	return nil
}

// Reset restores every field to its initial value and clears touched flags,
// errors, and the submitted flag. A submission already in flight keeps the
// form submitting until its callback returns, and its outcome is dropped.
func (e *Engine) Reset() State {
	initial := make(map[string]model.Value, len(e.initial))
	for name, value := range e.initial {
		initial[name] = value
	}
	return e.Dispatch(Reset{Initial: initial})
}

// runSubmit calls fn and turns a panic into an error so the submission
// always settles.
func runSubmit(ctx context.Context, fn SubmitFunc, values map[string]any) (err error) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSubmitPanicked, r)
		}
	}()
	return fn(ctx, values)
}

func (e *Engine) applyLocked(action Action) State {
	if _, ok := action.(Reset); ok {
		e.resets++
	}
	e.state = Reduce(e.state, action)
	return e.state
}

func (e *Engine) listenersLocked() []Listener {
	if len(e.listeners) == 0 {
		return nil
	}
	return append([]Listener(nil), e.listeners...)
}

func notify(listeners []Listener, state State) {
	for _, fn := range listeners {
		if fn == nil {
			continue
		}
		fn(state.Clone())
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
