package form

import "github.com/goliatone/go-showcase/pkg/model"

// FieldState is the per-field slice of form state.
type FieldState struct {
	Name    string      `json:"name"`
	Value   model.Value `json:"value"`
	Error   string      `json:"error,omitempty"`
	Touched bool        `json:"touched"`
}

// HasError reports whether a validation message is attached.
func (f FieldState) HasError() bool { return f.Error != "" }

// State is the single source of truth for one form instance. Transitions
// never mutate a State in place; Reduce returns a copy with a fresh Fields
// map, so holders of an older State keep a consistent snapshot.
type State struct {
	Fields       map[string]FieldState `json:"fields"`
	Order        []string              `json:"order"`
	IsSubmitting bool                  `json:"isSubmitting"`
	IsSubmitted  bool                  `json:"isSubmitted"`
	SubmitError  string                `json:"submitError,omitempty"`
}

// NewState builds the initial state for the ordered field names using the
// provided initial values.
func NewState(order []string, initial map[string]model.Value) State {
	fields := make(map[string]FieldState, len(order))
	for _, name := range order {
		fields[name] = FieldState{Name: name, Value: initial[name]}
	}
	return State{
		Fields: fields,
		Order:  append([]string(nil), order...),
	}
}

// Field returns the state of a named field.
func (s State) Field(name string) (FieldState, bool) {
	field, ok := s.Fields[name]
	return field, ok
}

// Values snapshots every field value into the flat map handed to submit
// callbacks (string or bool per field).
func (s State) Values() map[string]any {
	out := make(map[string]any, len(s.Fields))
	for name, field := range s.Fields {
		out[name] = field.Value.Interface()
	}
	return out
}

// Errors returns the non-empty field errors keyed by field name.
func (s State) Errors() map[string]string {
	var out map[string]string
	for name, field := range s.Fields {
		if field.Error == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[name] = field.Error
	}
	return out
}

// Valid reports whether no field carries an error.
func (s State) Valid() bool {
	for _, field := range s.Fields {
		if field.Error != "" {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Fields = cloneFields(s.Fields)
	out.Order = append([]string(nil), s.Order...)
	return out
}

func cloneFields(src map[string]FieldState) map[string]FieldState {
	out := make(map[string]FieldState, len(src))
	for name, field := range src {
		out[name] = field
	}
	return out
}
