package model

import (
	"errors"
	"fmt"
	"strings"
)

// FieldKind enumerates the input widgets a field renders as.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindTextarea FieldKind = "textarea"
	FieldKindSelect   FieldKind = "select"
	FieldKindCheckbox FieldKind = "checkbox"
)

// Valid reports whether k is a known field kind.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindText, FieldKindEmail, FieldKindTextarea, FieldKindSelect, FieldKindCheckbox:
		return true
	default:
		return false
	}
}

const (
	RuleRequired  = "required"
	RuleEmail     = "email"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleOneOf     = "oneOf"
	RuleChecked   = "checked"
)

// ValidationRule is a single declarative constraint. Length limits store their
// threshold in Params["value"], pattern rules keep the expression in
// Params["pattern"]. Message overrides the default error text.
type ValidationRule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// Option is a select choice.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// DisplayLabel falls back to the value when no label is set.
func (o Option) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// FieldDefinition declares one input of a form.
type FieldDefinition struct {
	Name        string           `json:"name" yaml:"name"`
	Kind        FieldKind        `json:"kind" yaml:"kind"`
	Label       string           `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string           `json:"help,omitempty" yaml:"help,omitempty"`
	Options     []Option         `json:"options,omitempty" yaml:"options,omitempty"`
	Default     *Value           `json:"default,omitempty" yaml:"-"`
	Rules       []ValidationRule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// DisplayLabel returns the explicit label or one derived from the name.
func (f FieldDefinition) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return DefaultLabeler(f.Name)
}

// Required reports whether the field carries a required or checked rule.
func (f FieldDefinition) Required() bool {
	for _, rule := range f.Rules {
		if rule.Kind == RuleRequired || rule.Kind == RuleChecked {
			return true
		}
	}
	return false
}

// InitialValue returns the definition default coerced to the field kind, or
// the type-correct empty value.
func (f FieldDefinition) InitialValue() Value {
	if f.Default != nil {
		return Coerce(f.Kind, *f.Default)
	}
	return ZeroValue(f.Kind)
}

// FormDefinition is the declarative description of one form.
type FormDefinition struct {
	Name        string            `json:"name" yaml:"name"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	Fields      []FieldDefinition `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field looks up a field definition by name.
func (d FormDefinition) Field(name string) (FieldDefinition, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// FieldNames returns field names in declaration order.
func (d FormDefinition) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Validate checks structural invariants: a form name, unique non-empty field
// names, known kinds, and options for select fields.
func (d FormDefinition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("model: form name is required")
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("model: form %q declares no fields", d.Name)
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for i, field := range d.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("model: form %q field %d has no name", d.Name, i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("model: form %q declares field %q twice", d.Name, name)
		}
		seen[name] = struct{}{}
		if !field.Kind.Valid() {
			return fmt.Errorf("model: form %q field %q has unknown kind %q", d.Name, name, field.Kind)
		}
		if field.Kind == FieldKindSelect && len(field.Options) == 0 {
			return fmt.Errorf("model: form %q select field %q has no options", d.Name, name)
		}
	}
	return nil
}
