package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the payload stored in a Value.
type ValueKind uint8

const (
	ValueText ValueKind = iota
	ValueBool
)

// Value is either a text or a boolean form value. The zero Value is the empty
// text value.
type Value struct {
	kind ValueKind
	text string
	flag bool
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{kind: ValueText, text: s}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: ValueBool, flag: b}
}

// Kind reports the payload type.
func (v Value) Kind() ValueKind { return v.kind }

// IsBool reports whether the value holds a boolean.
func (v Value) IsBool() bool { return v.kind == ValueBool }

// Text returns the text payload; boolean values render as "true"/"false".
func (v Value) Text() string {
	if v.kind == ValueBool {
		return strconv.FormatBool(v.flag)
	}
	return v.text
}

// Bool returns the boolean payload. Text values are true when they parse as a
// truthy checkbox submission ("true", "on", "1", "yes").
func (v Value) Bool() bool {
	if v.kind == ValueBool {
		return v.flag
	}
	return truthy(v.text)
}

// IsEmpty reports whether a text value is blank or a boolean value is false.
func (v Value) IsEmpty() bool {
	if v.kind == ValueBool {
		return !v.flag
	}
	return strings.TrimSpace(v.text) == ""
}

// Interface returns the payload as string or bool, the shape handed to submit
// callbacks.
func (v Value) Interface() any {
	if v.kind == ValueBool {
		return v.flag
	}
	return v.text
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.Text()
}

// Equal reports whether two values hold the same kind and payload.
func (v Value) Equal(other Value) bool {
	return v == other
}

// MarshalJSON encodes text as a JSON string and booleans as JSON bools.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON accepts JSON strings, bools, and numbers (kept as text).
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ValueOf converts loosely typed input (YAML/JSON decoding, request payloads)
// into a Value.
func ValueOf(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Text(""), nil
	case Value:
		return typed, nil
	case string:
		return Text(typed), nil
	case bool:
		return Bool(typed), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return Text(fmt.Sprint(typed)), nil
	default:
		return Value{}, fmt.Errorf("model: unsupported value type %T", raw)
	}
}

// Coerce adapts v to the value type expected by kind: checkboxes receive
// booleans, every other kind receives text.
func Coerce(kind FieldKind, v Value) Value {
	if kind == FieldKindCheckbox {
		if v.IsBool() {
			return v
		}
		return Bool(truthy(v.text))
	}
	if v.IsBool() {
		return Text(v.Text())
	}
	return v
}

// ZeroValue returns the type-correct empty value for kind.
func ZeroValue(kind FieldKind) Value {
	if kind == FieldKindCheckbox {
		return Bool(false)
	}
	return Text("")
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1", "yes", "checked":
		return true
	default:
		return false
	}
}
