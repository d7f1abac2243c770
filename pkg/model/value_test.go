package model

import (
	"encoding/json"
	"testing"
)

func TestValue_JSONShapes(t *testing.T) {
	payload, err := json.Marshal(map[string]Value{
		"name":  Text("Ada"),
		"terms": Bool(true),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(payload), `{"name":"Ada","terms":true}`; got != want {
		t.Fatalf("unexpected payload: got %s want %s", got, want)
	}

	var decoded map[string]Value
	if err := json.Unmarshal([]byte(`{"a":"x","b":false,"c":42}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded["a"].Equal(Text("x")) {
		t.Fatalf("expected text value, got %#v", decoded["a"])
	}
	if !decoded["b"].Equal(Bool(false)) {
		t.Fatalf("expected bool value, got %#v", decoded["b"])
	}
	if decoded["c"].Text() != "42" {
		t.Fatalf("expected numeric input kept as text, got %q", decoded["c"].Text())
	}
}

func TestCoerce_CheckboxReceivesBool(t *testing.T) {
	if got := Coerce(FieldKindCheckbox, Text("on")); !got.Equal(Bool(true)) {
		t.Fatalf("expected on -> true, got %#v", got)
	}
	if got := Coerce(FieldKindCheckbox, Text("")); !got.Equal(Bool(false)) {
		t.Fatalf("expected empty -> false, got %#v", got)
	}
	if got := Coerce(FieldKindText, Bool(true)); !got.Equal(Text("true")) {
		t.Fatalf("expected bool coerced to text, got %#v", got)
	}
}

func TestZeroValue_TypeCorrect(t *testing.T) {
	if !ZeroValue(FieldKindCheckbox).IsBool() {
		t.Fatalf("checkbox zero value must be boolean")
	}
	if ZeroValue(FieldKindSelect).IsBool() {
		t.Fatalf("select zero value must be text")
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"full_name":  "Full name",
		"startDate":  "Start date",
		"address-2":  "Address 2",
		"newsletter": "Newsletter",
		"":           "",
		"zipCode5":   "Zip code 5",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormDefinition_Validate(t *testing.T) {
	def := FormDefinition{
		Name: "signup",
		Fields: []FieldDefinition{
			{Name: "email", Kind: FieldKindEmail},
			{Name: "email", Kind: FieldKindText},
		},
	}
	if err := def.Validate(); err == nil {
		t.Fatalf("expected duplicate field error")
	}

	def.Fields[1] = FieldDefinition{Name: "role", Kind: FieldKindSelect}
	if err := def.Validate(); err == nil {
		t.Fatalf("expected select without options to fail")
	}

	def.Fields[1].Options = []Option{{Value: "dev"}}
	if err := def.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
