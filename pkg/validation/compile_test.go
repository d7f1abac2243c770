package validation

import (
	"errors"
	"testing"

	"github.com/goliatone/go-showcase/pkg/model"
)

func signupDefinition() model.FormDefinition {
	return model.FormDefinition{
		Name: "signup",
		Fields: []model.FieldDefinition{
			{Name: "fullName", Kind: model.FieldKindText, Rules: []model.ValidationRule{
				{Kind: model.RuleRequired},
				{Kind: model.RuleMinLength, Params: map[string]string{"value": "2"}},
			}},
			{Name: "email", Kind: model.FieldKindEmail, Rules: []model.ValidationRule{
				{Kind: model.RuleRequired, Message: "We need your email"},
				{Kind: model.RuleEmail},
			}},
			{Name: "team", Kind: model.FieldKindSelect, Options: []model.Option{{Value: "eng"}, {Value: "ops"}}, Rules: []model.ValidationRule{
				{Kind: model.RuleOneOf},
			}},
			{Name: "code", Kind: model.FieldKindText, Rules: []model.ValidationRule{
				{Kind: model.RulePattern, Params: map[string]string{"pattern": `^[A-Z]{3}$`}},
				{Kind: model.RuleMaxLength, Params: map[string]string{"value": "3"}},
			}},
			{Name: "terms", Kind: model.FieldKindCheckbox, Rules: []model.ValidationRule{
				{Kind: model.RuleChecked},
			}},
			{Name: "notes", Kind: model.FieldKindTextarea},
		},
	}
}

func TestCompile_Messages(t *testing.T) {
	schema, err := Compile(signupDefinition())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, ok := schema["notes"]; ok {
		t.Fatalf("fields without rules should not get a validator")
	}

	cases := []struct {
		field string
		value model.Value
		want  string
	}{
		{"fullName", model.Text(""), "Full name is required"},
		{"fullName", model.Text("A"), "Full name must be at least 2 characters"},
		{"fullName", model.Text("Ada"), ""},
		{"email", model.Text(" "), "We need your email"},
		{"email", model.Text("not-an-email"), "Enter a valid email address"},
		{"email", model.Text("ada@example.com"), ""},
		{"team", model.Text("sales"), "Select a valid team"},
		{"team", model.Text(""), ""},
		{"team", model.Text("ops"), ""},
		{"code", model.Text("abc"), "Code has an invalid format"},
		{"code", model.Text("ABC"), ""},
		{"terms", model.Bool(false), "Terms must be checked"},
		{"terms", model.Bool(true), ""},
	}
	for _, tc := range cases {
		got := ""
		if err := schema[tc.field](tc.value); err != nil {
			got = err.Error()
		}
		if got != tc.want {
			t.Errorf("%s(%q): got %q, want %q", tc.field, tc.value.Text(), got, tc.want)
		}
	}
}

func TestCompile_FirstFailureWins(t *testing.T) {
	schema, err := Compile(signupDefinition())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	err = schema["code"](model.Text("abcd"))
	if err == nil || err.Error() != "Code has an invalid format" {
		t.Fatalf("expected pattern failure first, got %v", err)
	}
}

func TestCompile_InvalidRules(t *testing.T) {
	cases := map[string]model.FieldDefinition{
		"unknown":     {Name: "a", Kind: model.FieldKindText, Rules: []model.ValidationRule{{Kind: "shout"}}},
		"bad pattern": {Name: "a", Kind: model.FieldKindText, Rules: []model.ValidationRule{{Kind: model.RulePattern, Params: map[string]string{"pattern": "("}}}},
		"no limit":    {Name: "a", Kind: model.FieldKindText, Rules: []model.ValidationRule{{Kind: model.RuleMinLength}}},
		"no options":  {Name: "a", Kind: model.FieldKindText, Rules: []model.ValidationRule{{Kind: model.RuleOneOf}}},
	}
	for name, field := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Compile(model.FormDefinition{Name: "f", Fields: []model.FieldDefinition{field}})
			if !errors.Is(err, ErrInvalidRule) {
				t.Fatalf("expected ErrInvalidRule, got %v", err)
			}
		})
	}
}
