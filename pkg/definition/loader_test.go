package definition

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-showcase/pkg/model"
)

func TestEmbedded_Registration(t *testing.T) {
	store, err := Embedded()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	def, ok := store.Form("registration")
	if !ok {
		t.Fatalf("registration form missing; have %v", store.Names())
	}

	want := []string{"fullName", "email", "department", "bio", "newsletter", "terms"}
	if diff := cmp.Diff(want, def.FieldNames()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}

	newsletter, _ := def.Field("newsletter")
	if !newsletter.InitialValue().IsBool() {
		t.Fatalf("checkbox default should be boolean")
	}
	department, _ := def.Field("department")
	if got := department.InitialValue().Text(); got != "engineering" {
		t.Fatalf("unexpected department default %q", got)
	}
	if !strings.Contains(def.Description, "<strong>required</strong>") {
		t.Fatalf("allowed markup should survive sanitising: %q", def.Description)
	}
}

func TestParse_JSONAndSanitize(t *testing.T) {
	raw := []byte(`{
  "title": "Contact",
  "description": "Hello <script>alert(1)</script><em>there</em>",
  "fields": [
    {"name": "email", "kind": "EMAIL", "rules": [{"kind": "required"}]},
    {"name": "agree", "kind": "checkbox", "default": "yes", "help": "<a href=\"javascript:alert(1)\">terms</a>"}
  ]
}`)
	def, err := Parse(raw, "forms/contact.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.Name != "contact" {
		t.Fatalf("name should default to file stem, got %q", def.Name)
	}
	if strings.Contains(def.Description, "script") || !strings.Contains(def.Description, "<em>there</em>") {
		t.Fatalf("description not sanitised: %q", def.Description)
	}
	email, _ := def.Field("email")
	if email.Kind != model.FieldKindEmail {
		t.Fatalf("kind should be normalised, got %q", email.Kind)
	}
	agree, _ := def.Field("agree")
	if !agree.InitialValue().Equal(model.Bool(true)) {
		t.Fatalf("checkbox default should coerce to true")
	}
	if strings.Contains(agree.Help, "javascript") {
		t.Fatalf("unsafe link survived: %q", agree.Help)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	dup := fstest.MapFS{
		"a.yaml": {Data: []byte("name: same\nfields:\n  - name: x\n")},
		"b.yaml": {Data: []byte("name: same\nfields:\n  - name: y\n")},
	}
	if _, err := LoadFS(dup); err == nil || !strings.Contains(err.Error(), "duplicate form") {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	invalid := fstest.MapFS{
		"bad.yaml": {Data: []byte("name: bad\nfields:\n  - name: pick\n    kind: select\n")},
	}
	if _, err := LoadFS(invalid); err == nil {
		t.Fatalf("expected select without options to fail")
	}

	empty := fstest.MapFS{"empty.json": {Data: []byte("  ")}}
	if _, err := LoadFS(empty); err == nil {
		t.Fatalf("expected empty file error")
	}

	store, err := LoadFS(fstest.MapFS{"notes.txt": {Data: []byte("ignored")}})
	if err != nil || !store.Empty() {
		t.Fatalf("non-definition files should be ignored: %v", err)
	}
}
