package definition

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-showcase/pkg/model"
)

// Store holds form definitions keyed by name.
type Store struct {
	forms map[string]model.FormDefinition
	order []string
}

// NewStore builds a store from in-memory definitions. Duplicate or invalid
// definitions are errors.
func NewStore(defs ...model.FormDefinition) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormDefinition, len(defs))}
	for _, def := range defs {
		if err := store.Add(def); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks fsys and parses every .json, .yaml, and .yml file. A nil
// filesystem yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormDefinition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(p) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", p, err)
		}
		def, err := Parse(data, p)
		if err != nil {
			return err
		}
		if err := store.Add(def); err != nil {
			return fmt.Errorf("%w (file %s)", err, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Add registers def.
func (s *Store) Add(def model.FormDefinition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("definition: %w", err)
	}
	if s.forms == nil {
		s.forms = make(map[string]model.FormDefinition)
	}
	if _, exists := s.forms[def.Name]; exists {
		return fmt.Errorf("definition: duplicate form %q", def.Name)
	}
	s.forms[def.Name] = def
	s.order = append(s.order, def.Name)
	sort.Strings(s.order)
	return nil
}

// Form returns the named definition.
func (s *Store) Form(name string) (model.FormDefinition, bool) {
	if s == nil {
		return model.FormDefinition{}, false
	}
	def, ok := s.forms[name]
	return def, ok
}

// Names lists the stored forms alphabetically.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Empty reports whether the store holds no forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type formFile struct {
	Name        string            `json:"name" yaml:"name"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	SubmitLabel string            `json:"submitLabel" yaml:"submitLabel"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
	Fields      []fieldFile       `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	Name        string                 `json:"name" yaml:"name"`
	Kind        string                 `json:"kind" yaml:"kind"`
	Label       string                 `json:"label" yaml:"label"`
	Placeholder string                 `json:"placeholder" yaml:"placeholder"`
	Help        string                 `json:"help" yaml:"help"`
	Options     []model.Option         `json:"options" yaml:"options"`
	Default     any                    `json:"default" yaml:"default"`
	Rules       []model.ValidationRule `json:"rules" yaml:"rules"`
}

// Parse decodes a single JSON or YAML definition. source names the input in
// error messages.
func Parse(data []byte, source string) (model.FormDefinition, error) {
	if strings.TrimSpace(string(data)) == "" {
		return model.FormDefinition{}, fmt.Errorf("definition: file %s is empty", source)
	}

	var raw formFile
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = formFile{}
		if yerr := yaml.Unmarshal(data, &raw); yerr != nil {
			return model.FormDefinition{}, fmt.Errorf("definition: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}
	return normalise(raw, source)
}

func normalise(raw formFile, source string) (model.FormDefinition, error) {
	def := model.FormDefinition{
		Name:        strings.TrimSpace(raw.Name),
		Title:       strings.TrimSpace(raw.Title),
		Description: sanitizeMarkup(raw.Description),
		SubmitLabel: strings.TrimSpace(raw.SubmitLabel),
		Metadata:    raw.Metadata,
		Fields:      make([]model.FieldDefinition, 0, len(raw.Fields)),
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(path.Base(source), path.Ext(source))
	}

	for _, f := range raw.Fields {
		field := model.FieldDefinition{
			Name:        strings.TrimSpace(f.Name),
			Kind:        model.FieldKind(strings.ToLower(strings.TrimSpace(f.Kind))),
			Label:       strings.TrimSpace(f.Label),
			Placeholder: strings.TrimSpace(f.Placeholder),
			Help:        sanitizeMarkup(f.Help),
			Options:     append([]model.Option(nil), f.Options...),
			Rules:       append([]model.ValidationRule(nil), f.Rules...),
		}
		if field.Kind == "" {
			field.Kind = model.FieldKindText
		}
		if f.Default != nil {
			value, err := model.ValueOf(f.Default)
			if err != nil {
				return model.FormDefinition{}, fmt.Errorf("definition: %s field %q default: %w", source, field.Name, err)
			}
			value = model.Coerce(field.Kind, value)
			field.Default = &value
		}
		def.Fields = append(def.Fields, field)
	}

	if err := def.Validate(); err != nil {
		return model.FormDefinition{}, fmt.Errorf("definition: %s: %w", source, err)
	}
	return def, nil
}

func isDefinitionFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
