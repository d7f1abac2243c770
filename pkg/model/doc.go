// Package model defines the declarative form model shared by the form engine,
// the validation compiler, the definition loaders, and the renderers.
//
// A FormDefinition lists FieldDefinitions in display order. Each field carries
// a FieldKind (text, email, textarea, select, checkbox), optional select
// options, an optional default Value, and ValidationRules. Validation rules use
// canonical identifiers (required, email, minLength, maxLength, pattern,
// oneOf, checked) with string parameters so definitions loaded from YAML,
// JSON, or OpenAPI documents compile to the same validators.
//
// Value is a small tagged union holding either text or a boolean. Text kinds
// always hold text values and checkboxes always hold booleans, which keeps
// resets and submissions type-consistent.
package model
