// Package openapi derives form definitions from the JSON request body of an
// OpenAPI 3 operation.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-showcase/pkg/model"
)

// OrderExtension lists property names in display order. Properties missing
// from the list follow alphabetically.
const OrderExtension = "x-order"

// TextareaThreshold is the maxLength above which a string renders as a
// textarea.
const TextareaThreshold = 200

var (
	// ErrOperationNotFound is returned when no operation carries the id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no object body.
	ErrNoRequestBody = errors.New("openapi: operation has no object request body")
)

// FromDocument loads raw and converts the request body of operationID into a
// form definition named after the operation.
func FromDocument(ctx context.Context, raw []byte, operationID string) (model.FormDefinition, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(raw) == 0 {
		return model.FormDefinition{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return model.FormDefinition{}, fmt.Errorf("openapi: load document: %w", err)
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return model.FormDefinition{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(op.RequestBody)
	if body == nil || !hasType(body, openapi3.TypeObject) || len(body.Properties) == 0 {
		return model.FormDefinition{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	def := model.FormDefinition{
		Name:        operationID,
		Title:       firstNonEmpty(op.Summary, body.Title),
		Description: firstNonEmpty(op.Description, body.Description),
		Metadata:    map[string]string{"source": "openapi"},
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	for _, name := range propertyOrder(body) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok, err := convertProperty(name, ref.Value, required[name])
		if err != nil {
			return model.FormDefinition{}, err
		}
		if ok {
			def.Fields = append(def.Fields, field)
		}
	}

	if err := def.Validate(); err != nil {
		return model.FormDefinition{}, fmt.Errorf("openapi: %s: %w", operationID, err)
	}
	return def, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	content := ref.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertProperty(name string, src *openapi3.Schema, required bool) (model.FieldDefinition, bool, error) {
	field := model.FieldDefinition{
		Name:  name,
		Label: src.Title,
		Help:  src.Description,
	}

	switch {
	case hasType(src, openapi3.TypeBoolean):
		field.Kind = model.FieldKindCheckbox
		if required {
			field.Rules = append(field.Rules, model.ValidationRule{Kind: model.RuleChecked})
		}
	case hasType(src, openapi3.TypeString):
		field.Kind = stringKind(src)
		if required {
			field.Rules = append(field.Rules, model.ValidationRule{Kind: model.RuleRequired})
		}
		if field.Kind == model.FieldKindSelect {
			for _, raw := range src.Enum {
				value := fmt.Sprint(raw)
				field.Options = append(field.Options, model.Option{Value: value, Label: model.DefaultLabeler(value)})
			}
			field.Rules = append(field.Rules, model.ValidationRule{Kind: model.RuleOneOf})
		}
		if field.Kind == model.FieldKindEmail {
			field.Rules = append(field.Rules, model.ValidationRule{Kind: model.RuleEmail})
		}
		if src.MinLength > 0 {
			field.Rules = append(field.Rules, lengthRule(model.RuleMinLength, src.MinLength))
		}
		if src.MaxLength != nil {
			field.Rules = append(field.Rules, lengthRule(model.RuleMaxLength, *src.MaxLength))
		}
		if src.Pattern != "" {
			field.Rules = append(field.Rules, model.ValidationRule{
				Kind:   model.RulePattern,
				Params: map[string]string{"pattern": src.Pattern},
			})
		}
	default:
		// Objects, arrays, and numbers have no widget in this form set.
		return model.FieldDefinition{}, false, nil
	}

	if src.Default != nil {
		value, err := model.ValueOf(src.Default)
		if err != nil {
			return model.FieldDefinition{}, false, fmt.Errorf("openapi: property %q default: %w", name, err)
		}
		value = model.Coerce(field.Kind, value)
		field.Default = &value
	}
	return field, true, nil
}

func stringKind(src *openapi3.Schema) model.FieldKind {
	switch {
	case len(src.Enum) > 0:
		return model.FieldKindSelect
	case strings.EqualFold(src.Format, "email"):
		return model.FieldKindEmail
	case strings.EqualFold(src.Format, "textarea"):
		return model.FieldKindTextarea
	case src.MaxLength != nil && *src.MaxLength > TextareaThreshold:
		return model.FieldKindTextarea
	default:
		return model.FieldKindText
	}
}

func lengthRule(kind string, n uint64) model.ValidationRule {
	return model.ValidationRule{Kind: kind, Params: map[string]string{"value": strconv.FormatUint(n, 10)}}
}

func propertyOrder(src *openapi3.Schema) []string {
	seen := make(map[string]bool, len(src.Properties))
	var order []string
	if raw, ok := src.Extensions[OrderExtension].([]any); ok {
		for _, entry := range raw {
			name, ok := entry.(string)
			if !ok || seen[name] {
				continue
			}
			if _, exists := src.Properties[name]; exists {
				order = append(order, name)
				seen[name] = true
			}
		}
	}
	rest := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func hasType(src *openapi3.Schema, typ string) bool {
	if src == nil || src.Type == nil {
		return false
	}
	return src.Type.Is(typ)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
