// Package validation compiles declarative field rules into the validator map
// consumed by the form engine.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/model"
)

// ErrInvalidRule reports a rule that cannot be compiled.
var ErrInvalidRule = errors.New("validation: invalid rule")

type check func(model.Value) bool

// Compile builds a form.Schema from the rules declared on def. Fields without
// rules get no validator. Rules run in declaration order and the first
// failure produces the field error.
func Compile(def model.FormDefinition) (form.Schema, error) {
	schema := make(form.Schema, len(def.Fields))
	for _, field := range def.Fields {
		if len(field.Rules) == 0 {
			continue
		}
		validator, err := compileField(field)
		if err != nil {
			return nil, err
		}
		schema[field.Name] = validator
	}
	return schema, nil
}

// MustCompile is Compile for definitions known to be valid at init time.
func MustCompile(def model.FormDefinition) form.Schema {
	schema, err := Compile(def)
	if err != nil {
		panic(err)
	}
	return schema
}

type compiledRule struct {
	check   check
	message string
}

func compileField(field model.FieldDefinition) (form.Validator, error) {
	rules := make([]compiledRule, 0, len(field.Rules))
	label := field.DisplayLabel()
	for _, rule := range field.Rules {
		fn, message, err := compileRule(field, label, rule)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q rule %q: %v", ErrInvalidRule, field.Name, rule.Kind, err)
		}
		if custom := strings.TrimSpace(rule.Message); custom != "" {
			message = custom
		}
		rules = append(rules, compiledRule{check: fn, message: message})
	}

	return func(value model.Value) error {
		for _, rule := range rules {
			if !rule.check(value) {
				return errors.New(rule.message)
			}
		}
		return nil
	}, nil
}

func compileRule(field model.FieldDefinition, label string, rule model.ValidationRule) (check, string, error) {
	switch rule.Kind {
	case model.RuleRequired:
		return func(v model.Value) bool { return !v.IsEmpty() }, label + " is required", nil

	case model.RuleChecked:
		return func(v model.Value) bool { return v.Bool() }, label + " must be checked", nil

	case model.RuleEmail:
		return optional(isEmail), "Enter a valid email address", nil

	case model.RuleMinLength, model.RuleMaxLength:
		limit, err := intParam(rule, "value")
		if err != nil {
			return nil, "", err
		}
		if rule.Kind == model.RuleMinLength {
			return optional(func(s string) bool { return utf8.RuneCountInString(s) >= limit }),
				fmt.Sprintf("%s must be at least %d characters", label, limit), nil
		}
		return func(v model.Value) bool { return utf8.RuneCountInString(v.Text()) <= limit },
			fmt.Sprintf("%s must be at most %d characters", label, limit), nil

	case model.RulePattern:
		expr := strings.TrimSpace(rule.Params["pattern"])
		if expr == "" {
			return nil, "", errors.New("pattern param is required")
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, "", err
		}
		return optional(re.MatchString), label + " has an invalid format", nil

	case model.RuleOneOf:
		if len(field.Options) == 0 {
			return nil, "", errors.New("oneOf requires field options")
		}
		allowed := make(map[string]struct{}, len(field.Options))
		for _, opt := range field.Options {
			allowed[opt.Value] = struct{}{}
		}
		return optional(func(s string) bool {
			_, ok := allowed[s]
			return ok
		}), "Select a valid " + strings.ToLower(label), nil

	default:
		return nil, "", errors.New("unknown rule kind")
	}
}

// optional skips the check for empty values so that only "required" reports
// missing input.
func optional(fn func(string) bool) check {
	return func(v model.Value) bool {
		if v.IsEmpty() {
			return true
		}
		return fn(strings.TrimSpace(v.Text()))
	}
}

func intParam(rule model.ValidationRule, key string) (int, error) {
	raw := strings.TrimSpace(rule.Params[key])
	if raw == "" {
		return 0, fmt.Errorf("%s param is required", key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s param: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s param must not be negative", key)
	}
	return n, nil
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	if addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}
