// Package tui drives showcase widgets from a terminal: a form runner built on
// survey prompts and a plain-text grid printer.
package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/model"
)

// Runner prompts for every field of a form engine, validating each answer as
// the field is left, then submits.
type Runner struct {
	driver      PromptDriver
	theme       Theme
	maxAttempts int
	retry       bool
	stripper    *bluemonday.Policy
}

// NewRunner builds a runner using the survey driver unless overridden.
func NewRunner(options ...Option) *Runner {
	r := &Runner{
		driver:      NewSurveyDriver(),
		theme:       DefaultTheme,
		maxAttempts: 5,
		retry:       true,
		stripper:    bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run fills and submits the form. It returns the final state; the error is
// the last submit error when the user declines to retry.
func (r *Runner) Run(ctx context.Context, engine *form.Engine) (form.State, error) {
	if engine == nil {
		return form.State{}, errors.New("tui: form engine is required")
	}
	def := engine.Definition()

	if err := r.info(ctx, r.theme.InfoPrefix+headerLine(def)); err != nil {
		return engine.State(), err
	}
	if desc := r.plain(def.Description); desc != "" {
		if err := r.info(ctx, desc); err != nil {
			return engine.State(), err
		}
	}

	if err := r.promptFields(ctx, engine, def.Fields); err != nil {
		return engine.State(), err
	}

	for {
		err := engine.Submit(ctx)
		switch {
		case err == nil:
			return engine.State(), r.info(ctx, r.theme.SuccessPrefix+"Submitted successfully.")

		case errors.Is(err, form.ErrValidation):
			var invalid []model.FieldDefinition
			state := engine.State()
			for _, field := range def.Fields {
				if state.Fields[field.Name].HasError() {
					invalid = append(invalid, field)
				}
			}
			if len(invalid) == 0 {
				return state, err
			}
			if perr := r.promptFields(ctx, engine, invalid); perr != nil {
				return engine.State(), perr
			}

		default:
			state := engine.State()
			if ierr := r.info(ctx, r.theme.ErrorPrefix+state.SubmitError); ierr != nil {
				return state, ierr
			}
			if !r.retry {
				return state, err
			}
			again, cerr := r.driver.Confirm(ctx, ConfirmConfig{Message: "Submission failed. Try again?", Default: true})
			if cerr != nil {
				return state, cerr
			}
			if !again {
				return state, err
			}
		}
	}
}

func (r *Runner) promptFields(ctx context.Context, engine *form.Engine, fields []model.FieldDefinition) error {
	for _, field := range fields {
		if err := r.promptField(ctx, engine, field); err != nil {
			return err
		}
	}
	return nil
}

// promptField asks until the field validates or the attempt budget is spent.
func (r *Runner) promptField(ctx context.Context, engine *form.Engine, field model.FieldDefinition) error {
	for attempt := 1; ; attempt++ {
		current := engine.State().Fields[field.Name].Value
		value, err := r.ask(ctx, engine, field, current)
		if err != nil {
			return err
		}
		if err := engine.SetFieldValue(field.Name, value); err != nil {
			return err
		}
		message, err := engine.BlurField(field.Name)
		if err != nil {
			return err
		}
		if message == "" {
			return nil
		}
		if err := r.info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: field %q", ErrTooManyAttempts, field.Name)
		}
	}
}

func (r *Runner) ask(ctx context.Context, engine *form.Engine, field model.FieldDefinition, current model.Value) (model.Value, error) {
	label := field.DisplayLabel()
	if field.Required() {
		label += " *"
	}
	help := r.plain(field.Help)
	validate := func(s string) error {
		if msg := engine.ValidateField(field.Name, model.Text(s)); msg != "" {
			return errors.New(msg)
		}
		return nil
	}

	switch field.Kind {
	case model.FieldKindCheckbox:
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: current.Bool(), Help: help})
		return model.Bool(ok), err

	case model.FieldKindSelect:
		labels := make([]string, len(field.Options))
		defaultIdx := 0
		for i, opt := range field.Options {
			labels[i] = opt.DisplayLabel()
			if opt.Value == current.Text() {
				defaultIdx = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: label, Options: labels, DefaultIndex: defaultIdx, Help: help})
		if err != nil {
			return model.Value{}, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return model.Text(""), nil
		}
		return model.Text(field.Options[idx].Value), nil

	case model.FieldKindTextarea:
		text, err := r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current.Text(), Help: help, Validator: validate})
		return model.Text(text), err

	default:
		text, err := r.driver.Input(ctx, InputConfig{Message: label, Default: current.Text(), Help: help, Validator: validate})
		return model.Text(strings.TrimSpace(text)), err
	}
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}

// plain strips markup from description and help text for terminal output.
func (r *Runner) plain(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(r.stripper.Sanitize(s)))
}

func headerLine(def model.FormDefinition) string {
	if def.Title != "" {
		return def.Title
	}
	return model.DefaultLabeler(def.Name)
}
