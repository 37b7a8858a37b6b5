// Package tui fills a form interactively in the terminal. A Session walks the
// form's controls in schema order, prompts for each one and feeds the answers
// back to the controller as events before submitting.
package tui

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

// Session drives one terminal form run.
type Session struct {
	driver   PromptDriver
	out      io.Writer
	theme    Theme
	pageSize int
	logger   zerolog.Logger
}

// New constructs a session. Without WithPromptDriver the survey driver is
// used.
func New(options ...Option) *Session {
	s := &Session{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(s.out)
	}
	return s
}

// Run prompts for every visible control and submits the form.
func (s *Session) Run(ctx context.Context, controller *form.Controller) (form.Record, error) {
	s.logger.Debug().Int("fields", controller.Schema().Len()).Msg("tui session start")

	for _, name := range controller.Schema().Names() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		control, ok := controller.Control(name)
		if !ok || control.Hidden || control.Disabled || control.ReadOnly {
			continue
		}
		if err := s.prompt(ctx, controller, control); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
	}

	record := controller.Submit()
	if err := s.driver.Info(ctx, s.theme.InfoPrefix+"Form submitted"); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Session) prompt(ctx context.Context, controller *form.Controller, control render.Control) error {
	message := s.message(control)

	switch control.Kind {
	case render.KindTextarea:
		text, err := s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: control.Value, Help: control.HelperText})
		if err != nil {
			return err
		}
		return change(controller, control, text)

	case render.KindSelect, render.KindRadioGroup:
		if len(control.Options) == 0 {
			return nil
		}
		labels := make([]string, 0, len(control.Options))
		selected := 0
		for i, option := range control.Options {
			labels = append(labels, option.Label)
			if option.Selected {
				selected = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: selected, Help: control.HelperText, PageSize: s.pageSize})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(control.Options) {
			return nil
		}
		return change(controller, control, control.Options[idx].Value)

	case render.KindSwitch, render.KindCheckbox:
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: control.Checked, Help: control.HelperText})
		if err != nil {
			return err
		}
		return change(controller, control, ok)

	case render.KindRating:
		levels := make([]string, 0, render.RatingLevels)
		for _, level := range control.Rating.Levels {
			levels = append(levels, strconv.Itoa(level))
		}
		current := int(control.Rating.Current) - 1
		idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: levels, DefaultIndex: current, Help: control.HelperText, PageSize: s.pageSize})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(control.Rating.Levels) {
			return nil
		}
		return change(controller, control, float64(control.Rating.Levels[idx]))

	case render.KindMultiSelect:
		return s.promptMultiSelect(ctx, controller, control, message)

	default:
		cfg := InputConfig{Message: message, Default: control.Value, Help: s.help(control)}
		if control.Type == model.FieldTypeNumber {
			cfg.Validator = validateNumber
		}
		ask := s.driver.Input
		if control.Type == model.FieldTypePassword {
			ask = s.driver.Password
			cfg.Default = ""
		}
		text, err := ask(ctx, cfg)
		if err != nil {
			return err
		}
		return change(controller, control, text)
	}
}

// promptMultiSelect offers every option with the current selection
// pre-checked, then reconciles the answer through select/remove events.
// Fields that allow new options loop on an add prompt afterwards.
func (s *Session) promptMultiSelect(ctx context.Context, controller *form.Controller, control render.Control, message string) error {
	values, labels := multiSelectChoices(controller.Schema().Options(control.Name), control.Selected)
	var defaults []int
	for _, chip := range control.Selected {
		defaults = append(defaults, slices.Index(values, chip.Value))
	}

	if len(values) > 0 {
		picked, err := s.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: labels, Defaults: defaults, Help: control.HelperText, PageSize: s.pageSize})
		if err != nil {
			return err
		}
		want := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(values) {
				want = append(want, values[idx])
			}
		}
		for _, chip := range control.Selected {
			if !slices.Contains(want, chip.Value) {
				if err := apply(controller, control.Name, form.ActionRemove, chip.Value); err != nil {
					return err
				}
			}
		}
		for _, value := range want {
			if err := apply(controller, control.Name, form.ActionSelect, value); err != nil {
				return err
			}
		}
	}

	if control.AddOption == nil {
		return nil
	}
	for {
		more, err := s.driver.Confirm(ctx, ConfirmConfig{Message: s.theme.PromptPrefix + "Add a new option to " + labelOf(control) + "?"})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		text, err := s.driver.Input(ctx, InputConfig{Message: s.theme.PromptPrefix + "New option"})
		if err != nil {
			return err
		}
		if err := apply(controller, control.Name, form.ActionPending, text); err != nil {
			return err
		}
		if err := apply(controller, control.Name, form.ActionAddOption, nil); err != nil {
			return err
		}
	}
}

func multiSelectChoices(options []model.Option, selected []render.Chip) (values, labels []string) {
	for _, option := range options {
		values = append(values, option.ValueString())
		labels = append(labels, option.Label)
	}
	for _, chip := range selected {
		if !slices.Contains(values, chip.Value) {
			values = append(values, chip.Value)
			labels = append(labels, chip.Label)
		}
	}
	return values, labels
}

func (s *Session) message(control render.Control) string {
	msg := s.theme.PromptPrefix + labelOf(control)
	if control.Required {
		msg += " *"
	}
	return msg
}

func (s *Session) help(control render.Control) string {
	if control.Kind != render.KindTemporal {
		return control.HelperText
	}
	format := map[string]string{
		string(model.FieldTypeDate):          "YYYY-MM-DD",
		string(model.FieldTypeTime):          "HH:MM",
		string(model.FieldTypeDateTimeLocal): "YYYY-MM-DDTHH:MM",
	}[control.InputType]
	return strings.TrimSpace(format + " " + control.HelperText)
}

func labelOf(control render.Control) string {
	if control.Label != "" {
		return control.Label
	}
	return control.Name
}

func change(controller *form.Controller, control render.Control, value any) error {
	return apply(controller, control.Name, form.ActionChange, value)
}

func apply(controller *form.Controller, name string, action form.Action, value any) error {
	return controller.Apply(form.Event{Field: name, Action: action, Value: value})
}

func validateNumber(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return fmt.Errorf("%q is not a number", text)
	}
	return nil
}
