package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	multiConfigs []SelectConfig
	selConfigs   []SelectConfig
	inputErr     error
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selConfigs = append(s.selConfigs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiConfigs = append(s.multiConfigs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newController(t *testing.T, defaults map[string]any, fields ...model.FieldDescriptor) *form.Controller {
	t.Helper()
	schema, err := model.NewSchema(fields...)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	controller, err := form.New(schema, form.WithDefaults(defaults))
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return controller
}

func TestSession_RunFillsEveryKind(t *testing.T) {
	controller := newController(t, nil,
		model.FieldDescriptor{Name: "name", Type: model.FieldTypeText, Label: "Name"},
		model.FieldDescriptor{Name: "password", Type: model.FieldTypePassword},
		model.FieldDescriptor{Name: "age", Type: model.FieldTypeNumber},
		model.FieldDescriptor{Name: "bio", Type: model.FieldTypeTextarea},
		model.FieldDescriptor{Name: "role", Type: model.FieldTypeSelect, Options: []model.Option{
			{Label: "User", Value: "user"},
			{Label: "Admin", Value: "admin"},
		}},
		model.FieldDescriptor{Name: "newsletter", Type: model.FieldTypeCheckbox},
		model.FieldDescriptor{Name: "rating", Type: model.FieldTypeRating},
		model.FieldDescriptor{Name: "availableFrom", Type: model.FieldTypeDate},
		model.FieldDescriptor{Name: "regions", Type: model.FieldTypeMultiSelect, AddNewOption: true, Options: []model.Option{
			{Label: "Europe", Value: "europe"},
			{Label: "Asia", Value: "asia"},
		}},
		model.FieldDescriptor{Name: "internal", Type: model.FieldTypeText, Hidden: true},
	)
	driver := &stubDriver{
		inputs:    []string{"Ann", "34", "2024-01-02", "North America"},
		passwords: []string{"s3cret"},
		textAreas: []string{"Hello"},
		selectIdx: []int{1, 3},
		confirm:   []bool{true, true, false},
		multiIdx:  [][]int{{1}},
	}

	record, err := New(WithPromptDriver(driver)).Run(context.Background(), controller)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := form.Record{
		"name":          "Ann",
		"password":      "s3cret",
		"age":           float64(34),
		"bio":           "Hello",
		"role":          "admin",
		"newsletter":    true,
		"rating":        float64(4),
		"availableFrom": "2024-01-02",
		"regions":       []string{"asia", "north-america"},
		"internal":      "",
	}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if driver.inputPos != len(driver.inputs) || driver.confirmPos != len(driver.confirm) {
		t.Fatalf("prompts not consumed as expected: inputs=%d confirms=%d", driver.inputPos, driver.confirmPos)
	}
	if diff := cmp.Diff([]string{"Form submitted"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_MultiSelectReconcilesSelection(t *testing.T) {
	controller := newController(t, map[string]any{"regions": []string{"europe"}},
		model.FieldDescriptor{Name: "regions", Type: model.FieldTypeMultiSelectFixed, Options: []model.Option{
			{Label: "Europe", Value: "europe"},
			{Label: "Asia", Value: "asia"},
		}},
	)
	driver := &stubDriver{multiIdx: [][]int{{1}}}

	record, err := New(WithPromptDriver(driver)).Run(context.Background(), controller)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"asia"}, record["regions"]); diff != "" {
		t.Fatalf("regions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, driver.multiConfigs[0].Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_AbortStopsRun(t *testing.T) {
	var submitted bool
	schema := model.MustSchema(model.FieldDescriptor{Name: "name", Type: model.FieldTypeText})
	controller, err := form.New(schema, form.WithOnSubmit(func(form.Record) { submitted = true }))
	if err != nil {
		t.Fatalf("controller: %v", err)
	}

	_, err = New(WithPromptDriver(&stubDriver{inputErr: ErrAborted})).Run(context.Background(), controller)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if submitted {
		t.Fatal("aborted session must not submit")
	}
}

func TestValidateNumber(t *testing.T) {
	if err := validateNumber("12.5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateNumber(""); err != nil {
		t.Fatalf("empty input should be accepted: %v", err)
	}
	if err := validateNumber("abc"); err == nil {
		t.Fatal("expected error for non-numeric input")
	}
}

func TestSession_PageSizeReachesSelectPrompts(t *testing.T) {
	controller := newController(t, nil,
		model.FieldDescriptor{Name: "role", Type: model.FieldTypeSelect, Options: []model.Option{
			{Label: "User", Value: "user"},
			{Label: "Admin", Value: "admin"},
		}},
		model.FieldDescriptor{Name: "tags", Type: model.FieldTypeMultiSelectFixed, Options: []model.Option{
			{Label: "A", Value: "a"},
		}},
	)
	driver := &stubDriver{selectIdx: []int{1}, multiIdx: [][]int{{0}}}

	if _, err := New(WithPromptDriver(driver), WithPageSize(4)).Run(context.Background(), controller); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(driver.selConfigs) != 1 || driver.selConfigs[0].PageSize != 4 {
		t.Fatalf("select configs = %+v, want page size 4", driver.selConfigs)
	}
	if len(driver.multiConfigs) != 1 || driver.multiConfigs[0].PageSize != 4 {
		t.Fatalf("multiselect configs = %+v, want page size 4", driver.multiConfigs)
	}
}
