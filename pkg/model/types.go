package model

import (
	"context"
	"fmt"
	"strconv"
)

// FieldType is the closed set of variant tags driving render dispatch.
type FieldType string

const (
	FieldTypeText             FieldType = "text"
	FieldTypeEmail            FieldType = "email"
	FieldTypeNumber           FieldType = "number"
	FieldTypePassword         FieldType = "password"
	FieldTypeSelect           FieldType = "select"
	FieldTypeTextarea         FieldType = "textarea"
	FieldTypeCheckbox         FieldType = "checkbox"
	FieldTypeMultiSelect      FieldType = "multiselect"
	FieldTypeMultiSelectFixed FieldType = "multiselect-fixed"
	FieldTypeRadio            FieldType = "radio"
	FieldTypeDate             FieldType = "date"
	FieldTypeTime             FieldType = "time"
	FieldTypeDateTimeLocal    FieldType = "datetime-local"
	FieldTypeFile             FieldType = "file"
	FieldTypeColor            FieldType = "color"
	FieldTypeRange            FieldType = "range"
	FieldTypeTel              FieldType = "tel"
	FieldTypeURL              FieldType = "url"
	FieldTypeSwitch           FieldType = "switch"
	FieldTypeRating           FieldType = "rating"
	FieldTypeAutocomplete     FieldType = "autocomplete"
	FieldTypeMasked           FieldType = "masked"
	FieldTypeRichText         FieldType = "rich-text"
	FieldTypeCodeEditor       FieldType = "code-editor"
)

var knownFieldTypes = map[FieldType]struct{}{
	FieldTypeText: {}, FieldTypeEmail: {}, FieldTypeNumber: {}, FieldTypePassword: {},
	FieldTypeSelect: {}, FieldTypeTextarea: {}, FieldTypeCheckbox: {},
	FieldTypeMultiSelect: {}, FieldTypeMultiSelectFixed: {}, FieldTypeRadio: {},
	FieldTypeDate: {}, FieldTypeTime: {}, FieldTypeDateTimeLocal: {}, FieldTypeFile: {},
	FieldTypeColor: {}, FieldTypeRange: {}, FieldTypeTel: {}, FieldTypeURL: {},
	FieldTypeSwitch: {}, FieldTypeRating: {}, FieldTypeAutocomplete: {},
	FieldTypeMasked: {}, FieldTypeRichText: {}, FieldTypeCodeEditor: {},
}

// Known reports whether the tag belongs to the closed variant set. Unknown tags
// are still accepted by NewSchema and render as plain text inputs.
func (t FieldType) Known() bool {
	_, ok := knownFieldTypes[t]
	return ok
}

// IsMultiSelect reports whether the variant stores an ordered set of strings.
func (t FieldType) IsMultiSelect() bool {
	return t == FieldTypeMultiSelect || t == FieldTypeMultiSelectFixed
}

// RequiresOptions reports whether descriptors of this type need a non-empty
// option list.
func (t FieldType) RequiresOptions() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeMultiSelect, FieldTypeMultiSelectFixed:
		return true
	default:
		return false
	}
}

// Option is a selectable {label, value} pair. Value holds a string or a number.
type Option struct {
	Label       string `json:"label" yaml:"label"`
	Value       any    `json:"value" yaml:"value"`
	Disabled    bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ValueString string-coerces the option value so numeric options compare
// against stored values of any primitive type.
func (o Option) ValueString() string {
	return Stringify(o.Value)
}

// Stringify renders primitive values the way a browser would place them in a
// value attribute. nil becomes the empty string.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// Rule is a custom validation rule. It is declared for the validation
// collaborator and never evaluated here.
type Rule struct {
	Message   string                                 `json:"message" yaml:"message"`
	Validator func(ctx context.Context, value any) bool `json:"-" yaml:"-"`
}

// Validation mirrors the validation contract surface. All fields are metadata.
type Validation struct {
	Required    bool                                                `json:"required,omitempty" yaml:"required,omitempty"`
	Min         *float64                                            `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64                                            `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength   *int                                                `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int                                                `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern     string                                              `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	CustomRules []Rule                                              `json:"customRules,omitempty" yaml:"customRules,omitempty"`
	Validate    func(ctx context.Context, value any) (string, error) `json:"-" yaml:"-"`
}

// FormatOptions carries input masking hints for masked and numeric inputs.
type FormatOptions struct {
	Mask      string `json:"mask,omitempty" yaml:"mask,omitempty"`
	Prefix    string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix    string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Decimal   bool   `json:"decimal,omitempty" yaml:"decimal,omitempty"`
	Precision int    `json:"precision,omitempty" yaml:"precision,omitempty"`
}

// DependencyAction is the effect a dependency has on its owning field.
type DependencyAction string

const (
	DependencyShow    DependencyAction = "show"
	DependencyHide    DependencyAction = "hide"
	DependencyEnable  DependencyAction = "enable"
	DependencyDisable DependencyAction = "disable"
	DependencyRequire DependencyAction = "require"
)

// Dependency links a field to the value of another field. Condition takes
// precedence over Equals; Equals exists so file-loaded schemas can express a
// condition without Go code.
type Dependency struct {
	Field     string           `json:"field" yaml:"field"`
	Condition func(any) bool   `json:"-" yaml:"-"`
	Equals    any              `json:"equals,omitempty" yaml:"equals,omitempty"`
	Action    DependencyAction `json:"action" yaml:"action"`
}

// Matches evaluates the dependency condition against the watched value.
func (d Dependency) Matches(value any) bool {
	if d.Condition != nil {
		return d.Condition(value)
	}
	if d.Equals == nil {
		return false
	}
	return Stringify(d.Equals) == Stringify(value)
}

// FieldDescriptor declares one form field.
type FieldDescriptor struct {
	Name          string         `json:"name" yaml:"name"`
	Type          FieldType      `json:"type" yaml:"type"`
	Label         string         `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder   string         `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelperText    string         `json:"helperText,omitempty" yaml:"helperText,omitempty"`
	Tooltip       string         `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	Required      bool           `json:"required,omitempty" yaml:"required,omitempty"`
	Min           *float64       `json:"min,omitempty" yaml:"min,omitempty"`
	Max           *float64       `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern       string         `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Options       []Option       `json:"options,omitempty" yaml:"options,omitempty"`
	ClassName     string         `json:"className,omitempty" yaml:"className,omitempty"`
	Disabled      bool           `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	ReadOnly      bool           `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Hidden        bool           `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	AutoFocus     bool           `json:"autoFocus,omitempty" yaml:"autoFocus,omitempty"`
	AutoComplete  string         `json:"autoComplete,omitempty" yaml:"autoComplete,omitempty"`
	AddNewOption  bool           `json:"addNewOption,omitempty" yaml:"addNewOption,omitempty"`
	Validation    *Validation    `json:"validation,omitempty" yaml:"validation,omitempty"`
	FormatOptions *FormatOptions `json:"formatOptions,omitempty" yaml:"formatOptions,omitempty"`
	Dependencies  []Dependency   `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Float returns a pointer to v, convenient for Min/Max literals.
func Float(v float64) *float64 {
	return &v
}
