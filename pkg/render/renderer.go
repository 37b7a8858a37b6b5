package render

import (
	"slices"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/state"
)

// Accessor reads and updates field values. *state.Store satisfies it.
type Accessor interface {
	Get(name string) any
	Set(name string, fn state.Updater)
}

var _ Accessor = (*state.Store)(nil)

// Renderer produces controls for descriptors and routes their events. It owns
// the transient add-option text of every multiselect field it serves.
type Renderer struct {
	schema  *model.Schema
	pending *Pending
}

// New constructs a Renderer for schema. The schema is only needed by
// AddOption, which appends to the field's shared option list.
func New(schema *model.Schema) *Renderer {
	return &Renderer{
		schema:  schema,
		pending: NewPending(),
	}
}

// Pending exposes the per-field add-option text.
func (r *Renderer) Pending() *Pending {
	return r.pending
}

// Render describes the control for field using the current value from acc.
func (r *Renderer) Render(field model.FieldDescriptor, acc Accessor) Control {
	control := baseControl(field)
	value := acc.Get(field.Name)

	switch field.Type {
	case model.FieldTypeMultiSelect, model.FieldTypeMultiSelectFixed:
		renderMultiSelect(&control, field, value)
		if field.Type == model.FieldTypeMultiSelect && field.AddNewOption {
			control.AddOption = &AddOptionControl{PendingText: r.pending.Text(field.Name)}
		}
	case model.FieldTypeRadio:
		renderRadio(&control, field, value)
	case model.FieldTypeSwitch:
		control.Kind = KindSwitch
		control.Checked = state.Bool(value)
	case model.FieldTypeRating:
		renderRating(&control, value)
	case model.FieldTypeDate, model.FieldTypeTime, model.FieldTypeDateTimeLocal:
		control.Kind = KindTemporal
		control.InputType = string(field.Type)
		control.Value = state.String(value)
	case model.FieldTypeCheckbox:
		control.Kind = KindCheckbox
		control.Checked = state.Bool(value)
	case model.FieldTypeSelect:
		control.Kind = KindSelect
		control.Value = state.String(value)
		control.Options = optionViews(field.Options, func(v string) bool { return v == control.Value })
	case model.FieldTypeTextarea:
		control.Kind = KindTextarea
		control.Value = state.String(value)
	default:
		control.Kind = KindInput
		control.InputType = inputType(field.Type)
		control.Value = state.String(value)
	}
	return control
}

func baseControl(field model.FieldDescriptor) Control {
	return Control{
		Name:         field.Name,
		Type:         field.Type,
		Label:        field.Label,
		Placeholder:  field.Placeholder,
		HelperText:   field.HelperText,
		Tooltip:      field.Tooltip,
		ClassName:    field.ClassName,
		AutoComplete: field.AutoComplete,
		Min:          field.Min,
		Max:          field.Max,
		Pattern:      field.Pattern,
		Required:     field.Required,
		Disabled:     field.Disabled,
		ReadOnly:     field.ReadOnly,
		Hidden:       field.Hidden,
		AutoFocus:    field.AutoFocus,
	}
}

func renderMultiSelect(control *Control, field model.FieldDescriptor, value any) {
	control.Kind = KindMultiSelect
	selected := state.Strings(value)
	isSelected := func(v string) bool { return slices.Contains(selected, v) }

	control.Options = optionViews(field.Options, isSelected)
	for _, option := range control.Options {
		if !option.Selected {
			control.Candidates = append(control.Candidates, option)
		}
	}
	control.Selected = make([]Chip, 0, len(selected))
	for _, v := range selected {
		chip := Chip{Label: v, Value: v}
		for _, option := range field.Options {
			if option.ValueString() == v && option.Label != "" {
				chip.Label = option.Label
				break
			}
		}
		control.Selected = append(control.Selected, chip)
	}
}

func renderRadio(control *Control, field model.FieldDescriptor, value any) {
	control.Kind = KindRadioGroup
	control.Value = state.String(value)
	control.Options = optionViews(field.Options, func(v string) bool { return v == control.Value })
}

func renderRating(control *Control, value any) {
	control.Kind = KindRating
	current := state.Number(value)
	levels := make([]int, RatingLevels)
	for i := range levels {
		levels[i] = i + 1
	}
	control.Rating = &RatingControl{Levels: levels, Current: current}
	control.Value = model.Stringify(current)
}

func optionViews(options []model.Option, selected func(string) bool) []OptionView {
	if len(options) == 0 {
		return nil
	}
	out := make([]OptionView, 0, len(options))
	for _, option := range options {
		value := option.ValueString()
		out = append(out, OptionView{
			Label:       option.Label,
			Value:       value,
			Selected:    selected(value),
			Disabled:    option.Disabled,
			Description: option.Description,
		})
	}
	return out
}

// inputType maps a variant tag onto an HTML input type. Tags without a native
// input type render as text.
func inputType(fieldType model.FieldType) string {
	switch fieldType {
	case model.FieldTypeEmail, model.FieldTypeNumber, model.FieldTypePassword,
		model.FieldTypeFile, model.FieldTypeColor, model.FieldTypeRange,
		model.FieldTypeTel, model.FieldTypeURL:
		return string(fieldType)
	default:
		return string(model.FieldTypeText)
	}
}
