package render

import (
	"slices"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/state"
)

// Change stores raw as the new value of a field, normalised for the field's
// variant. On multiselect fields a list replaces the whole selection and a
// single value is selected.
func (r *Renderer) Change(field model.FieldDescriptor, acc Accessor, raw any) {
	switch field.Type {
	case model.FieldTypeMultiSelect, model.FieldTypeMultiSelectFixed:
		switch raw.(type) {
		case []string, []any:
			acc.Set(field.Name, state.Replace(state.Selection(raw)))
		default:
			r.Select(field, acc, state.String(raw))
		}
		return
	case model.FieldTypeSwitch, model.FieldTypeCheckbox:
		acc.Set(field.Name, state.Replace(checked(raw)))
	case model.FieldTypeRating:
		acc.Set(field.Name, state.Replace(state.Number(raw)))
	case model.FieldTypeNumber:
		acc.Set(field.Name, state.Replace(state.Number(raw)))
	default:
		acc.Set(field.Name, state.Replace(state.String(raw)))
	}
}

// Select adds value to a multiselect selection. Selecting a value twice is a
// no-op, as is selecting the empty placeholder value.
func (r *Renderer) Select(field model.FieldDescriptor, acc Accessor, value string) {
	if !field.Type.IsMultiSelect() || value == "" {
		return
	}
	acc.Set(field.Name, func(prev any) any {
		current := state.Strings(prev)
		if slices.Contains(current, value) {
			return current
		}
		return append(current, value)
	})
}

// Remove deletes value from a multiselect selection, keeping the relative
// order of the remaining values.
func (r *Renderer) Remove(field model.FieldDescriptor, acc Accessor, value string) {
	if !field.Type.IsMultiSelect() {
		return
	}
	acc.Set(field.Name, func(prev any) any {
		current := state.Strings(prev)
		return slices.DeleteFunc(current, func(v string) bool { return v == value })
	})
}

// checked reads a toggle event. Booleans pass through; form posts arrive as
// strings where "", "false", "off" and "0" mean unchecked.
func checked(raw any) bool {
	text, ok := raw.(string)
	if !ok {
		return state.Bool(raw)
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "false", "off", "0":
		return false
	default:
		return true
	}
}
