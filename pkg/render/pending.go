package render

import (
	"strings"
	"sync"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Pending holds the text typed into each field's add-option box. Entries are
// keyed by field name so two multiselect fields never share a buffer.
type Pending struct {
	mu   sync.Mutex
	text map[string]string
}

// NewPending returns an empty buffer set.
func NewPending() *Pending {
	return &Pending{text: make(map[string]string)}
}

// Text returns the pending text for a field.
func (p *Pending) Text(name string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text[name]
}

// Set replaces the pending text for a field.
func (p *Pending) Set(name, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if text == "" {
		delete(p.text, name)
		return
	}
	p.text[name] = text
}

// Clear drops the pending text for a field.
func (p *Pending) Clear(name string) {
	p.Set(name, "")
}

// SetPending records add-option text for a multiselect field that allows new
// options. Other fields ignore it.
func (r *Renderer) SetPending(field model.FieldDescriptor, text string) {
	if !allowsNewOption(field) {
		return
	}
	r.pending.Set(field.Name, text)
}

// AddOption turns the field's pending text into a new option, selects it and
// clears the pending text. When the derived value already exists the existing
// option is selected instead of appending a duplicate, unless that option is
// disabled. It reports false, and changes nothing, when the field does not
// allow new options, the pending text is blank, the field has no option list,
// or the text collides with a disabled option.
func (r *Renderer) AddOption(field model.FieldDescriptor, acc Accessor) bool {
	if !allowsNewOption(field) || r.schema == nil {
		return false
	}
	text := r.pending.Text(field.Name)
	value := model.DeriveOptionValue(text)
	if strings.TrimSpace(text) == "" || value == "" {
		return false
	}

	appended, err := r.schema.AppendOptionIfAbsent(field.Name, model.Option{Label: text, Value: value})
	if err != nil {
		return false
	}
	if !appended && disabledOption(r.schema.Options(field.Name), value) {
		return false
	}
	r.Select(field, acc, value)
	r.pending.Clear(field.Name)
	return true
}

func disabledOption(options []model.Option, value string) bool {
	for _, option := range options {
		if option.ValueString() == value {
			return option.Disabled
		}
	}
	return false
}

func allowsNewOption(field model.FieldDescriptor) bool {
	return field.Type == model.FieldTypeMultiSelect && field.AddNewOption
}
