package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrFieldNotFound is returned when a name does not match any descriptor.
	ErrFieldNotFound = errors.New("model: field not found")
	// ErrOptionsUnsupported is returned by AppendOption for descriptors that
	// carry no option list.
	ErrOptionsUnsupported = errors.New("model: field has no option list")
)

// Schema is the ordered, owned list of descriptors for one form instance. It
// is immutable after construction except for AppendOption.
type Schema struct {
	mu     sync.RWMutex
	fields []*FieldDescriptor
	index  map[string]int
}

// NewSchema validates the descriptors and builds a Schema. Unknown type tags
// are accepted; they render as text inputs.
func NewSchema(fields ...FieldDescriptor) (*Schema, error) {
	schema := &Schema{
		fields: make([]*FieldDescriptor, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	var errs []error
	for i := range fields {
		field := cloneDescriptor(fields[i])
		field.Name = strings.TrimSpace(field.Name)
		if err := validateDescriptor(field); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, exists := schema.index[field.Name]; exists {
			errs = append(errs, fmt.Errorf("model: duplicate field %q", field.Name))
			continue
		}
		schema.index[field.Name] = len(schema.fields)
		schema.fields = append(schema.fields, &field)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return schema, nil
}

// MustSchema mirrors NewSchema but panics on error. Useful for static schemas.
func MustSchema(fields ...FieldDescriptor) *Schema {
	schema, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return schema
}

func validateDescriptor(field FieldDescriptor) error {
	if field.Name == "" {
		return errors.New("model: field name is required")
	}
	if field.Type.RequiresOptions() && len(field.Options) == 0 {
		return fmt.Errorf("model: field %q of type %q requires options", field.Name, field.Type)
	}
	if field.AddNewOption && field.Type != FieldTypeMultiSelect {
		return fmt.Errorf("model: field %q: addNewOption is only valid for %q", field.Name, FieldTypeMultiSelect)
	}
	return nil
}

// Len reports the number of descriptors.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fields)
}

// Fields returns snapshot copies of every descriptor in rendering order.
func (s *Schema) Fields() []FieldDescriptor {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]FieldDescriptor, len(s.fields))
	for i, field := range s.fields {
		out[i] = cloneDescriptor(*field)
	}
	return out
}

// Field returns a snapshot of the named descriptor.
func (s *Schema) Field(name string) (FieldDescriptor, bool) {
	if s == nil {
		return FieldDescriptor{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	return cloneDescriptor(*s.fields[idx]), true
}

// Names lists field names in rendering order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.fields))
	for i, field := range s.fields {
		names[i] = field.Name
	}
	return names
}

// Options returns a copy of the named field's option list.
func (s *Schema) Options(name string) []Option {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[name]
	if !ok {
		return nil
	}
	return slices.Clone(s.fields[idx].Options)
}

// AppendOption adds an option to the named field's shared option list. Every
// later snapshot of the field sees the new option.
func (s *Schema) AppendOption(name string, option Option) error {
	if s == nil {
		return ErrFieldNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	field := s.fields[idx]
	if field.Options == nil {
		return fmt.Errorf("%w: %q", ErrOptionsUnsupported, name)
	}
	field.Options = append(field.Options, option)
	return nil
}

// AppendOptionIfAbsent appends option unless an option with the same
// string-coerced value already exists. The check and the append happen under
// one lock. It reports whether the option was appended.
func (s *Schema) AppendOptionIfAbsent(name string, option Option) (bool, error) {
	if s == nil {
		return false, ErrFieldNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	field := s.fields[idx]
	if field.Options == nil {
		return false, fmt.Errorf("%w: %q", ErrOptionsUnsupported, name)
	}
	value := option.ValueString()
	for _, existing := range field.Options {
		if existing.ValueString() == value {
			return false, nil
		}
	}
	field.Options = append(field.Options, option)
	return true, nil
}

// HasOptionValue reports whether the named field already offers value.
func (s *Schema) HasOptionValue(name, value string) bool {
	for _, option := range s.Options(name) {
		if option.ValueString() == value {
			return true
		}
	}
	return false
}

func cloneDescriptor(src FieldDescriptor) FieldDescriptor {
	clone := src
	if src.Options != nil {
		clone.Options = slices.Clone(src.Options)
	}
	if src.Dependencies != nil {
		clone.Dependencies = slices.Clone(src.Dependencies)
	}
	return clone
}
