// Package state holds the per-form value store. The store is a plain value
// container: it never validates, and every write goes through an updater so a
// transition always sees the latest value for its key.
package state

import (
	"slices"
	"sync"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Updater derives the next value of a field from its previous value.
type Updater func(prev any) any

// Replace returns an updater that ignores the previous value.
func Replace(value any) Updater {
	return func(any) any { return value }
}

// Store tracks current values keyed by field name for one form instance.
type Store struct {
	mu      sync.Mutex
	initial map[string]any
	values  map[string]any
}

// New seeds the store from defaults. Schema fields missing from defaults start
// at the empty value for their type; multiselect defaults are reduced to an
// ordered set.
func New(schema *model.Schema, defaults map[string]any) *Store {
	initial := make(map[string]any, len(defaults)+schema.Len())
	for key, value := range defaults {
		initial[key] = cloneValue(value)
	}
	for _, field := range schema.Fields() {
		value, ok := initial[field.Name]
		switch {
		case !ok:
			initial[field.Name] = EmptyValue(field.Type)
		case field.Type.IsMultiSelect():
			initial[field.Name] = Selection(value)
		}
	}
	return &Store{
		initial: initial,
		values:  cloneValues(initial),
	}
}

// EmptyValue returns the starting value for a field type.
func EmptyValue(fieldType model.FieldType) any {
	switch fieldType {
	case model.FieldTypeNumber, model.FieldTypeRange, model.FieldTypeRating:
		return float64(0)
	case model.FieldTypeCheckbox, model.FieldTypeSwitch:
		return false
	case model.FieldTypeMultiSelect, model.FieldTypeMultiSelectFixed:
		return []string{}
	default:
		return ""
	}
}

// Get returns the current value for name, or nil when unset.
func (s *Store) Get(name string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValue(s.values[name])
}

// Set applies fn to the current value of name and stores the result. The
// updater runs under the store lock.
func (s *Store) Set(name string, fn Updater) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = fn(cloneValue(s.values[name]))
}

// Values returns a snapshot of every stored value.
func (s *Store) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValues(s.values)
}

// Reset restores the values the store was created with.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = cloneValues(s.initial)
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case []string:
		return slices.Clone(typed)
	case []any:
		return slices.Clone(typed)
	default:
		return typed
	}
}
