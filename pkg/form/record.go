package form

import (
	"slices"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Record maps each field name to its value at submit time.
type Record map[string]any

// Entry is one name/value pair of a record.
type Entry struct {
	Name  string
	Label string
	Value any
}

// Ordered returns the record entries in schema order, labelled with the field
// labels. Names missing from the record are skipped.
func (r Record) Ordered(schema *model.Schema) []Entry {
	fields := schema.Fields()
	out := make([]Entry, 0, len(fields))
	for _, field := range fields {
		value, ok := r[field.Name]
		if !ok {
			continue
		}
		label := field.Label
		if label == "" {
			label = field.Name
		}
		out = append(out, Entry{Name: field.Name, Label: label, Value: value})
	}
	return out
}

func (r Record) clone() Record {
	out := make(Record, len(r))
	for key, value := range r {
		if list, ok := value.([]string); ok {
			value = slices.Clone(list)
		}
		out[key] = value
	}
	return out
}
