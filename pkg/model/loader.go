package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk form definition: form settings, the ordered field
// list, and optional default values.
type Document struct {
	Form     FormConfig        `json:"form" yaml:"form"`
	Fields   []FieldDescriptor `json:"fields" yaml:"fields"`
	Defaults map[string]any    `json:"defaults,omitempty" yaml:"defaults,omitempty"`
}

// Schema builds a validated Schema from the document fields.
func (d Document) Schema() (*Schema, error) {
	return NewSchema(d.Fields...)
}

// LoadDocument parses a JSON or YAML form definition. source is only used in
// error messages.
func LoadDocument(data []byte, source string) (Document, error) {
	var doc Document
	if err := decode(data, source, &doc); err != nil {
		return Document{}, err
	}
	if len(doc.Fields) == 0 {
		return Document{}, fmt.Errorf("model: %s declares no fields", source)
	}
	return doc, nil
}

// LoadDocumentFile reads and parses a form definition from disk.
func LoadDocumentFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("model: read %s: %w", path, err)
	}
	return LoadDocument(data, filepath.Base(path))
}

// LoadDefaults parses a JSON or YAML map of default values.
func LoadDefaults(data []byte, source string) (map[string]any, error) {
	out := make(map[string]any)
	if err := decode(data, source, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadDefaultsFile reads a defaults map from disk.
func LoadDefaultsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	return LoadDefaults(data, filepath.Base(path))
}

func decode(data []byte, source string, target any) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("model: %s is empty", source)
	}
	if err := json.Unmarshal(data, target); err == nil {
		return nil
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("model: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return nil
}
