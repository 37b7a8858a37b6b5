// Package openapi derives form schemas from OpenAPI 3 documents. The request
// body of one operation becomes a form: each top-level property is a field.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-dynform/pkg/model"
)

// TypeExtension overrides the derived field type of a property, e.g.
// `x-dynform-type: textarea`.
const TypeExtension = "x-dynform-type"

var (
	// ErrOperationNotFound is returned when no operation matches the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no object request body.
	ErrNoRequestBody = errors.New("openapi: operation has no object request body")
)

var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// SchemaFromOpenAPI builds the field schema for operationID.
func SchemaFromOpenAPI(ctx context.Context, data []byte, operationID string) (*model.Schema, error) {
	doc, err := DocumentFromOpenAPI(ctx, data, operationID)
	if err != nil {
		return nil, err
	}
	return doc.Schema()
}

// DocumentFromOpenAPI builds a form document for operationID: fields from the
// request body properties in name order, defaults from property defaults and
// the submit label from the operation summary. An empty operationID selects
// the first operation, by path then method, that has a request body.
func DocumentFromOpenAPI(ctx context.Context, data []byte, operationID string) (model.Document, error) {
	spec, err := load(ctx, data)
	if err != nil {
		return model.Document{}, err
	}

	op, err := findOperation(spec, operationID)
	if err != nil {
		return model.Document{}, err
	}
	body := requestSchema(op.RequestBody)
	if body == nil || len(body.Properties) == 0 {
		return model.Document{}, fmt.Errorf("%w: %s", ErrNoRequestBody, operationID)
	}

	doc := model.Document{
		Form:     model.FormConfig{SubmitLabel: strings.TrimSpace(op.Summary)},
		Defaults: map[string]any{},
	}
	for _, name := range slices.Sorted(maps.Keys(body.Properties)) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil || ref.Value.ReadOnly {
			continue
		}
		field, ok := convertProperty(name, ref.Value, slices.Contains(body.Required, name))
		if !ok {
			continue
		}
		doc.Fields = append(doc.Fields, field)
		if ref.Value.Default != nil {
			doc.Defaults[name] = ref.Value.Default
		}
	}
	if len(doc.Fields) == 0 {
		return model.Document{}, fmt.Errorf("%w: %s", ErrNoRequestBody, operationID)
	}
	return doc, nil
}

// Operations lists the ids of operations with a request body, sorted.
func Operations(ctx context.Context, data []byte) ([]string, error) {
	spec, err := load(ctx, data)
	if err != nil {
		return nil, err
	}
	var out []string
	eachOperation(spec, func(id string, op *openapi3.Operation) bool {
		if requestSchema(op.RequestBody) != nil {
			out = append(out, id)
		}
		return true
	})
	slices.Sort(out)
	return out, nil
}

func load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return spec, nil
}

func findOperation(spec *openapi3.T, operationID string) (*openapi3.Operation, error) {
	var found *openapi3.Operation
	eachOperation(spec, func(id string, op *openapi3.Operation) bool {
		if operationID == "" && requestSchema(op.RequestBody) == nil {
			return true
		}
		if operationID == "" || id == operationID {
			found = op
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	return found, nil
}

var methodOrder = []string{"POST", "PUT", "PATCH", "GET", "DELETE", "HEAD", "OPTIONS", "TRACE"}

// eachOperation visits operations by path then method until fn returns false.
// Operations without an operationId are named "<method>:<path>".
func eachOperation(spec *openapi3.T, fn func(id string, op *openapi3.Operation) bool) {
	if spec.Paths == nil {
		return
	}
	items := spec.Paths.Map()
	for _, path := range slices.Sorted(maps.Keys(items)) {
		item := items[path]
		if item == nil {
			continue
		}
		ops := item.Operations()
		for _, method := range methodOrder {
			op := ops[method]
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			if !fn(id, op) {
				return
			}
		}
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return objectSchema(mt.Schema.Value)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(content)) {
		if mt := content[key]; mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return objectSchema(mt.Schema.Value)
		}
	}
	return nil
}

func objectSchema(schema *openapi3.Schema) *openapi3.Schema {
	if len(schema.Properties) == 0 {
		return nil
	}
	return schema
}

func convertProperty(name string, src *openapi3.Schema, required bool) (model.FieldDescriptor, bool) {
	field := model.FieldDescriptor{
		Name:       name,
		Label:      strings.TrimSpace(src.Title),
		HelperText: strings.TrimSpace(src.Description),
		Required:   required,
		Pattern:    src.Pattern,
		Min:        src.Min,
		Max:        src.Max,
	}
	if field.Label == "" {
		field.Label = humanize(name)
	}

	kind := firstSchemaType(src.Type)
	switch {
	case kind == "array":
		if src.Items == nil || src.Items.Value == nil || len(src.Items.Value.Enum) == 0 {
			return model.FieldDescriptor{}, false
		}
		field.Type = model.FieldTypeMultiSelectFixed
		field.Options = enumOptions(src.Items.Value.Enum)
	case len(src.Enum) > 0:
		field.Type = model.FieldTypeSelect
		field.Options = enumOptions(src.Enum)
	case kind == "boolean":
		field.Type = model.FieldTypeCheckbox
	case kind == "integer" || kind == "number":
		field.Type = model.FieldTypeNumber
	case kind == "string" || kind == "":
		field.Type = stringFieldType(src.Format)
	default:
		return model.FieldDescriptor{}, false
	}

	if override, ok := src.Extensions[TypeExtension].(string); ok && strings.TrimSpace(override) != "" {
		field.Type = model.FieldType(strings.TrimSpace(override))
	}

	if src.MinLength > 0 || src.MaxLength != nil {
		field.Validation = &model.Validation{}
		if src.MinLength > 0 {
			v := int(src.MinLength)
			field.Validation.MinLength = &v
		}
		if src.MaxLength != nil {
			v := int(*src.MaxLength)
			field.Validation.MaxLength = &v
		}
	}
	return field, true
}

func stringFieldType(format string) model.FieldType {
	switch strings.ToLower(format) {
	case "email":
		return model.FieldTypeEmail
	case "password":
		return model.FieldTypePassword
	case "date":
		return model.FieldTypeDate
	case "time":
		return model.FieldTypeTime
	case "date-time":
		return model.FieldTypeDateTimeLocal
	case "uri", "url":
		return model.FieldTypeURL
	case "binary":
		return model.FieldTypeFile
	default:
		return model.FieldTypeText
	}
}

func enumOptions(values []any) []model.Option {
	out := make([]model.Option, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		out = append(out, model.Option{Label: humanize(model.Stringify(value)), Value: value})
	}
	return out
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

// humanize turns "availableFrom" or "available_from" into "Available From".
func humanize(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			flush()
		}
		current = append(current, r)
	}
	flush()
	for i, word := range words {
		w := []rune(word)
		w[0] = unicode.ToUpper(w[0])
		words[i] = string(w)
	}
	return strings.Join(words, " ")
}
