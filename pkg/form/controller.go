// Package form wires a schema, its value store and the render core into one
// form instance. The controller renders every field in schema order, routes
// UI events to the render core, and assembles a Record when the user
// explicitly submits.
package form

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/policy"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/state"
)

var (
	// ErrUnknownField is returned by Apply for names outside the schema.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrUnknownAction is returned by Apply for unsupported event actions.
	ErrUnknownAction = errors.New("form: unknown action")
)

// Action names a UI interaction.
type Action string

const (
	ActionChange    Action = "change"
	ActionSelect    Action = "select"
	ActionRemove    Action = "remove"
	ActionPending   Action = "pending"
	ActionAddOption Action = "add-option"
)

// Event is one user interaction with a field.
type Event struct {
	Field  string `json:"field"`
	Action Action `json:"action"`
	Value  any    `json:"value,omitempty"`
}

// SubmitFunc receives the record built by Submit. Its outcome is not observed.
type SubmitFunc func(Record)

// Controller is one rendered form instance.
type Controller struct {
	schema        *model.Schema
	store         *state.Store
	renderer      *render.Renderer
	config        model.FormConfig
	defaults      map[string]any
	onSubmit      SubmitFunc
	resetOnSubmit bool
	policy        policy.Evaluator
	logger        zerolog.Logger
}

// New builds a controller for schema. The store is seeded from WithDefaults.
func New(schema *model.Schema, options ...Option) (*Controller, error) {
	if schema == nil {
		return nil, errors.New("form: schema is required")
	}
	c := &Controller{
		schema: schema,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.config.Behavior.ResetOnSubmit {
		c.resetOnSubmit = true
	}
	c.store = state.New(schema, c.defaults)
	if c.renderer == nil {
		c.renderer = render.New(schema)
	}
	return c, nil
}

// Schema returns the schema backing the form.
func (c *Controller) Schema() *model.Schema { return c.schema }

// Store returns the value store.
func (c *Controller) Store() *state.Store { return c.store }

// Renderer returns the render core used by the controller.
func (c *Controller) Renderer() *render.Renderer { return c.renderer }

// Config returns the form-level settings.
func (c *Controller) Config() model.FormConfig { return c.config }

// Render describes every field in schema order.
func (c *Controller) Render() []render.Control {
	fields := c.schema.Fields()
	controls := make([]render.Control, 0, len(fields))
	for _, field := range fields {
		controls = append(controls, c.renderer.Render(field, c.store))
	}
	if c.policy != nil {
		controls = c.policy.Apply(fields, c.store.Values(), controls)
	}
	return controls
}

// Control describes a single field.
func (c *Controller) Control(name string) (render.Control, bool) {
	for _, control := range c.Render() {
		if control.Name == name {
			return control, true
		}
	}
	return render.Control{}, false
}

// Apply routes one event to the render core. Errors only report events that
// do not address the schema; input values never fail.
func (c *Controller) Apply(event Event) error {
	field, ok := c.schema.Field(event.Field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, event.Field)
	}

	switch event.Action {
	case ActionChange:
		c.renderer.Change(field, c.store, event.Value)
	case ActionSelect:
		c.renderer.Select(field, c.store, state.String(event.Value))
	case ActionRemove:
		c.renderer.Remove(field, c.store, state.String(event.Value))
	case ActionPending:
		c.renderer.SetPending(field, state.String(event.Value))
	case ActionAddOption:
		if event.Value != nil {
			c.renderer.SetPending(field, state.String(event.Value))
		}
		added := c.renderer.AddOption(field, c.store)
		c.logger.Debug().Str("field", field.Name).Bool("added", added).Msg("add option")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, event.Action)
	}

	c.logger.Debug().Str("field", field.Name).Str("action", string(event.Action)).Msg("form event")
	return nil
}

// Submit builds a fresh record from the current values in schema order, hands
// it to the completion callback once, and returns it. Number fields are
// coerced; every other value is passed through.
func (c *Controller) Submit() Record {
	fields := c.schema.Fields()
	record := make(Record, len(fields))
	for _, field := range fields {
		value := c.store.Get(field.Name)
		if field.Type == model.FieldTypeNumber {
			value = state.Number(value)
		}
		record[field.Name] = value
	}

	c.logger.Debug().Int("fields", len(record)).Msg("form submitted")
	if c.onSubmit != nil {
		c.onSubmit(record.clone())
	}
	if c.resetOnSubmit {
		c.store.Reset()
	}
	return record
}
