// Package policy is the seam for conditional field behavior. Descriptors
// declare dependencies as data; nothing happens until a form controller is
// configured with an Evaluator.
package policy

import (
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

// Evaluator adjusts rendered controls given the schema and current values.
// Implementations must return a slice of the same length and order.
type Evaluator interface {
	Apply(fields []model.FieldDescriptor, values map[string]any, controls []render.Control) []render.Control
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fields []model.FieldDescriptor, values map[string]any, controls []render.Control) []render.Control

// Apply delegates to the underlying function.
func (fn EvaluatorFunc) Apply(fields []model.FieldDescriptor, values map[string]any, controls []render.Control) []render.Control {
	return fn(fields, values, controls)
}

// Dependencies returns an evaluator that applies descriptor dependencies:
// show/hide toggle Hidden, enable/disable toggle Disabled, require sets
// Required. A dependency only acts when its condition matches the watched
// field's current value; later dependencies win on conflicts.
func Dependencies() Evaluator {
	return EvaluatorFunc(applyDependencies)
}

func applyDependencies(fields []model.FieldDescriptor, values map[string]any, controls []render.Control) []render.Control {
	out := make([]render.Control, len(controls))
	copy(out, controls)

	byName := make(map[string]int, len(out))
	for i, control := range out {
		byName[control.Name] = i
	}

	for _, field := range fields {
		idx, ok := byName[field.Name]
		if !ok {
			continue
		}
		for _, dep := range field.Dependencies {
			matched := dep.Matches(values[dep.Field])
			switch dep.Action {
			case model.DependencyShow:
				out[idx].Hidden = !matched
			case model.DependencyHide:
				if matched {
					out[idx].Hidden = true
				}
			case model.DependencyEnable:
				out[idx].Disabled = !matched
			case model.DependencyDisable:
				if matched {
					out[idx].Disabled = true
				}
			case model.DependencyRequire:
				if matched {
					out[idx].Required = true
				}
			}
		}
	}
	return out
}
