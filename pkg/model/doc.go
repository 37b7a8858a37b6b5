// Package model defines the declarative form schema consumed by the render
// core. A Schema is an ordered list of FieldDescriptor values; the order is the
// rendering order and the key order of submitted records. Descriptors carry
// validation and dependency metadata as plain data: nothing in this module
// evaluates validation rules, and dependencies only take effect when a caller
// wires a policy evaluator into the form controller. The one runtime edit the
// schema allows is Schema.AppendOption, used by the add-new-option flow of
// multiselect fields.
package model
