// Package render is the dispatch core of the form engine. Render maps one
// field descriptor and the current store value to a renderer-neutral Control;
// Change, Select, Remove and AddOption translate user interaction back into
// store updates. Dispatch is a closed switch over model.FieldType with an
// explicit default arm: unknown tags render as text inputs instead of failing.
//
// The package never reports errors for user input. Out-of-range values are
// stored as-is and coercions fall back to zero values.
package render
