package model

import "strings"

// DeriveOptionValue turns free text into a machine value: lower-cased, trimmed,
// with every whitespace run collapsed into a single hyphen.
func DeriveOptionValue(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), "-")
}
