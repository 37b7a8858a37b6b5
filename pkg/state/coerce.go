package state

import (
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Bool reads a value with truthiness semantics: nil, false, "" and numeric
// zero (or NaN) are false; everything else, including lists and the string
// "false", is true.
func Bool(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []string:
		return true
	case []any:
		return true
	}
	if f, ok := numeric(value); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// Number reads a numeric value. Strings are parsed after trimming; anything
// that does not parse falls back to 0.
func Number(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	if f, ok := numeric(value); ok && !math.IsNaN(f) {
		return f
	}
	return 0
}

// String reads a scalar as text. nil becomes the empty string.
func String(value any) string {
	return model.Stringify(value)
}

// Strings reads an ordered set of strings. Non-list values yield an empty set.
func Strings(value any) []string {
	switch v := value.(type) {
	case []string:
		out := make([]string, 0, len(v))
		return append(out, v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, model.Stringify(item))
		}
		return out
	default:
		return []string{}
	}
}

// Selection reads an ordered set of strings, dropping empty and repeated
// entries while keeping first-seen order.
func Selection(value any) []string {
	items := Strings(value)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || slices.Contains(out, item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func numeric(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
