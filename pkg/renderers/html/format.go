package html

import (
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
)

// FormatValue renders a record value for the records table: booleans as
// Yes/No, lists joined with commas, everything else stringified.
func FormatValue(value any) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, model.Stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		return model.Stringify(v)
	}
}
