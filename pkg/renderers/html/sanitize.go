package html

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans user-authored markup before it is emitted unescaped.
type Sanitizer interface {
	Sanitize(string) string
}

var (
	helperPolicyOnce sync.Once
	helperPolicy     *bluemonday.Policy
)

// DefaultSanitizer returns the policy applied to helper text and option
// descriptions: bluemonday's UGC policy, shared across renderers.
func DefaultSanitizer() Sanitizer {
	helperPolicyOnce.Do(func() {
		helperPolicy = bluemonday.UGCPolicy()
	})
	return helperPolicy
}
