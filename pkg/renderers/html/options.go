package html

import (
	"io/fs"

	theme "github.com/goliatone/go-theme"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplatesFS replaces the built-in templates. The FS must provide
// form.tmpl, table.tmpl and controls/<kind>.tmpl, or theme partials covering
// the kinds it omits.
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.templates = files
		}
	}
}

// WithTheme applies a go-theme renderer config. CSS variables land on the
// form root and partials keyed "dynform.<kind>" replace control templates.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// WithSanitizer overrides the helper text sanitizer.
func WithSanitizer(s Sanitizer) Option {
	return func(r *Renderer) {
		if s != nil {
			r.sanitizer = s
		}
	}
}
