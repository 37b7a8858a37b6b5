package form

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/policy"
	"github.com/goliatone/go-dynform/pkg/render"
)

// Option configures a Controller.
type Option func(*Controller)

// WithDefaults seeds initial values. Missing fields start empty.
func WithDefaults(defaults map[string]any) Option {
	return func(c *Controller) {
		c.defaults = defaults
	}
}

// WithOnSubmit registers the completion callback.
func WithOnSubmit(fn SubmitFunc) Option {
	return func(c *Controller) {
		c.onSubmit = fn
	}
}

// WithConfig applies form-level settings. Behavior.ResetOnSubmit is honoured.
func WithConfig(config model.FormConfig) Option {
	return func(c *Controller) {
		c.config = config
	}
}

// WithResetOnSubmit restores the initial values after every submit.
func WithResetOnSubmit(reset bool) Option {
	return func(c *Controller) {
		c.resetOnSubmit = reset
	}
}

// WithRenderer overrides the render core, e.g. to share pending add-option
// text across controllers.
func WithRenderer(renderer *render.Renderer) Option {
	return func(c *Controller) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithPolicy enables conditional field behavior. Without it, descriptor
// dependencies stay inert.
func WithPolicy(evaluator policy.Evaluator) Option {
	return func(c *Controller) {
		c.policy = evaluator
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}
