package html

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

// Event parameter names posted by control buttons. They are prefixed so they
// never collide with field names in the same form post.
const (
	ParamAction      = "_action"
	ParamValue       = "_value"
	ParamForm        = "_form"
	PendingPrefix    = "_pending."
	emptyPlaceholder = "Select..."
)

type optionView struct {
	Label           string `json:"label"`
	Value           string `json:"value"`
	Selected        bool   `json:"selected"`
	Disabled        bool   `json:"disabled"`
	DescriptionHTML string `json:"descriptionHTML,omitempty"`
	EventURL        string `json:"eventURL,omitempty"`
}

type chipView struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	EventURL string `json:"eventURL"`
}

type starView struct {
	Value  string `json:"value"`
	Filled bool   `json:"filled"`
	Active bool   `json:"active"`
}

type controlView struct {
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	ID           string `json:"id"`
	Label        string `json:"label"`
	InputType    string `json:"inputType,omitempty"`
	Placeholder  string `json:"placeholder,omitempty"`
	HelperHTML   string `json:"helperHTML,omitempty"`
	Tooltip      string `json:"tooltip,omitempty"`
	ClassName    string `json:"className,omitempty"`
	AutoComplete string `json:"autoComplete,omitempty"`
	Pattern      string `json:"pattern,omitempty"`
	Min          string `json:"min,omitempty"`
	Max          string `json:"max,omitempty"`
	Value        string `json:"value"`

	Required  bool `json:"required"`
	Disabled  bool `json:"disabled"`
	ReadOnly  bool `json:"readOnly"`
	AutoFocus bool `json:"autoFocus"`
	Checked   bool `json:"checked"`

	EmptyLabel  string       `json:"emptyLabel,omitempty"`
	Options     []optionView `json:"options,omitempty"`
	Candidates  []optionView `json:"candidates,omitempty"`
	Chips       []chipView   `json:"chips,omitempty"`
	Stars       []starView   `json:"stars,omitempty"`
	AddOption   bool         `json:"addOption"`
	PendingName string       `json:"pendingName,omitempty"`
	PendingText string       `json:"pendingText,omitempty"`
	AddURL      string       `json:"addURL,omitempty"`
}

func newControlView(c render.Control, eventPrefix string, sanitizer Sanitizer) controlView {
	eventURL := eventPrefix + url.PathEscape(c.Name)
	label := c.Label
	if label == "" {
		label = c.Name
	}

	view := controlView{
		Kind:         string(c.Kind),
		Name:         c.Name,
		ID:           "field-" + c.Name,
		Label:        label,
		InputType:    c.InputType,
		Placeholder:  c.Placeholder,
		HelperHTML:   strings.TrimSpace(sanitizer.Sanitize(c.HelperText)),
		Tooltip:      c.Tooltip,
		ClassName:    c.ClassName,
		AutoComplete: c.AutoComplete,
		Pattern:      c.Pattern,
		Min:          formatBound(c.Min),
		Max:          formatBound(c.Max),
		Value:        c.Value,
		Required:     c.Required,
		Disabled:     c.Disabled,
		ReadOnly:     c.ReadOnly,
		AutoFocus:    c.AutoFocus,
		Checked:      c.Checked,
	}
	// Stored passwords never go back to the browser.
	if c.Type == model.FieldTypePassword {
		view.Value = ""
	}

	if c.Kind == render.KindSelect {
		view.EmptyLabel = c.Placeholder
		if view.EmptyLabel == "" {
			view.EmptyLabel = emptyPlaceholder
		}
	}

	for _, option := range c.Options {
		view.Options = append(view.Options, newOptionView(option, "", sanitizer))
	}
	for _, option := range c.Candidates {
		view.Candidates = append(view.Candidates, newOptionView(option, eventLink(eventURL, "select", option.Value), sanitizer))
	}
	for _, chip := range c.Selected {
		view.Chips = append(view.Chips, chipView{
			Label:    chip.Label,
			Value:    chip.Value,
			EventURL: eventLink(eventURL, "remove", chip.Value),
		})
	}
	if c.Rating != nil {
		for _, level := range c.Rating.Levels {
			view.Stars = append(view.Stars, starView{
				Value:  strconv.Itoa(level),
				Filled: float64(level) <= c.Rating.Current,
				Active: float64(level) == c.Rating.Current,
			})
		}
	}
	if c.AddOption != nil {
		view.AddOption = true
		view.PendingName = PendingPrefix + c.Name
		view.PendingText = c.AddOption.PendingText
		view.AddURL = eventLink(eventURL, "add-option", "")
	}
	return view
}

func newOptionView(option render.OptionView, eventURL string, sanitizer Sanitizer) optionView {
	return optionView{
		Label:           option.Label,
		Value:           option.Value,
		Selected:        option.Selected,
		Disabled:        option.Disabled,
		DescriptionHTML: strings.TrimSpace(sanitizer.Sanitize(option.Description)),
		EventURL:        eventURL,
	}
}

func eventLink(base, action, value string) string {
	query := url.Values{}
	query.Set(ParamAction, action)
	if value != "" {
		query.Set(ParamValue, value)
	}
	return base + "?" + query.Encode()
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return model.Stringify(*v)
}
