package model

// FormConfig groups the form-level settings that sit next to the schema. Only
// SubmitLabel, ClassName, Layout.Groups and Behavior.ResetOnSubmit change
// behavior; the remaining knobs are carried for renderers and API clients.
type FormConfig struct {
	SubmitLabel string     `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	ClassName   string     `json:"className,omitempty" yaml:"className,omitempty"`
	Layout      Layout     `json:"layout,omitempty" yaml:"layout,omitempty"`
	Behavior    Behavior   `json:"behavior,omitempty" yaml:"behavior,omitempty"`
	Appearance  Appearance `json:"appearance,omitempty" yaml:"appearance,omitempty"`
}

// DefaultSubmitLabel is used when FormConfig.SubmitLabel is empty.
const DefaultSubmitLabel = "Submit"

// SubmitLabelOrDefault returns the configured label or DefaultSubmitLabel.
func (c FormConfig) SubmitLabelOrDefault() string {
	if c.SubmitLabel == "" {
		return DefaultSubmitLabel
	}
	return c.SubmitLabel
}

// FieldGroup clusters fields under a titled section.
type FieldGroup struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []string `json:"fields" yaml:"fields"`
	Collapsible bool     `json:"collapsible,omitempty" yaml:"collapsible,omitempty"`
	Collapsed   bool     `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Badge       string   `json:"badge,omitempty" yaml:"badge,omitempty"`
}

// Layout describes how fields are arranged.
type Layout struct {
	Groups        []FieldGroup `json:"groups,omitempty" yaml:"groups,omitempty"`
	Columns       string       `json:"columns,omitempty" yaml:"columns,omitempty"`
	Spacing       string       `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	LabelPosition string       `json:"labelPosition,omitempty" yaml:"labelPosition,omitempty"`
}

// Behavior holds interaction settings. DebounceMs and AutoSave are declared
// extension points with no implementation.
type Behavior struct {
	Mode            string `json:"mode,omitempty" yaml:"mode,omitempty"`
	DebounceMs      int    `json:"debounceMs,omitempty" yaml:"debounceMs,omitempty"`
	ValidateOnMount bool   `json:"validateOnMount,omitempty" yaml:"validateOnMount,omitempty"`
	ResetOnSubmit   bool   `json:"resetOnSubmit,omitempty" yaml:"resetOnSubmit,omitempty"`
	SubmitOnEnter   bool   `json:"submitOnEnter,omitempty" yaml:"submitOnEnter,omitempty"`
	AutoSave        bool   `json:"autoSave,omitempty" yaml:"autoSave,omitempty"`
}

// Appearance holds visual settings passed through to renderers.
type Appearance struct {
	Variant            string `json:"variant,omitempty" yaml:"variant,omitempty"`
	Size               string `json:"size,omitempty" yaml:"size,omitempty"`
	FullWidth          bool   `json:"fullWidth,omitempty" yaml:"fullWidth,omitempty"`
	ShowRequiredMarker bool   `json:"showRequiredMarker,omitempty" yaml:"showRequiredMarker,omitempty"`
	ShowErrorIcon      bool   `json:"showErrorIcon,omitempty" yaml:"showErrorIcon,omitempty"`
	ShowSuccessIcon    bool   `json:"showSuccessIcon,omitempty" yaml:"showSuccessIcon,omitempty"`
}
