package render

import "github.com/goliatone/go-dynform/pkg/model"

// Kind names the control shape an output renderer has to draw.
type Kind string

const (
	KindInput       Kind = "input"
	KindTextarea    Kind = "textarea"
	KindSelect      Kind = "select"
	KindRadioGroup  Kind = "radio-group"
	KindSwitch      Kind = "switch"
	KindCheckbox    Kind = "checkbox"
	KindRating      Kind = "rating"
	KindMultiSelect Kind = "multiselect"
	KindTemporal    Kind = "temporal"
)

// RatingLevels is the fixed number of rating steps.
const RatingLevels = 5

// OptionView is an option as presented by a control.
type OptionView struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Selected    bool   `json:"selected,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
	Description string `json:"description,omitempty"`
}

// Chip is one selected entry of a multiselect control.
type Chip struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RatingControl describes the star scale of a rating field.
type RatingControl struct {
	Levels  []int   `json:"levels"`
	Current float64 `json:"current"`
}

// AddOptionControl is the inline "add new option" affordance.
type AddOptionControl struct {
	PendingText string `json:"pendingText"`
}

// Control is the description of one rendered field.
type Control struct {
	Kind         Kind            `json:"kind"`
	Name         string          `json:"name"`
	Type         model.FieldType `json:"type"`
	InputType    string          `json:"inputType,omitempty"`
	Label        string          `json:"label,omitempty"`
	Placeholder  string          `json:"placeholder,omitempty"`
	HelperText   string          `json:"helperText,omitempty"`
	Tooltip      string          `json:"tooltip,omitempty"`
	ClassName    string          `json:"className,omitempty"`
	AutoComplete string          `json:"autoComplete,omitempty"`

	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
	Required bool     `json:"required,omitempty"`

	Disabled  bool `json:"disabled,omitempty"`
	ReadOnly  bool `json:"readOnly,omitempty"`
	Hidden    bool `json:"hidden,omitempty"`
	AutoFocus bool `json:"autoFocus,omitempty"`

	Value   string `json:"value"`
	Checked bool   `json:"checked,omitempty"`

	Options    []OptionView      `json:"options,omitempty"`
	Candidates []OptionView      `json:"candidates,omitempty"`
	Selected   []Chip            `json:"selected,omitempty"`
	Rating     *RatingControl    `json:"rating,omitempty"`
	AddOption  *AddOptionControl `json:"addOption,omitempty"`
}

// SelectedOption returns the option flagged as selected, if any.
func (c Control) SelectedOption() (OptionView, bool) {
	for _, option := range c.Options {
		if option.Selected {
			return option, true
		}
	}
	return OptionView{}, false
}
