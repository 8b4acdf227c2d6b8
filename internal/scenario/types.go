package scenario

import (
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/phoneinput/internal/machine"
	"github.com/ppiankov/phoneinput/internal/policy"
)

// Initial is the widget state at mount time. Omitted or ~ means null.
type Initial struct {
	Model   *string `yaml:"model,omitempty"`
	Country *string `yaml:"country,omitempty"`
}

// Expect lists the state fields a step asserts. Omitted fields are not checked.
// model_value and country accept ~ to assert null.
type Expect struct {
	RawInput        *string   `yaml:"raw_input,omitempty"`
	Digits          *string   `yaml:"digits,omitempty"`
	NormalizedInput *string   `yaml:"normalized_input,omitempty"`
	ModelValue      yaml.Node `yaml:"model_value,omitempty"`
	Country         yaml.Node `yaml:"country,omitempty"`
	PopoverShown    *bool     `yaml:"popover_shown,omitempty"`
}

// Step is one event dispatched to the widget, with its expectations.
type Step struct {
	Event    string          `yaml:"event"`
	RawInput string          `yaml:"raw_input,omitempty"`
	Value    *string         `yaml:"value,omitempty"`
	Visible  bool            `yaml:"visible,omitempty"`
	Widget   *policy.Sources `yaml:"widget,omitempty"`
	Expect   Expect          `yaml:"expect,omitempty"`
}

// Scenario is a named event script run against one widget.
// Widget sources come from widget_file (relative to the scenario) or inline.
type Scenario struct {
	Name          string         `yaml:"name"`
	WidgetFile    string         `yaml:"widget_file,omitempty"`
	Widget        policy.Sources `yaml:"widget,omitempty"`
	DetectCountry bool           `yaml:"detect_country,omitempty"`
	Initial       Initial        `yaml:"initial,omitempty"`
	Steps         []Step         `yaml:"steps"`
}

// Mismatch is one failed field assertion.
type Mismatch struct {
	Field    string `json:"field"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index      int           `json:"index"`
	Event      string        `json:"event"`
	Passed     bool          `json:"passed"`
	Mismatches []Mismatch    `json:"mismatches,omitempty"`
	State      machine.State `json:"state"`
}

// RunResult is the outcome of running all steps in one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Steps  []StepResult `json:"steps"`
}
