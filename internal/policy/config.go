package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DisplayFormat selects how a number is presented by the rendering widget.
type DisplayFormat string

const (
	DisplayInternational DisplayFormat = "international"
	DisplayNational      DisplayFormat = "national"
)

// InputPolicy constrains what the user can type.
type InputPolicy struct {
	MaxDigits  int  `yaml:"max_digits" json:"maxDigits"`
	DigitsOnly bool `yaml:"digits_only" json:"digitsOnly"`
	Plus       bool `yaml:"plus" json:"plus"`
}

// FormattingPolicy controls formatting hints handed to the base widget.
type FormattingPolicy struct {
	DisplayFormat         DisplayFormat `yaml:"display_format" json:"displayFormat"`
	AutoFormat            bool          `yaml:"auto_format" json:"autoFormat"`
	NoFormattingAsYouType bool          `yaml:"no_formatting_as_you_type" json:"noFormattingAsYouType"`
}

// CountryPolicy controls country lookup and prefix-based detection.
type CountryPolicy struct {
	FetchCountry                       bool     `yaml:"fetch_country" json:"fetchCountry"`
	AutoDetectCountryFromPrefix        bool     `yaml:"auto_detect_country_from_prefix" json:"autoDetectCountryFromPrefix"`
	AutoDetectCountryLocalTrunkPrefix  string   `yaml:"auto_detect_country_local_trunk_prefix" json:"autoDetectCountryLocalTrunkPrefix"`
	AutoDetectCountryLocalCallingCodes []string `yaml:"auto_detect_country_local_calling_codes" json:"autoDetectCountryLocalCallingCodes"`
}

// UIPolicy controls widget chrome.
type UIPolicy struct {
	ShowFlagsInPopover bool `yaml:"show_flags_in_popover" json:"showFlagsInPopover"`
}

// Policy is the fully resolved widget configuration. Every field is populated.
type Policy struct {
	Input      InputPolicy      `yaml:"input" json:"input"`
	Formatting FormattingPolicy `yaml:"formatting" json:"formatting"`
	Country    CountryPolicy    `yaml:"country" json:"country"`
	UI         UIPolicy         `yaml:"ui" json:"ui"`
}

// DefaultPolicy returns the built-in policy. Each call returns a fresh value.
func DefaultPolicy() Policy {
	return Policy{
		Input: InputPolicy{
			MaxDigits:  15,
			DigitsOnly: true,
			Plus:       true,
		},
		Formatting: FormattingPolicy{
			DisplayFormat:         DisplayInternational,
			AutoFormat:            true,
			NoFormattingAsYouType: false,
		},
		Country: CountryPolicy{
			FetchCountry:                       false,
			AutoDetectCountryFromPrefix:        true,
			AutoDetectCountryLocalTrunkPrefix:  "8",
			AutoDetectCountryLocalCallingCodes: []string{"7"},
		},
		UI: UIPolicy{
			ShowFlagsInPopover: true,
		},
	}
}

// PartialInputPolicy is the explicit-policy counterpart of InputPolicy.
// Nil fields are undefined.
type PartialInputPolicy struct {
	MaxDigits  *int  `yaml:"max_digits,omitempty" json:"maxDigits,omitempty"`
	DigitsOnly *bool `yaml:"digits_only,omitempty" json:"digitsOnly,omitempty"`
	Plus       *bool `yaml:"plus,omitempty" json:"plus,omitempty"`
}

// PartialFormattingPolicy is the explicit-policy counterpart of FormattingPolicy.
type PartialFormattingPolicy struct {
	DisplayFormat         *DisplayFormat `yaml:"display_format,omitempty" json:"displayFormat,omitempty"`
	AutoFormat            *bool          `yaml:"auto_format,omitempty" json:"autoFormat,omitempty"`
	NoFormattingAsYouType *bool          `yaml:"no_formatting_as_you_type,omitempty" json:"noFormattingAsYouType,omitempty"`
}

// PartialCountryPolicy is the explicit-policy counterpart of CountryPolicy.
// A non-nil empty calling-code list is defined (and later falls back to the default).
type PartialCountryPolicy struct {
	FetchCountry                       *bool    `yaml:"fetch_country,omitempty" json:"fetchCountry,omitempty"`
	AutoDetectCountryFromPrefix        *bool    `yaml:"auto_detect_country_from_prefix,omitempty" json:"autoDetectCountryFromPrefix,omitempty"`
	AutoDetectCountryLocalTrunkPrefix  *string  `yaml:"auto_detect_country_local_trunk_prefix,omitempty" json:"autoDetectCountryLocalTrunkPrefix,omitempty"`
	AutoDetectCountryLocalCallingCodes []string `yaml:"auto_detect_country_local_calling_codes,omitempty" json:"autoDetectCountryLocalCallingCodes,omitempty"`
}

// PartialUIPolicy is the explicit-policy counterpart of UIPolicy.
type PartialUIPolicy struct {
	ShowFlagsInPopover *bool `yaml:"show_flags_in_popover,omitempty" json:"showFlagsInPopover,omitempty"`
}

// PartialPolicy is an explicit policy object where any section or field may be absent.
type PartialPolicy struct {
	Input      *PartialInputPolicy      `yaml:"input,omitempty" json:"input,omitempty"`
	Formatting *PartialFormattingPolicy `yaml:"formatting,omitempty" json:"formatting,omitempty"`
	Country    *PartialCountryPolicy    `yaml:"country,omitempty" json:"country,omitempty"`
	UI         *PartialUIPolicy         `yaml:"ui,omitempty" json:"ui,omitempty"`
}

// Legacy holds the flat flags of the older configuration surface.
// Nil fields are unset. Set fields beat every other source.
type Legacy struct {
	MaxDigits          *int           `yaml:"max_digits,omitempty" json:"maxDigits,omitempty"`
	DigitsOnly         *bool          `yaml:"digits_only,omitempty" json:"digitsOnly,omitempty"`
	Plus               *bool          `yaml:"plus,omitempty" json:"plus,omitempty"`
	EnforceLeadingPlus *bool          `yaml:"enforce_leading_plus,omitempty" json:"enforceLeadingPlus,omitempty"`
	Format             *DisplayFormat `yaml:"format,omitempty" json:"format,omitempty"`
	Fetch              *bool          `yaml:"fetch,omitempty" json:"fetch,omitempty"`
	NoFlags            *bool          `yaml:"no_flags,omitempty" json:"noFlags,omitempty"`
	ShowFlagsInPopover *bool          `yaml:"show_flags_in_popover,omitempty" json:"showFlagsInPopover,omitempty"`
}

// Sources is the on-disk form of a widget definition: the three
// configuration surfaces that Resolve layers over the defaults.
type Sources struct {
	Attrs  map[string]any `yaml:"attrs,omitempty"`
	Policy *PartialPolicy `yaml:"policy,omitempty"`
	Legacy Legacy         `yaml:"legacy,omitempty"`
}

// Input converts the file sources into resolver input.
func (s Sources) Input() Input {
	return Input{
		Attrs:  s.Attrs,
		Policy: s.Policy,
		Legacy: s.Legacy,
	}
}

// DefaultSourcesPath returns ~/.phoneinput/widget.yaml, or "" when the home
// directory cannot be determined.
func DefaultSourcesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".phoneinput", "widget.yaml")
}

// LoadSources loads a widget definition from a YAML file.
// Empty path falls back to ~/.phoneinput/widget.yaml.
// Missing file returns empty sources, which resolve to the defaults.
// Invalid YAML returns an error.
func LoadSources(path string) (Sources, error) {
	if path == "" {
		path = DefaultSourcesPath()
		if path == "" {
			return Sources{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Sources{}, nil
		}
		return Sources{}, fmt.Errorf("failed to read widget file: %w", err)
	}

	return ParseSources(data)
}

// ParseSources decodes a widget definition from YAML bytes.
func ParseSources(data []byte) (Sources, error) {
	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Sources{}, fmt.Errorf("failed to parse widget file: %w", err)
	}
	return s, nil
}

// DefaultSourcesYAML returns a commented widget file for init.
func DefaultSourcesYAML() string {
	return `# phoneinput widget definition
# Generated by: phoneinput init
#
# Resolution order per field (first defined wins):
#   1. legacy flags
#   2. attrs (only auto-format, no-formatting-as-you-type,
#      auto-detect-country-from-prefix, auto-detect-country-local-trunk-prefix,
#      auto-detect-country-local-calling-codes)
#   3. policy
#   4. built-in defaults

# Element attributes, as the host page would pass them.
# A bare attribute (empty string) means enabled.
attrs:
  auto-format: ""
  # no-formatting-as-you-type: "false"
  # auto-detect-country-local-calling-codes: "7, 380"

# Structured policy. Omitted fields use the defaults shown here.
policy:
  input:
    max_digits: 15
    digits_only: true
    plus: true
  formatting:
    display_format: international   # international | national
    auto_format: true
    no_formatting_as_you_type: false
  country:
    fetch_country: false
    auto_detect_country_from_prefix: true
    auto_detect_country_local_trunk_prefix: "8"
    auto_detect_country_local_calling_codes: ["7"]
  ui:
    show_flags_in_popover: true

# Older flat flags. Any flag set here overrides attrs and policy.
legacy: {}
  # max_digits: 12
  # enforce_leading_plus: true
  # format: national
  # fetch: false
  # no_flags: true
`
}
