// Package machine holds the phone-input state machine: the normalized input
// snapshot, the widget state around it, and the pure reducer that advances
// that state one event at a time.
//
// Every value in this package is a plain value type. Transition returns a new
// State and never mutates or retains its argument, so successive states share
// no mutable structure.
package machine

import (
	"encoding/json"

	"github.com/ppiankov/phoneinput/internal/policy"
)

// NullString is a string that may be null. The zero value is null.
type NullString struct {
	String string
	Valid  bool
}

// Some returns a non-null NullString.
func Some(s string) NullString {
	return NullString{String: s, Valid: true}
}

// Ptr converts a possibly nil string pointer.
func Ptr(s *string) NullString {
	if s == nil {
		return NullString{}
	}
	return Some(*s)
}

// OrEmpty returns the string, or "" when null.
func (n NullString) OrEmpty() string {
	if !n.Valid {
		return ""
	}
	return n.String
}

// orNull clears the payload of a null value.
func (n NullString) orNull() NullString {
	if !n.Valid {
		return NullString{}
	}
	return n
}

// MarshalJSON encodes null or the string.
func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.String)
}

// UnmarshalJSON decodes null or a string.
func (n *NullString) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = Ptr(s)
	return nil
}

// Config is the projection of the policy that the machine consumes.
type Config struct {
	MaxDigits             int  `json:"maxDigits"`
	DigitsOnly            bool `json:"digitsOnly"`
	Plus                  bool `json:"plus"`
	AutoFormat            bool `json:"autoFormat"`
	NoFormattingAsYouType bool `json:"noFormattingAsYouType"`
}

// ConfigFromPolicy derives the machine config from a resolved policy.
func ConfigFromPolicy(p policy.Policy) Config {
	return Config{
		MaxDigits:             p.Input.MaxDigits,
		DigitsOnly:            p.Input.DigitsOnly,
		Plus:                  p.Input.Plus,
		AutoFormat:            p.Formatting.AutoFormat,
		NoFormattingAsYouType: p.Formatting.NoFormattingAsYouType,
	}
}

// Snapshot is the raw, digit-filtered and normalized views of the current input.
type Snapshot struct {
	RawInput        string `json:"rawInput"`
	NormalizedInput string `json:"normalizedInput"`
	Digits          string `json:"digits"`
}

// UI is widget chrome state that the machine tracks for the host.
type UI struct {
	IsPopoverShown bool `json:"isPopoverShown"`
}

// State is the full machine state. It is comparable with ==.
type State struct {
	Snapshot
	ModelValue NullString `json:"modelValue"`
	Country    NullString `json:"country"`
	UI         UI         `json:"ui"`
	Config     Config     `json:"config"`
}

// NewState creates the state for a freshly mounted widget. The snapshot is
// derived from the initial model value and the popover starts hidden.
func NewState(modelValue, country NullString, cfg Config) State {
	return State{
		Snapshot:   Derive(modelValue.OrEmpty(), cfg),
		ModelValue: modelValue.orNull(),
		Country:    country.orNull(),
		Config:     cfg,
	}
}
