// Package adapter builds the values handed to the rendering base widget.
// It carries no logic beyond shaping machine output.
package adapter

import "github.com/ppiankov/phoneinput/internal/machine"

// DefaultCountryCode is sent to the base widget when no country is set.
const DefaultCountryCode = "--"

// BasePayload is the update the base widget expects after input changes.
type BasePayload struct {
	NewPhoneNumber        string `json:"newPhoneNumber"`
	AutoFormat            bool   `json:"autoFormat"`
	NoFormattingAsYouType bool   `json:"noFormattingAsYouType"`
	UpdateResults         bool   `json:"updateResults"`
}

// PhoneUpdateFunc receives phone updates for the base widget.
type PhoneUpdateFunc func(BasePayload)

// CountryUpdateFunc receives country updates for the base widget.
type CountryUpdateFunc func(string)

// NewBasePayload builds the base update from a normalized input and the machine config.
func NewBasePayload(normalizedInput string, cfg machine.Config) BasePayload {
	return BasePayload{
		NewPhoneNumber:        normalizedInput,
		AutoFormat:            cfg.AutoFormat,
		NoFormattingAsYouType: cfg.NoFormattingAsYouType,
		UpdateResults:         true,
	}
}

// CountryValueForBase returns the country code, or DefaultCountryCode when it is null or empty.
func CountryValueForBase(country machine.NullString) string {
	if country.OrEmpty() == "" {
		return DefaultCountryCode
	}
	return country.String
}

// PushPhoneUpdate hands the payload to the base widget. A nil handler is ignored.
func PushPhoneUpdate(fn PhoneUpdateFunc, p BasePayload) {
	if fn == nil {
		return
	}
	fn(p)
}

// PushCountryUpdate hands the country (or the placeholder) to the base widget.
// A nil handler is ignored.
func PushCountryUpdate(fn CountryUpdateFunc, country machine.NullString) {
	if fn == nil {
		return
	}
	fn(CountryValueForBase(country))
}
