package adapter

import (
	"testing"

	"github.com/ppiankov/phoneinput/internal/machine"
)

func TestNewBasePayload(t *testing.T) {
	cfg := machine.Config{MaxDigits: 15, AutoFormat: false, NoFormattingAsYouType: true}

	p := NewBasePayload("+79001234567", cfg)
	want := BasePayload{
		NewPhoneNumber:        "+79001234567",
		AutoFormat:            false,
		NoFormattingAsYouType: true,
		UpdateResults:         true,
	}
	if p != want {
		t.Errorf("expected %+v, got %+v", want, p)
	}
}

func TestCountryValueForBase(t *testing.T) {
	tests := []struct {
		in   machine.NullString
		want string
	}{
		{machine.NullString{}, "--"},
		{machine.Some(""), "--"},
		{machine.Some("RU"), "RU"},
	}

	for _, tt := range tests {
		if got := CountryValueForBase(tt.in); got != tt.want {
			t.Errorf("CountryValueForBase(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPushHelpers(t *testing.T) {
	var gotPayload BasePayload
	PushPhoneUpdate(func(p BasePayload) { gotPayload = p }, BasePayload{NewPhoneNumber: "+1"})
	if gotPayload.NewPhoneNumber != "+1" {
		t.Errorf("expected payload delivered, got %+v", gotPayload)
	}

	var gotCountry string
	PushCountryUpdate(func(c string) { gotCountry = c }, machine.NullString{})
	if gotCountry != DefaultCountryCode {
		t.Errorf("expected placeholder, got %q", gotCountry)
	}

	// nil handlers are ignored
	PushPhoneUpdate(nil, BasePayload{})
	PushCountryUpdate(nil, machine.Some("US"))
}
