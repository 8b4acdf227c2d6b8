package country

import (
	"testing"

	"github.com/ppiankov/phoneinput/internal/machine"
	"github.com/ppiankov/phoneinput/internal/policy"
)

func snapshot(raw string) machine.Snapshot {
	return machine.Derive(raw, machine.Config{MaxDigits: 15})
}

func TestDetect(t *testing.T) {
	cp := policy.DefaultPolicy().Country

	tests := []struct {
		name   string
		raw    string
		region string
		source Source
		ok     bool
	}{
		{"trunk prefix maps to local calling code", "8 (900) 123-45-67", "RU", SourceTrunkPrefix, true},
		{"international russian", "+7 900 123", "RU", SourceCallingCode, true},
		{"plain local calling code", "7900", "RU", SourceCallingCode, true},
		{"international uk", "+44 20 7946", "GB", SourceCallingCode, true},
		{"north america", "+1 555", "US", SourceCallingCode, true},
		{"three digit code", "+380 44", "UA", SourceCallingCode, true},
		{"international 8 is not a trunk prefix", "+81 3 1234", "JP", SourceCallingCode, true},
		{"no digits", "+", "", "", false},
		{"unassigned code", "+999", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(snapshot(tt.raw), cp)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v (%+v)", tt.ok, ok, got)
			}
			if got.Region != tt.region {
				t.Errorf("expected region %q, got %q", tt.region, got.Region)
			}
			if got.Source != tt.source {
				t.Errorf("expected source %q, got %q", tt.source, got.Source)
			}
		})
	}
}

func TestDetectDisabled(t *testing.T) {
	cp := policy.DefaultPolicy().Country
	cp.AutoDetectCountryFromPrefix = false

	if _, ok := Detect(snapshot("+7 900"), cp); ok {
		t.Error("expected no detection when disabled")
	}
}

func TestDetectCustomTrunkPrefix(t *testing.T) {
	cp := policy.DefaultPolicy().Country
	cp.AutoDetectCountryLocalTrunkPrefix = "0"
	cp.AutoDetectCountryLocalCallingCodes = []string{"bogus", "44"}

	got, ok := Detect(snapshot("020 7946 0958"), cp)
	if !ok {
		t.Fatal("expected detection")
	}
	if got.Region != "GB" || got.CallingCode != "44" || got.Source != SourceTrunkPrefix {
		t.Errorf("expected GB via trunk prefix, got %+v", got)
	}
}

func TestCallingCodeForRegion(t *testing.T) {
	if got := CallingCodeForRegion("ru"); got != "7" {
		t.Errorf("expected 7, got %q", got)
	}
	if got := CallingCodeForRegion("XX"); got != "" {
		t.Errorf("expected empty for unknown region, got %q", got)
	}
}
