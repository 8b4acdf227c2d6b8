package policy

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultPolicyValues(t *testing.T) {
	p := DefaultPolicy()

	if p.Input.MaxDigits != 15 {
		t.Errorf("expected MaxDigits=15, got %d", p.Input.MaxDigits)
	}
	if !p.Input.DigitsOnly {
		t.Error("expected DigitsOnly=true")
	}
	if !p.Input.Plus {
		t.Error("expected Plus=true")
	}
	if p.Formatting.DisplayFormat != DisplayInternational {
		t.Errorf("expected international display format, got %s", p.Formatting.DisplayFormat)
	}
	if !p.Formatting.AutoFormat {
		t.Error("expected AutoFormat=true")
	}
	if p.Formatting.NoFormattingAsYouType {
		t.Error("expected NoFormattingAsYouType=false")
	}
	if p.Country.FetchCountry {
		t.Error("expected FetchCountry=false")
	}
	if !p.Country.AutoDetectCountryFromPrefix {
		t.Error("expected AutoDetectCountryFromPrefix=true")
	}
	if p.Country.AutoDetectCountryLocalTrunkPrefix != "8" {
		t.Errorf("expected trunk prefix 8, got %q", p.Country.AutoDetectCountryLocalTrunkPrefix)
	}
	if !reflect.DeepEqual(p.Country.AutoDetectCountryLocalCallingCodes, []string{"7"}) {
		t.Errorf("expected calling codes [7], got %v", p.Country.AutoDetectCountryLocalCallingCodes)
	}
	if !p.UI.ShowFlagsInPopover {
		t.Error("expected ShowFlagsInPopover=true")
	}
}

func TestDefaultPolicyReturnsFreshSlices(t *testing.T) {
	a := DefaultPolicy()
	a.Country.AutoDetectCountryLocalCallingCodes[0] = "380"

	b := DefaultPolicy()
	if b.Country.AutoDetectCountryLocalCallingCodes[0] != "7" {
		t.Errorf("mutating one default leaked into the next: %v", b.Country.AutoDetectCountryLocalCallingCodes)
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	s, err := LoadSources("/nonexistent/path/widget.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if got := Resolve(s.Input()); !reflect.DeepEqual(got, DefaultPolicy()) {
		t.Errorf("expected defaults for missing file, got %+v", got)
	}
}

func TestLoadSourcesEmptyPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := LoadSources("")
	if err != nil {
		t.Fatalf("expected no error for empty path, got %v", err)
	}
	if s.Attrs != nil || s.Policy != nil {
		t.Errorf("expected empty sources, got %+v", s)
	}
}

func TestLoadSourcesFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.yaml")

	content := `
attrs:
  auto-format: "false"
  auto-detect-country-local-calling-codes: "7, 380"
policy:
  input:
    max_digits: 12
  formatting:
    display_format: national
legacy:
  enforce_leading_plus: false
  no_flags: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSources(path)
	if err != nil {
		t.Fatalf("failed to load widget file: %v", err)
	}

	p := Resolve(s.Input())
	if p.Input.MaxDigits != 12 {
		t.Errorf("expected MaxDigits=12, got %d", p.Input.MaxDigits)
	}
	if p.Input.Plus {
		t.Error("expected legacy enforce_leading_plus=false to win")
	}
	if p.Formatting.DisplayFormat != DisplayNational {
		t.Errorf("expected national, got %s", p.Formatting.DisplayFormat)
	}
	if p.Formatting.AutoFormat {
		t.Error("expected auto-format attribute \"false\" to disable AutoFormat")
	}
	if !reflect.DeepEqual(p.Country.AutoDetectCountryLocalCallingCodes, []string{"7", "380"}) {
		t.Errorf("expected [7 380], got %v", p.Country.AutoDetectCountryLocalCallingCodes)
	}
	if p.UI.ShowFlagsInPopover {
		t.Error("expected no_flags=true to hide flags")
	}
	// Untouched fields keep defaults.
	if !p.Input.DigitsOnly {
		t.Error("expected default DigitsOnly=true")
	}
}

func TestLoadSourcesInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte(":::not yaml\x00"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSources(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadSourcesNonNumericMaxDigitsRejected(t *testing.T) {
	_, err := ParseSources([]byte("legacy:\n  max_digits: lots\n"))
	if err == nil {
		t.Error("expected decode error for non-numeric max_digits")
	}
}

func TestDefaultSourcesYAMLResolvesToDefaults(t *testing.T) {
	var s Sources
	if err := yaml.Unmarshal([]byte(DefaultSourcesYAML()), &s); err != nil {
		t.Fatalf("default widget YAML does not parse: %v", err)
	}

	got := Resolve(s.Input())
	if !reflect.DeepEqual(got, DefaultPolicy()) {
		t.Errorf("default widget file should resolve to defaults\n got: %+v\nwant: %+v", got, DefaultPolicy())
	}
}
