package policydiff

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ppiankov/phoneinput/internal/policy"
)

func findChange(r *DiffResult, field string) (Change, bool) {
	for _, c := range r.Changes {
		if c.Field == field {
			return c, true
		}
	}
	return Change{}, false
}

func TestIdenticalPoliciesNoChanges(t *testing.T) {
	r := Diff(policy.DefaultPolicy(), policy.DefaultPolicy())
	if r.HasChanges {
		t.Errorf("expected no changes, got %d changes + %d code changes",
			len(r.Changes), len(r.CodeChanges))
	}
}

func TestChangedMaxDigitsDetected(t *testing.T) {
	a := policy.DefaultPolicy()
	b := policy.DefaultPolicy()
	b.Input.MaxDigits = 11

	r := Diff(a, b)
	if !r.HasChanges {
		t.Fatal("expected changes")
	}

	c, ok := findChange(r, "input.max_digits")
	if !ok {
		t.Fatal("max_digits change not found")
	}
	if c.Old != "15" || c.New != "11" {
		t.Errorf("expected 15→11, got %s→%s", c.Old, c.New)
	}
	if c.Comment != "-4 digits" {
		t.Errorf("expected '-4 digits', got %q", c.Comment)
	}
}

func TestBoolComments(t *testing.T) {
	a := policy.DefaultPolicy()
	b := policy.DefaultPolicy()
	b.Input.Plus = false
	b.Formatting.NoFormattingAsYouType = true

	r := Diff(a, b)

	c, ok := findChange(r, "input.plus")
	if !ok || c.Comment != "disabled" {
		t.Errorf("expected plus disabled, got %+v", c)
	}
	c, ok = findChange(r, "formatting.no_formatting_as_you_type")
	if !ok || c.Comment != "enabled" {
		t.Errorf("expected no_formatting_as_you_type enabled, got %+v", c)
	}
}

func TestDisplayFormatAndTrunkPrefix(t *testing.T) {
	a := policy.DefaultPolicy()
	b := policy.DefaultPolicy()
	b.Formatting.DisplayFormat = policy.DisplayNational
	b.Country.AutoDetectCountryLocalTrunkPrefix = ""

	r := Diff(a, b)

	c, ok := findChange(r, "formatting.display_format")
	if !ok || c.Old != "international" || c.New != "national" {
		t.Errorf("expected international→national, got %+v", c)
	}
	c, ok = findChange(r, "country.auto_detect_country_local_trunk_prefix")
	if !ok || c.Old != `"8"` || c.New != `""` {
		t.Errorf("expected quoted trunk prefixes, got %+v", c)
	}
}

func TestCallingCodeChanges(t *testing.T) {
	a := policy.DefaultPolicy()
	b := policy.DefaultPolicy()
	b.Country.AutoDetectCountryLocalCallingCodes = []string{"380"}

	r := Diff(a, b)
	if len(r.CodeChanges) != 2 {
		t.Fatalf("expected 2 code changes, got %+v", r.CodeChanges)
	}
	if r.CodeChanges[0] != (CodeChange{Type: "added", Code: "380"}) {
		t.Errorf("expected 380 added, got %+v", r.CodeChanges[0])
	}
	if r.CodeChanges[1] != (CodeChange{Type: "removed", Code: "7"}) {
		t.Errorf("expected 7 removed, got %+v", r.CodeChanges[1])
	}
}

func TestCallingCodeReorder(t *testing.T) {
	a := policy.DefaultPolicy()
	a.Country.AutoDetectCountryLocalCallingCodes = []string{"7", "380"}
	b := policy.DefaultPolicy()
	b.Country.AutoDetectCountryLocalCallingCodes = []string{"380", "7"}

	r := Diff(a, b)
	if len(r.CodeChanges) != 0 {
		t.Errorf("expected no set changes, got %+v", r.CodeChanges)
	}
	if _, ok := findChange(r, "country.auto_detect_country_local_calling_codes"); !ok {
		t.Error("expected reorder reported")
	}
}

func TestFormatText(t *testing.T) {
	a := policy.DefaultPolicy()
	b := policy.DefaultPolicy()
	b.Input.MaxDigits = 20
	b.UI.ShowFlagsInPopover = false
	b.Country.AutoDetectCountryLocalCallingCodes = []string{"7", "44"}

	r := Diff(a, b)
	r.OldPath, r.NewPath = "a.yaml", "b.yaml"
	out := FormatText(r)

	for _, want := range []string{
		"Policy diff: a.yaml → b.yaml",
		"Input:",
		"max_digits:",
		"15 → 20  (+5 digits)",
		"Country:",
		"+ 44",
		"UI:",
		"show_flags_in_popover:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Formatting:") {
		t.Errorf("unchanged section rendered:\n%s", out)
	}
}

func TestFormatTextNoChanges(t *testing.T) {
	r := Diff(policy.DefaultPolicy(), policy.DefaultPolicy())
	if out := FormatText(r); !strings.Contains(out, "No changes detected.") {
		t.Errorf("expected no-changes message, got %q", out)
	}
}

func TestFormatJSON(t *testing.T) {
	b := policy.DefaultPolicy()
	b.Input.DigitsOnly = false

	out, err := FormatJSON(Diff(policy.DefaultPolicy(), b))
	if err != nil {
		t.Fatal(err)
	}
	var decoded DiffResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !decoded.HasChanges || len(decoded.Changes) != 1 {
		t.Errorf("expected one change, got %+v", decoded)
	}
}
