package policydiff

import (
	"fmt"
	"strconv"

	"github.com/ppiankov/phoneinput/internal/policy"
)

// Change represents a scalar field change.
type Change struct {
	Field   string `json:"field"`
	Old     string `json:"old"`
	New     string `json:"new"`
	Comment string `json:"comment,omitempty"`
}

// CodeChange represents a local calling code added to or removed from the country policy.
type CodeChange struct {
	Type string `json:"type"` // "added", "removed"
	Code string `json:"code"`
}

// DiffResult holds the comparison of two resolved policies.
type DiffResult struct {
	OldPath     string       `json:"old_path"`
	NewPath     string       `json:"new_path"`
	Changes     []Change     `json:"changes"`
	CodeChanges []CodeChange `json:"code_changes"`
	HasChanges  bool         `json:"has_changes"`
}

// Diff compares two resolved policies and returns the differences.
func Diff(old, new policy.Policy) *DiffResult {
	r := &DiffResult{}

	// Input
	if old.Input.MaxDigits != new.Input.MaxDigits {
		r.Changes = append(r.Changes, Change{
			Field:   "input.max_digits",
			Old:     strconv.Itoa(old.Input.MaxDigits),
			New:     strconv.Itoa(new.Input.MaxDigits),
			Comment: intComment(old.Input.MaxDigits, new.Input.MaxDigits),
		})
	}
	diffBool(r, "input.digits_only", old.Input.DigitsOnly, new.Input.DigitsOnly)
	diffBool(r, "input.plus", old.Input.Plus, new.Input.Plus)

	// Formatting
	if old.Formatting.DisplayFormat != new.Formatting.DisplayFormat {
		r.Changes = append(r.Changes, Change{
			Field: "formatting.display_format",
			Old:   string(old.Formatting.DisplayFormat),
			New:   string(new.Formatting.DisplayFormat),
		})
	}
	diffBool(r, "formatting.auto_format", old.Formatting.AutoFormat, new.Formatting.AutoFormat)
	diffBool(r, "formatting.no_formatting_as_you_type",
		old.Formatting.NoFormattingAsYouType, new.Formatting.NoFormattingAsYouType)

	// Country
	diffBool(r, "country.fetch_country", old.Country.FetchCountry, new.Country.FetchCountry)
	diffBool(r, "country.auto_detect_country_from_prefix",
		old.Country.AutoDetectCountryFromPrefix, new.Country.AutoDetectCountryFromPrefix)
	if old.Country.AutoDetectCountryLocalTrunkPrefix != new.Country.AutoDetectCountryLocalTrunkPrefix {
		r.Changes = append(r.Changes, Change{
			Field: "country.auto_detect_country_local_trunk_prefix",
			Old:   strconv.Quote(old.Country.AutoDetectCountryLocalTrunkPrefix),
			New:   strconv.Quote(new.Country.AutoDetectCountryLocalTrunkPrefix),
		})
	}
	diffCodes(r, old.Country.AutoDetectCountryLocalCallingCodes, new.Country.AutoDetectCountryLocalCallingCodes)

	// UI
	diffBool(r, "ui.show_flags_in_popover", old.UI.ShowFlagsInPopover, new.UI.ShowFlagsInPopover)

	r.HasChanges = len(r.Changes) > 0 || len(r.CodeChanges) > 0
	return r
}

func diffBool(r *DiffResult, field string, old, new bool) {
	if old == new {
		return
	}
	comment := "disabled"
	if new {
		comment = "enabled"
	}
	r.Changes = append(r.Changes, Change{
		Field:   field,
		Old:     strconv.FormatBool(old),
		New:     strconv.FormatBool(new),
		Comment: comment,
	})
}

func intComment(old, new int) string {
	if new > old {
		return fmt.Sprintf("+%d digits", new-old)
	}
	return fmt.Sprintf("-%d digits", old-new)
}

// diffCodes compares calling codes as sets. Order only matters for
// trunk-prefix detection, so a reorder is reported as a scalar change.
func diffCodes(r *DiffResult, oldCodes, newCodes []string) {
	oldSet := make(map[string]bool)
	for _, c := range oldCodes {
		oldSet[c] = true
	}
	newSet := make(map[string]bool)
	for _, c := range newCodes {
		newSet[c] = true
	}

	for _, c := range newCodes {
		if !oldSet[c] {
			r.CodeChanges = append(r.CodeChanges, CodeChange{Type: "added", Code: c})
		}
	}
	for _, c := range oldCodes {
		if !newSet[c] {
			r.CodeChanges = append(r.CodeChanges, CodeChange{Type: "removed", Code: c})
		}
	}

	if len(r.CodeChanges) == 0 && len(oldCodes) > 0 && len(newCodes) > 0 && oldCodes[0] != newCodes[0] {
		r.Changes = append(r.Changes, Change{
			Field:   "country.auto_detect_country_local_calling_codes",
			Old:     oldCodes[0],
			New:     newCodes[0],
			Comment: "first code reordered",
		})
	}
}
