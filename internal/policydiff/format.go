package policydiff

import (
	"encoding/json"
	"fmt"
	"strings"
)

// sections in display order.
var sections = []struct {
	prefix string
	title  string
}{
	{"input.", "Input"},
	{"formatting.", "Formatting"},
	{"country.", "Country"},
	{"ui.", "UI"},
}

// FormatText renders the diff result as human-readable text.
func FormatText(r *DiffResult) string {
	if !r.HasChanges {
		return fmt.Sprintf("Policy diff: %s → %s\n\nNo changes detected.\n", r.OldPath, r.NewPath)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Policy diff: %s → %s\n", r.OldPath, r.NewPath)

	for _, sec := range sections {
		changes := filterChanges(r.Changes, sec.prefix)
		codes := sec.prefix == "country." && len(r.CodeChanges) > 0
		if len(changes) == 0 && !codes {
			continue
		}

		fmt.Fprintf(&b, "\n  %s:\n", sec.title)
		for _, c := range changes {
			name := strings.TrimPrefix(c.Field, sec.prefix)
			fmt.Fprintf(&b, "    %-40s %s → %s", name+":", c.Old, c.New)
			if c.Comment != "" {
				fmt.Fprintf(&b, "  (%s)", c.Comment)
			}
			b.WriteString("\n")
		}
		if codes {
			b.WriteString("    local calling codes:\n")
			for _, cc := range r.CodeChanges {
				switch cc.Type {
				case "added":
					fmt.Fprintf(&b, "      + %s\n", cc.Code)
				case "removed":
					fmt.Fprintf(&b, "      - %s\n", cc.Code)
				}
			}
		}
	}

	return b.String()
}

// FormatJSON renders the diff result as JSON.
func FormatJSON(r *DiffResult) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal diff result: %w", err)
	}
	return string(data), nil
}

func filterChanges(changes []Change, prefix string) []Change {
	var out []Change
	for _, c := range changes {
		if strings.HasPrefix(c.Field, prefix) {
			out = append(out, c)
		}
	}
	return out
}
