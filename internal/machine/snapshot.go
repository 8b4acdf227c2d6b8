package machine

import (
	"strings"
	"unicode"
)

// Derive computes the snapshot for raw input under cfg. It is pure and
// idempotent: the same (raw, cfg) always yields the same snapshot.
//
// Digits are the ASCII digits of raw, truncated to max(1, cfg.MaxDigits).
// The normalized input is the digits, prefixed with "+" when plus usage
// applies; with no digits it is "+" or "".
func Derive(raw string, cfg Config) Snapshot {
	digits := extractDigits(raw, max(1, cfg.MaxDigits))

	normalized := digits
	if usesPlus(raw, cfg) {
		normalized = "+" + digits
	}

	return Snapshot{
		RawInput:        raw,
		NormalizedInput: normalized,
		Digits:          digits,
	}
}

// extractDigits keeps at most limit ASCII digits, in order.
func extractDigits(raw string, limit int) string {
	var b strings.Builder
	for i := 0; i < len(raw) && b.Len() < limit; i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// usesPlus is true when the config forces a plus or the raw input, ignoring
// leading whitespace, starts with one.
func usesPlus(raw string, cfg Config) bool {
	if cfg.Plus {
		return true
	}
	return strings.HasPrefix(strings.TrimLeftFunc(raw, unicode.IsSpace), "+")
}
