// Package country detects the country of a number being typed from its
// leading digits. It maps calling codes to regions and nothing more: numbers
// are not validated against numbering plans.
package country

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"

	"github.com/ppiankov/phoneinput/internal/machine"
	"github.com/ppiankov/phoneinput/internal/policy"
)

// unknownRegion is what phonenumbers returns for an unassigned calling code.
const unknownRegion = "ZZ"

// maxCallingCodeLen is the longest ITU calling code.
const maxCallingCodeLen = 3

// Source tells which rule matched.
type Source string

const (
	// SourceTrunkPrefix: a national number dialed with the local trunk prefix.
	SourceTrunkPrefix Source = "trunk_prefix"
	// SourceCallingCode: the leading digits are an international calling code.
	SourceCallingCode Source = "calling_code"
)

// Result is a detected country.
type Result struct {
	Region      string `json:"region"`
	CallingCode string `json:"callingCode"`
	Source      Source `json:"source"`
}

// Detect returns the country implied by the snapshot under the country
// policy. It reports false when detection is disabled, when there are no
// digits, or when no rule matches.
func Detect(snap machine.Snapshot, cp policy.CountryPolicy) (Result, bool) {
	if !cp.AutoDetectCountryFromPrefix || snap.Digits == "" {
		return Result{}, false
	}

	international := strings.HasPrefix(strings.TrimLeftFunc(snap.RawInput, unicode.IsSpace), "+")
	trunk := cp.AutoDetectCountryLocalTrunkPrefix

	if !international && trunk != "" && strings.HasPrefix(snap.Digits, trunk) {
		for _, code := range cp.AutoDetectCountryLocalCallingCodes {
			code = strings.TrimSpace(code)
			if region, ok := RegionForCallingCode(code); ok {
				return Result{Region: region, CallingCode: code, Source: SourceTrunkPrefix}, true
			}
		}
		return Result{}, false
	}

	for n := 1; n <= maxCallingCodeLen && n <= len(snap.Digits); n++ {
		code := snap.Digits[:n]
		if region, ok := RegionForCallingCode(code); ok {
			return Result{Region: region, CallingCode: code, Source: SourceCallingCode}, true
		}
	}
	return Result{}, false
}

// RegionForCallingCode returns the main region for a calling code such as "7" or "44".
func RegionForCallingCode(code string) (string, bool) {
	n, err := strconv.Atoi(code)
	if err != nil || n <= 0 {
		return "", false
	}
	region := phonenumbers.GetRegionCodeForCountryCode(n)
	if region == "" || region == unknownRegion {
		return "", false
	}
	return region, true
}

// CallingCodeForRegion returns the calling code of a region such as "RU", or "" if unknown.
func CallingCodeForRegion(region string) string {
	n := phonenumbers.GetCountryCodeForRegion(strings.ToUpper(region))
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
