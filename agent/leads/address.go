package leads

import (
	"regexp"
	"strings"

	placesx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/pkg/places"
)

var cityStateSplitPattern = regexp.MustCompile(`[,\s]+`)

// SplitCityState extracts city and state from a place's address components.
// First match wins per category; unmatched categories stay "". This is a
// best-effort heuristic over whatever tags the upstream returns.
func SplitCityState(components []placesx.AddressComponent) (string, string) {
	city, state := "", ""
	for _, c := range components {
		if city == "" && hasAnyType(c.Types, "locality", "postal_town") {
			city = firstNonEmpty(c.LongText, c.ShortText)
		}
		if state == "" && hasAnyType(c.Types, "administrative_area_level_1") {
			// Prefer the abbreviated form ("MA" over "Massachusetts").
			state = firstNonEmpty(c.ShortText, c.LongText)
		}
	}
	return city, state
}

// NormalizeCityState splits a free-form "City, ST" (or "City ST") string
// into lowercase city and state tokens. Inputs without a recognizable state
// come back as (lowercased input, "").
func NormalizeCityState(s string) (string, string) {
	parts := cityStateSplitPattern.Split(strings.TrimSpace(s), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	if len(tokens) >= 2 {
		city := strings.Join(tokens[:len(tokens)-1], " ")
		state := tokens[len(tokens)-1]
		return strings.ToLower(city), strings.ToLower(state)
	}
	return strings.ToLower(strings.TrimSpace(s)), ""
}

func hasAnyType(types []string, wanted ...string) bool {
	for _, t := range types {
		for _, w := range wanted {
			if t == w {
				return true
			}
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
