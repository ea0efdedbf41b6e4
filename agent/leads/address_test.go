package leads

import (
	"testing"

	placesx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/pkg/places"
)

func TestSplitCityState(t *testing.T) {
	t.Parallel()

	city, state := SplitCityState([]placesx.AddressComponent{
		{Types: []string{"administrative_area_level_1"}, ShortText: "MA", LongText: "Massachusetts"},
		{Types: []string{"locality"}, LongText: "Boston"},
	})
	if city != "Boston" || state != "MA" {
		t.Fatalf("unexpected split: %q, %q", city, state)
	}
}

func TestSplitCityStateEmptyComponents(t *testing.T) {
	t.Parallel()

	city, state := SplitCityState(nil)
	if city != "" || state != "" {
		t.Fatalf("expected empty city and state, got %q, %q", city, state)
	}
}

func TestSplitCityStateFirstMatchWins(t *testing.T) {
	t.Parallel()

	city, state := SplitCityState([]placesx.AddressComponent{
		{Types: []string{"locality"}, LongText: "Cambridge"},
		{Types: []string{"locality"}, LongText: "Boston"},
		{Types: []string{"administrative_area_level_1"}, ShortText: "MA"},
		{Types: []string{"administrative_area_level_1"}, ShortText: "NH"},
	})
	if city != "Cambridge" || state != "MA" {
		t.Fatalf("unexpected split: %q, %q", city, state)
	}
}

func TestSplitCityStatePostalTownAndLongFallback(t *testing.T) {
	t.Parallel()

	city, state := SplitCityState([]placesx.AddressComponent{
		{Types: []string{"postal_town"}, ShortText: "London"},
		{Types: []string{"administrative_area_level_1"}, LongText: "England"},
	})
	if city != "London" || state != "England" {
		t.Fatalf("unexpected split: %q, %q", city, state)
	}
}

func TestNormalizeCityState(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in        string
		wantCity  string
		wantState string
	}{
		{"Boston, MA", "boston", "ma"},
		{"Boston MA", "boston", "ma"},
		{"New York, NY", "new york", "ny"},
		{"Boston", "boston", ""},
	}
	for _, tc := range cases {
		city, state := NormalizeCityState(tc.in)
		if city != tc.wantCity || state != tc.wantState {
			t.Fatalf("NormalizeCityState(%q) = %q, %q; want %q, %q",
				tc.in, city, state, tc.wantCity, tc.wantState)
		}
	}
}
