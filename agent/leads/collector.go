package leads

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/agent/contract"
	placesx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/pkg/places"
)

// categoryQuery combines business-category synonyms; the location string is
// appended per call.
const categoryQuery = "pool company OR pool service OR pool contractor in "

const defaultDelay = 200 * time.Millisecond

// PlacesAPI is the slice of the places client the collector consumes.
type PlacesAPI interface {
	SearchCandidates(ctx context.Context, query string) ([]string, error)
	Details(ctx context.Context, placeID string) (placesx.Place, error)
}

// EmailFinder scrapes a homepage for a contact email; "" means not found.
type EmailFinder interface {
	FindEmail(ctx context.Context, rawURL string) string
}

// Collector runs the sequential lookup pipeline: candidate search, per-place
// detail fetch, address split, email scrape. One Company per candidate, in
// candidate order, with a fixed courtesy delay between places.
type Collector struct {
	places PlacesAPI
	emails EmailFinder
	delay  time.Duration
}

var _ contractx.Collector = (*Collector)(nil)

func NewCollector(places PlacesAPI, emails EmailFinder, delay time.Duration) *Collector {
	if delay <= 0 {
		delay = defaultDelay
	}
	return &Collector{
		places: places,
		emails: emails,
		delay:  delay,
	}
}

// Collect assembles one Company per candidate. A detail-fetch failure aborts
// the whole pass and propagates; records assembled so far are dropped.
func (c *Collector) Collect(ctx context.Context, cityState string) ([]contractx.Company, error) {
	ids, err := c.places.SearchCandidates(ctx, categoryQuery+cityState)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("city_state", cityState).Int("candidates", len(ids)).Msg("collecting companies")

	out := make([]contractx.Company, 0, len(ids))
	for i, id := range ids {
		place, err := c.places.Details(ctx, id)
		if err != nil {
			return nil, err
		}

		website := firstNonEmpty(place.WebsiteURI, place.GoogleMapsURI)
		city, state := SplitCityState(place.AddressComponents)

		out = append(out, contractx.Company{
			Company: place.DisplayName.Text,
			Address: place.FormattedAddress,
			City:    city,
			State:   state,
			Phone:   firstNonEmpty(place.NationalPhoneNumber, place.InternationalPhoneNumber),
			Email:   c.emails.FindEmail(ctx, website),
			Website: website,
		})

		if i < len(ids)-1 {
			if err := sleep(ctx, c.delay); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
