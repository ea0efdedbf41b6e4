package contract

import "context"

// Collector assembles one Company per place candidate for a city/state
// query, preserving candidate order.
type Collector interface {
	Collect(ctx context.Context, cityState string) ([]Company, error)
}
