package provider

import (
	"context"
	"time"

	"metaldash/internal/units"
)

// Quote is the normalized shape returned by all providers.
type Quote struct {
	Symbol        string     `json:"symbol"`
	Price         float64    `json:"price"`
	Unit          units.Unit `json:"priceUnit"`
	Change        float64    `json:"change"`
	ChangePercent float64    `json:"changePercent"`
	PreviousClose float64    `json:"previousClose"`
	Timestamp     time.Time  `json:"timestamp,omitzero"`
}

// Valid reports whether the quote satisfies the positive-price invariant.
// Adapters drop invalid quotes instead of propagating them.
func (q Quote) Valid() bool {
	return q.Price > 0 && q.PreviousClose > 0
}

// QuoteSet maps metal IDs to their normalized quote. A set is produced by
// exactly one provider, built fresh per fetch, and never mutated afterwards.
type QuoteSet map[string]Quote

// HistoryPoint is one historical closing-price observation.
type HistoryPoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PriceProvider is the capability contract every upstream adapter implements.
type PriceProvider interface {
	Name() string

	// Available performs one cheap canary request under a bounded timeout and
	// reports whether the upstream is reachable and returning sane data. It
	// never returns an error; any failure is simply false.
	Available(ctx context.Context) bool

	// Fetch resolves the requested metal IDs to this provider's symbols
	// (silently skipping unmapped IDs), fetches and normalizes quotes, and
	// drops any symbol whose response is missing or malformed. It returns an
	// error only on total upstream failure.
	Fetch(ctx context.Context, metalIDs []string) (QuoteSet, error)
}
