package ratelimit

import (
	"context"
	"sync"
	"time"

	"metaldash/internal/provider"
)

// MinInterval wraps a provider and enforces a minimum time between Fetch
// calls. Concurrent calls wait until the interval has elapsed since the last
// call, or return early if the context is canceled. Available passes through
// ungated.
type MinInterval struct {
	P        provider.PriceProvider
	Interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

func (m *MinInterval) Name() string { return m.P.Name() }

func (m *MinInterval) Available(ctx context.Context) bool { return m.P.Available(ctx) }

func (m *MinInterval) Fetch(ctx context.Context, metalIDs []string) (provider.QuoteSet, error) {
	if m.Interval > 0 {
		// simple gate: ensure at least Interval since last
		m.mu.Lock()
		wait := time.Until(m.last.Add(m.Interval))
		m.mu.Unlock()
		if wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-t.C:
			}
		}
	}
	qs, err := m.P.Fetch(ctx, metalIDs)
	if m.Interval > 0 {
		m.mu.Lock()
		m.last = time.Now()
		m.mu.Unlock()
	}
	return qs, err
}
