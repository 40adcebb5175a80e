// Package pricefeed orchestrates the configured price providers into a
// single fetch with sequential fallback.
package pricefeed

import (
	"context"

	"go.uber.org/zap"

	"metaldash/internal/provider"
)

// MockProviderName marks a Result produced without any live provider.
const MockProviderName = "mock"

// Result is the outcome of one acquisition pass.
type Result struct {
	Quotes    provider.QuoteSet `json:"quotes"`
	Provider  string            `json:"provider"`
	Synthetic bool              `json:"isSyntheticFallback"`
}

// DefaultOrder is the fallback chain when no preference is configured.
var DefaultOrder = []string{"fmp", "yahoo", "yahoo-direct"}

// Chain orders the configured providers: the preferred one first, then the
// default order with the preferred entry deduplicated. With fallback disabled
// the chain is just the preferred provider. An unknown preferred key falls
// back to the head of the default order.
func Chain(preferred string, enableFallback bool, byKey map[string]provider.PriceProvider, order []string, log *zap.Logger) []provider.PriceProvider {
	if log == nil {
		log = zap.NewNop()
	}
	if len(order) == 0 {
		order = DefaultOrder
	}
	if _, ok := byKey[preferred]; !ok {
		if preferred != "" {
			log.Warn("unknown preferred provider, using default", zap.String("preferred", preferred))
		}
		preferred = ""
		for _, key := range order {
			if _, ok := byKey[key]; ok {
				preferred = key
				break
			}
		}
	}

	var chain []provider.PriceProvider
	if p, ok := byKey[preferred]; ok {
		chain = append(chain, p)
	}
	if !enableFallback {
		return chain
	}
	for _, key := range order {
		if key == preferred {
			continue
		}
		if p, ok := byKey[key]; ok {
			chain = append(chain, p)
		}
	}
	return chain
}

// Service walks a provider chain until one returns quotes.
type Service struct {
	chain []provider.PriceProvider
	log   *zap.Logger
}

func NewService(chain []provider.PriceProvider, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{chain: chain, log: log}
}

// Fetch tries each provider in order and returns the first non-empty quote
// set. When the whole chain is exhausted it returns an empty synthetic
// result; it never returns an error to the caller.
func (s *Service) Fetch(ctx context.Context, metalIDs []string) Result {
	for _, p := range s.chain {
		if !p.Available(ctx) {
			s.log.Warn("provider unavailable, trying next", zap.String("provider", p.Name()))
			continue
		}
		quotes, err := p.Fetch(ctx, metalIDs)
		if err != nil {
			s.log.Error("provider fetch failed, trying next", zap.String("provider", p.Name()), zap.Error(err))
			continue
		}
		if len(quotes) == 0 {
			s.log.Warn("provider returned no quotes, trying next", zap.String("provider", p.Name()))
			continue
		}
		s.log.Info("quotes fetched",
			zap.String("provider", p.Name()),
			zap.Int("requested", len(metalIDs)),
			zap.Int("received", len(quotes)))
		return Result{Quotes: quotes, Provider: p.Name()}
	}
	s.log.Warn("all providers exhausted, serving synthetic data")
	return Result{Quotes: provider.QuoteSet{}, Provider: MockProviderName, Synthetic: true}
}
