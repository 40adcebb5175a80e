// Package fmpadapter exposes the Financial Modeling Prep commodity quotes
// through the provider.PriceProvider interface.
package fmpadapter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"metaldash/internal/provider"
	"metaldash/internal/provider/fmp"
	"metaldash/internal/registry"
)

// Config holds the adapter settings.
type Config struct {
	Name   string
	APIKey string
}

// Adapter fetches metal quotes from Financial Modeling Prep.
type Adapter struct {
	name   string
	apiKey string
	client *fmp.Client
	log    *zap.Logger
}

func New(cfg Config, client *fmp.Client, log *zap.Logger) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Financial Modeling Prep"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{name: cfg.Name, apiKey: cfg.APIKey, client: client, log: log}
}

func (a *Adapter) Name() string { return a.name }

// Available reports whether the upstream can serve quotes. Without an API key
// the answer is always false; with one we probe a single well-known symbol.
func (a *Adapter) Available(ctx context.Context) bool {
	if a.apiKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := a.client.GetQuotes(ctx, []string{"GCUSD"})
	if err != nil {
		a.log.Debug("fmp availability probe failed", zap.Error(err))
		return false
	}
	return len(rows) > 0 && rows[0].Price > 0
}

func (a *Adapter) Fetch(ctx context.Context, metalIDs []string) (provider.QuoteSet, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("fmp: no api key configured")
	}

	symbols := registry.FMPSymbols(metalIDs)
	if len(symbols) == 0 {
		return provider.QuoteSet{}, nil
	}

	rows, err := a.client.GetQuotes(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("fmp: %w", err)
	}

	quotes := provider.QuoteSet{}
	for _, row := range rows {
		id, ok := registry.MetalIDForFMPSymbol(row.Symbol)
		if !ok {
			a.log.Warn("fmp returned unmapped symbol", zap.String("symbol", row.Symbol))
			continue
		}
		q := provider.Quote{
			Symbol:        row.Symbol,
			Price:         row.Price,
			Unit:          registry.HeuristicUnit(id),
			Change:        row.Change,
			ChangePercent: row.ChangesPercentage,
			PreviousClose: row.PreviousClose,
		}
		if row.Timestamp > 0 {
			q.Timestamp = time.Unix(row.Timestamp, 0).UTC()
		}
		if !q.Valid() {
			a.log.Warn("fmp quote dropped", zap.String("metal", id), zap.Float64("price", q.Price))
			continue
		}
		quotes[id] = q
	}
	return quotes, nil
}
