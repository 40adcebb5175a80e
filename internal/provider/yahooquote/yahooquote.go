// Package yahooquote fetches batched metal quotes from the Yahoo Finance v7
// quote endpoint.
package yahooquote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"metaldash/internal/httpx"
	"metaldash/internal/provider"
	"metaldash/internal/registry"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v7/finance/quote"

// Config holds the provider settings.
type Config struct {
	Name    string
	BaseURL string
}

// Provider fetches quotes via the batch quote API.
type Provider struct {
	name    string
	baseURL string
	client  *httpx.Client
	log     *zap.Logger
}

func New(cfg Config, client *httpx.Client, log *zap.Logger) *Provider {
	if cfg.Name == "" {
		cfg.Name = "Yahoo Finance"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{name: cfg.Name, baseURL: cfg.BaseURL, client: client, log: log}
}

func (p *Provider) Name() string { return p.name }

type apiResponse struct {
	QuoteResponse struct {
		Result []quoteRow `json:"result"`
		Error  any        `json:"error"`
	} `json:"quoteResponse"`
}

type quoteRow struct {
	Symbol                     string  `json:"symbol"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
	RegularMarketTime          int64   `json:"regularMarketTime"`
}

// Available probes the endpoint with a single well-known ticker.
func (p *Provider) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := p.query(ctx, []string{"GC=F"})
	if err != nil {
		p.log.Debug("yahoo availability probe failed", zap.Error(err))
		return false
	}
	return len(rows) > 0 && rows[0].RegularMarketPrice > 0
}

func (p *Provider) Fetch(ctx context.Context, metalIDs []string) (provider.QuoteSet, error) {
	symbols := registry.YahooSymbols(metalIDs)
	if len(symbols) == 0 {
		return provider.QuoteSet{}, nil
	}

	rows, err := p.query(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote: %w", err)
	}

	quotes := provider.QuoteSet{}
	for _, row := range rows {
		id, ok := registry.MetalIDForYahooSymbol(row.Symbol)
		if !ok {
			p.log.Warn("yahoo returned unmapped symbol", zap.String("symbol", row.Symbol))
			continue
		}
		change, changePct := row.RegularMarketChange, row.RegularMarketChangePercent
		if change == 0 && changePct == 0 && row.RegularMarketPreviousClose > 0 {
			change = row.RegularMarketPrice - row.RegularMarketPreviousClose
			changePct = change / row.RegularMarketPreviousClose * 100
		}
		q := provider.Quote{
			Symbol:        row.Symbol,
			Price:         row.RegularMarketPrice,
			Unit:          registry.YahooUnit(id),
			Change:        change,
			ChangePercent: changePct,
			PreviousClose: row.RegularMarketPreviousClose,
		}
		if row.RegularMarketTime > 0 {
			q.Timestamp = time.Unix(row.RegularMarketTime, 0).UTC()
		}
		if !q.Valid() {
			p.log.Warn("yahoo quote dropped", zap.String("metal", id), zap.Float64("price", q.Price))
			continue
		}
		quotes[id] = q
	}
	return quotes, nil
}

func (p *Provider) query(ctx context.Context, symbols []string) ([]quoteRow, error) {
	u := fmt.Sprintf("%s?symbols=%s", p.baseURL, url.QueryEscape(strings.Join(symbols, ",")))
	var body apiResponse
	if err := p.client.GetJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("upstream error: %v", body.QuoteResponse.Error)
	}
	return body.QuoteResponse.Result, nil
}
