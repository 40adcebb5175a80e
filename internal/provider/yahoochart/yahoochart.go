// Package yahoochart fetches per-symbol quotes and historical series from the
// Yahoo Finance v8 chart endpoint. The chart API carries no batch form, so
// latest-quote fetches fan out one request per symbol.
package yahoochart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"metaldash/internal/httpx"
	"metaldash/internal/provider"
	"metaldash/internal/registry"
)

const (
	defaultBaseURL        = "https://query1.finance.yahoo.com/v8/finance/chart"
	defaultMaxConcurrency = 4
)

// Config holds the provider settings.
type Config struct {
	Name           string
	BaseURL        string
	MaxConcurrency int
}

// Provider fetches quotes and series via the chart API.
type Provider struct {
	name    string
	baseURL string
	maxConc int
	client  *httpx.Client
	log     *zap.Logger
}

func New(cfg Config, client *httpx.Client, log *zap.Logger) *Provider {
	if cfg.Name == "" {
		cfg.Name = "Yahoo Finance Direct"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = defaultMaxConcurrency
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{name: cfg.Name, baseURL: cfg.BaseURL, maxConc: cfg.MaxConcurrency, client: client, log: log}
}

func (p *Provider) Name() string { return p.name }

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				Currency           string  `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// Available probes the endpoint with a single well-known ticker.
func (p *Provider) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	body, err := p.chart(ctx, "GC=F", "range=1d&interval=1d")
	if err != nil {
		p.log.Debug("yahoo chart availability probe failed", zap.Error(err))
		return false
	}
	return len(body.Chart.Result) > 0 && body.Chart.Result[0].Meta.RegularMarketPrice > 0
}

// Fetch retrieves latest quotes one symbol at a time with bounded
// concurrency. Per-symbol failures drop the symbol; the fetch errors only
// when every symbol failed.
func (p *Provider) Fetch(ctx context.Context, metalIDs []string) (provider.QuoteSet, error) {
	quotes := provider.QuoteSet{}
	var (
		mu       sync.Mutex
		firstErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConc)
	for _, id := range metalIDs {
		symbol, ok := registry.YahooSymbol(id)
		if !ok {
			continue
		}
		g.Go(func() error {
			q, err := p.fetchOne(gctx, symbol)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.log.Warn("yahoo chart symbol failed", zap.String("symbol", symbol), zap.Error(err))
				if firstErr == nil {
					firstErr = err
				}
				return nil
			}
			if q.Valid() {
				quotes[id] = q
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(quotes) == 0 && firstErr != nil {
		return nil, fmt.Errorf("yahoo chart: %w", firstErr)
	}
	return quotes, nil
}

func (p *Provider) fetchOne(ctx context.Context, symbol string) (provider.Quote, error) {
	body, err := p.chart(ctx, symbol, "range=1d&interval=1d")
	if err != nil {
		return provider.Quote{}, err
	}
	if len(body.Chart.Result) == 0 {
		return provider.Quote{}, fmt.Errorf("empty chart result for %s", symbol)
	}
	meta := body.Chart.Result[0].Meta

	prevClose := meta.PreviousClose
	if prevClose == 0 {
		prevClose = meta.ChartPreviousClose
	}
	change, changePct := 0.0, 0.0
	if prevClose > 0 {
		change = meta.RegularMarketPrice - prevClose
		changePct = change / prevClose * 100
	}
	id, _ := registry.MetalIDForYahooSymbol(symbol)
	return provider.Quote{
		Symbol:        symbol,
		Price:         meta.RegularMarketPrice,
		Unit:          registry.YahooUnit(id),
		Change:        change,
		ChangePercent: changePct,
		PreviousClose: prevClose,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// Series fetches the closing-price series for one metal between start and end
// at the given interval ("5m", "1h", "1d"). Gaps in the upstream close array
// are skipped.
func (p *Provider) Series(ctx context.Context, metalID string, start, end time.Time, interval string) ([]provider.HistoryPoint, error) {
	symbol, ok := registry.YahooSymbol(metalID)
	if !ok {
		return nil, fmt.Errorf("no chart symbol for metal %q", metalID)
	}

	params := fmt.Sprintf("period1=%d&period2=%d&interval=%s", start.Unix(), end.Unix(), interval)
	body, err := p.chart(ctx, symbol, params)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart series: %w", err)
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", symbol)
	}
	result := body.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote indicators for %s", symbol)
	}

	closes := result.Indicators.Quote[0].Close
	points := make([]provider.HistoryPoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		points = append(points, provider.HistoryPoint{
			Date:  time.Unix(ts, 0).UTC(),
			Price: *closes[i],
		})
	}
	return points, nil
}

func (p *Provider) chart(ctx context.Context, symbol, params string) (*chartResponse, error) {
	u := fmt.Sprintf("%s/%s?%s", p.baseURL, symbol, params)
	var body chartResponse
	if err := p.client.GetJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("upstream error: %v", body.Chart.Error)
	}
	return &body, nil
}
