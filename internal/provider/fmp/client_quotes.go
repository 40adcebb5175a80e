package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"strings"
)

// QuoteRow is one row of the FMP batch quote response.
type QuoteRow struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	ChangesPercentage float64 `json:"changesPercentage"`
	Change            float64 `json:"change"`
	PreviousClose     float64 `json:"previousClose"`
	Timestamp         int64   `json:"timestamp"`
}

// GetQuotes retrieves quotes for the given symbols in a single comma-joined
// batch request. Symbols unknown to the upstream are simply absent from the
// response; callers must not assume positional correspondence.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]QuoteRow, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	query := maps.Clone(c.query)
	url := fmt.Sprintf("%s/quote/%s?%s", c.baseURL, strings.Join(symbols, ","), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("unauthorized")

	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited")

	default:
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	var rows []QuoteRow
	if err := json.NewDecoder(res.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding quote response: %w", err)
	}
	return rows, nil
}
