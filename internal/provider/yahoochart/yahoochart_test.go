package yahoochart_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"metaldash/internal/httpx"
	"metaldash/internal/provider/yahoochart"
	"metaldash/internal/units"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *yahoochart.Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return yahoochart.New(yahoochart.Config{BaseURL: srv.URL, MaxConcurrency: 2}, httpx.New(5*time.Second), nil)
}

func chartBody(symbol string, price, prevClose float64, timestamps []int64, closes []any) map[string]any {
	return map[string]any{
		"chart": map[string]any{
			"result": []map[string]any{{
				"meta":       map[string]any{"symbol": symbol, "regularMarketPrice": price, "previousClose": prevClose, "currency": "USD"},
				"timestamp":  timestamps,
				"indicators": map[string]any{"quote": []map[string]any{{"close": closes}}},
			}},
			"error": nil,
		},
	}
}

func TestFetch_OneRequestPerSymbol(t *testing.T) {
	t.Parallel()

	prices := map[string]float64{"GC=F": 2063.45, "SI=F": 24.18}
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimPrefix(r.URL.Path, "/")
		price, ok := prices[symbol]
		require.Truef(t, ok, "unexpected symbol %q", symbol)
		json.NewEncoder(w).Encode(chartBody(symbol, price, price*0.99, nil, nil))
	})

	quotes, err := p.Fetch(t.Context(), []string{"gold", "silver"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	gold := quotes["gold"]
	require.Equal(t, 2063.45, gold.Price)
	require.Equal(t, units.TroyOunce, gold.Unit)
	require.InDelta(t, 2063.45*0.01, gold.Change, 1e-6)
}

func TestFetch_PartialFailureDropsSymbol(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "SI=F") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(chartBody("GC=F", 2063.45, 2038.35, nil, nil))
	})

	quotes, err := p.Fetch(t.Context(), []string{"gold", "silver"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.Contains(t, quotes, "gold")
}

func TestFetch_AllFailed(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := p.Fetch(t.Context(), []string{"gold", "silver"})
	require.Error(t, err)
}

func TestSeries_ZipsTimestampsWithCloses(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	timestamps := []int64{base.Unix(), base.Add(time.Hour).Unix(), base.Add(2 * time.Hour).Unix()}
	var gotQuery string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		// nil close marks an upstream gap
		json.NewEncoder(w).Encode(chartBody("GC=F", 2063.45, 2038.35, timestamps, []any{2040.0, nil, 2063.45}))
	})

	points, err := p.Series(t.Context(), "gold", base, base.Add(2*time.Hour), "1h")
	require.NoError(t, err)
	require.Contains(t, gotQuery, "interval=1h")
	require.Len(t, points, 2)
	require.Equal(t, base, points[0].Date)
	require.Equal(t, 2040.0, points[0].Price)
	require.Equal(t, 2063.45, points[1].Price)
}

func TestSeries_UnknownMetal(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for unmapped metal")
	})

	_, err := p.Series(t.Context(), "unobtainium", time.Now().Add(-time.Hour), time.Now(), "1h")
	require.Error(t, err)
}
