package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"metaldash/internal/assemble"
	"metaldash/internal/history"
	"metaldash/internal/pricefeed"
	"metaldash/internal/provider"
)

type stubFeed struct {
	res pricefeed.Result
}

func (s *stubFeed) Fetch(context.Context, []string) pricefeed.Result { return s.res }

type failingSource struct{}

func (failingSource) Series(context.Context, string, time.Time, time.Time, string) ([]provider.HistoryPoint, error) {
	return nil, errors.New("upstream down")
}

func newTestApp(res pricefeed.Result) *app {
	return &app{
		feed:      &stubFeed{res: res},
		history:   history.NewService(failingSource{}, nil),
		histCache: gocache.New(time.Minute, time.Minute),
		log:       zap.NewNop(),
	}
}

func TestHandleMetals_LiveQuote(t *testing.T) {
	a := newTestApp(pricefeed.Result{
		Quotes: provider.QuoteSet{
			"gold": {Symbol: "GC=F", Price: 2063.45, Unit: "oz", PreviousClose: 2038.35, ChangePercent: 1.23},
		},
		Provider: "Yahoo Finance",
	})

	rec := httptest.NewRecorder()
	a.handleMetals(rec, httptest.NewRequest(http.MethodGet, "/metals", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Yahoo Finance", rec.Header().Get("X-Price-Provider"))
	require.Empty(t, rec.Header().Get("X-Synthetic-Data"))

	var body []assemble.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 12)

	var sawGold bool
	for i, m := range body {
		require.Equal(t, i+1, m.Rank)
		if m.ID == "gold" {
			sawGold = true
			require.False(t, m.IsMockData)
			require.Equal(t, 2063.45, m.Price)
		} else {
			require.True(t, m.IsMockData)
		}
	}
	require.True(t, sawGold)
}

func TestHandleMetals_SyntheticFallback(t *testing.T) {
	a := newTestApp(pricefeed.Result{
		Quotes:    provider.QuoteSet{},
		Provider:  pricefeed.MockProviderName,
		Synthetic: true,
	})

	rec := httptest.NewRecorder()
	a.handleMetals(rec, httptest.NewRequest(http.MethodGet, "/metals", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "mock", rec.Header().Get("X-Price-Provider"))
	require.Equal(t, "true", rec.Header().Get("X-Synthetic-Data"))

	var body []assemble.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, m := range body {
		require.True(t, m.IsMockData)
	}
}

func newHistoryRequest(id, timeframe string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/metals/"+id+"/history?timeframe="+timeframe, nil)
	req.SetPathValue("id", id)
	return req
}

func TestHandleHistory_SyntheticSeries(t *testing.T) {
	a := newTestApp(pricefeed.Result{})

	rec := httptest.NewRecorder()
	a.handleHistory(rec, newHistoryRequest("gold", "1D"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "true", rec.Header().Get("X-Synthetic-Data"))

	var body []provider.HistoryPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 24)
	for i, p := range body {
		require.Positive(t, p.Price)
		if i > 0 {
			require.True(t, p.Date.After(body[i-1].Date))
		}
	}
}

func TestHandleHistory_CachesResponse(t *testing.T) {
	a := newTestApp(pricefeed.Result{})

	rec := httptest.NewRecorder()
	a.handleHistory(rec, newHistoryRequest("gold", "7D"))
	require.Equal(t, http.StatusOK, rec.Code)

	var first []provider.HistoryPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = httptest.NewRecorder()
	a.handleHistory(rec, newHistoryRequest("gold", "7D"))
	var second []provider.HistoryPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	// the synthetic series is random per miss; identical output means a hit
	require.Equal(t, first, second)
}

func TestHandleHistory_UnknownMetal(t *testing.T) {
	a := newTestApp(pricefeed.Result{})

	rec := httptest.NewRecorder()
	a.handleHistory(rec, newHistoryRequest("unobtainium", "7D"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Metal not found"}`, rec.Body.String())
}

func TestHandleNews(t *testing.T) {
	a := newTestApp(pricefeed.Result{})

	rec := httptest.NewRecorder()
	a.handleNews(rec, httptest.NewRequest(http.MethodGet, "/news", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body)
	require.NotEmpty(t, body[0].Title)
}
