package main

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"metaldash/internal/assemble"
	"metaldash/internal/history"
	"metaldash/internal/pricefeed"
	"metaldash/internal/provider"
	"metaldash/internal/refdata"
)

type metalsFeed interface {
	Fetch(ctx context.Context, metalIDs []string) pricefeed.Result
}

type app struct {
	feed      metalsFeed
	history   *history.Service
	histCache *gocache.Cache
	log       *zap.Logger
}

// handleMetals serves the merged, ranked record array. The winning provider
// and the synthetic-fallback flag travel as headers so the body stays a bare
// array.
func (a *app) handleMetals(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	res := a.feed.Fetch(r.Context(), refdata.IDs())
	records := assemble.Merge(refdata.All(), res, now, rand.New(rand.NewSource(now.UnixNano())))

	w.Header().Set("X-Price-Provider", res.Provider)
	if res.Synthetic {
		w.Header().Set("X-Synthetic-Data", "true")
	}
	writeJSON(w, http.StatusOK, records)
}

type historyEntry struct {
	points    []provider.HistoryPoint
	synthetic bool
}

func (a *app) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tf := history.ParseTimeframe(r.URL.Query().Get("timeframe"))

	key := id + ":" + string(tf)
	if cached, ok := a.histCache.Get(key); ok {
		entry := cached.(historyEntry)
		writeHistory(w, entry)
		return
	}

	points, synthetic, err := a.history.Series(r.Context(), id, tf)
	if err != nil {
		if errors.Is(err, history.ErrUnknownMetal) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Metal not found"})
			return
		}
		a.log.Error("history", zap.String("metal", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	entry := historyEntry{points: points, synthetic: synthetic}
	a.histCache.SetDefault(key, entry)
	writeHistory(w, entry)
}

func writeHistory(w http.ResponseWriter, entry historyEntry) {
	if entry.synthetic {
		w.Header().Set("X-Synthetic-Data", "true")
	}
	writeJSON(w, http.StatusOK, entry.points)
}

func (a *app) handleNews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, refdata.News())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
