// Command fetch performs one acquisition pass and prints the assembled
// dashboard records as JSON. Useful for smoke-testing provider credentials.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"metaldash/internal/assemble"
	"metaldash/internal/config"
	"metaldash/internal/httpx"
	"metaldash/internal/pricefeed"
	"metaldash/internal/provider"
	"metaldash/internal/provider/fmp"
	"metaldash/internal/provider/fmpadapter"
	"metaldash/internal/provider/yahoochart"
	"metaldash/internal/provider/yahooquote"
	"metaldash/internal/refdata"
)

func main() {
	var metalsCSV string
	var preferred string
	var timeout int
	var configPath string

	flag.StringVar(&metalsCSV, "metals", getenv("METALS", ""), "comma-separated metal IDs (default: all)")
	flag.StringVar(&preferred, "provider", getenv("METAL_PRICE_PROVIDER", ""), "preferred provider key (fmp, yahoo, yahoo-direct)")
	flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 15), "request timeout seconds")
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
	flag.Parse()

	_ = godotenv.Load()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}
	if preferred != "" {
		cfg.Feed.Preferred = preferred
	}
	if timeout != 0 {
		cfg.Server.RequestTimeoutSec = timeout
	}

	metalIDs := refdata.IDs()
	if metalsCSV != "" {
		metalIDs = splitCSV(metalsCSV)
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

	byKey := map[string]provider.PriceProvider{}
	if cfg.FMP.Enabled {
		client := fmp.NewClient(cfg.FMP.APIKey,
			fmp.WithBaseURL(cfg.FMP.BaseURL),
			fmp.WithHTTPClient(httpClient.HTTP),
			fmp.WithHeader(http.Header{"User-Agent": []string{httpClient.UserAgent}}),
		)
		byKey["fmp"] = fmpadapter.New(fmpadapter.Config{APIKey: cfg.FMP.APIKey}, client, log)
	}
	if cfg.YahooQuote.Enabled {
		byKey["yahoo"] = yahooquote.New(yahooquote.Config{BaseURL: cfg.YahooQuote.BaseURL}, httpClient, log)
	}
	if cfg.YahooChart.Enabled {
		byKey["yahoo-direct"] = yahoochart.New(yahoochart.Config{
			BaseURL:        cfg.YahooChart.BaseURL,
			MaxConcurrency: cfg.YahooChart.MaxConcurrency,
		}, httpClient, log)
	}

	chain := pricefeed.Chain(cfg.Feed.Preferred, cfg.Feed.EnableFallback, byKey, pricefeed.DefaultOrder, log)
	svc := pricefeed.NewService(chain, log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
	defer cancel()

	now := time.Now().UTC()
	res := svc.Fetch(ctx, metalIDs)
	records := assemble.Merge(selectMetals(metalIDs), res, now, rand.New(rand.NewSource(now.UnixNano())))

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]any{
		"provider":            res.Provider,
		"isSyntheticFallback": res.Synthetic,
		"metals":              records,
	})
}

func selectMetals(metalIDs []string) []refdata.Metal {
	out := make([]refdata.Metal, 0, len(metalIDs))
	for _, id := range metalIDs {
		if m, ok := refdata.ByID(id); ok {
			out = append(out, m)
		}
	}
	return out
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			return x
		}
	}
	return def
}
