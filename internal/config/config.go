package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Feed struct {
	Preferred          string `json:"preferred"`
	EnableFallback     bool   `json:"enable_fallback"`
	CacheTTLSec        int    `json:"cache_ttl_sec"`
	HistoryCacheTTLSec int    `json:"history_cache_ttl_sec"`
}

type FMP struct {
	Enabled               bool   `json:"enabled"`
	APIKey                string `json:"api_key"`
	BaseURL               string `json:"base_url"`
	MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec"`
	Burst                 int    `json:"burst"`
}

type YahooQuote struct {
	Enabled               bool   `json:"enabled"`
	BaseURL               string `json:"base_url"`
	MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec"`
	Burst                 int    `json:"burst"`
}

type YahooChart struct {
	Enabled               bool   `json:"enabled"`
	BaseURL               string `json:"base_url"`
	MaxConcurrency        int    `json:"max_concurrency"`
	MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec"`
	Burst                 int    `json:"burst"`
}

type Config struct {
	Server     Server     `json:"server"`
	Feed       Feed       `json:"feed"`
	FMP        FMP        `json:"fmp"`
	YahooQuote YahooQuote `json:"yahoo_quote"`
	YahooChart YahooChart `json:"yahoo_chart"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 15},
		Feed: Feed{
			Preferred:          "fmp",
			EnableFallback:     true,
			CacheTTLSec:        60,
			HistoryCacheTTLSec: 300,
		},
		FMP: FMP{
			Enabled:              true,
			BaseURL:              "https://financialmodelingprep.com/api/v3",
			MaxRequestsPerMinute: 10,
			Burst:                2,
		},
		YahooQuote: YahooQuote{
			Enabled:              true,
			BaseURL:              "https://query1.finance.yahoo.com/v7/finance/quote",
			MaxRequestsPerMinute: 30,
			Burst:                5,
		},
		YahooChart: YahooChart{
			Enabled:              true,
			BaseURL:              "https://query1.finance.yahoo.com/v8/finance/chart",
			MaxConcurrency:       4,
			MaxRequestsPerMinute: 60,
			Burst:                10,
		},
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields for secrecy.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}

	if v := os.Getenv("METAL_PRICE_PROVIDER"); v != "" {
		cfg.Feed.Preferred = strings.ToLower(v)
	}
	// fallback stays on unless explicitly set to the string "false"
	if v := os.Getenv("ENABLE_API_FALLBACK"); v != "" {
		cfg.Feed.EnableFallback = v != "false"
	}
	if v := os.Getenv("PRICE_CACHE_DURATION"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Feed.CacheTTLSec = x
		}
	}
	if v := os.Getenv("HISTORY_CACHE_DURATION"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Feed.HistoryCacheTTLSec = x
		}
	}

	if v := os.Getenv("FMP_API_KEY"); v != "" {
		cfg.FMP.APIKey = v
	}
	if v := os.Getenv("FMP_BASE_URL"); v != "" {
		cfg.FMP.BaseURL = v
	}
	if v := os.Getenv("FMP_MAX_RPM"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.FMP.MaxRequestsPerMinute = x
		}
	}
	if v := os.Getenv("FMP_MIN_INTERVAL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.FMP.MinRequestIntervalSec = x
		}
	}

	if v := os.Getenv("YAHOO_QUOTE_BASE_URL"); v != "" {
		cfg.YahooQuote.BaseURL = v
	}
	if v := os.Getenv("YAHOO_CHART_BASE_URL"); v != "" {
		cfg.YahooChart.BaseURL = v
	}
	if v := os.Getenv("YAHOO_CHART_MAX_CONCURRENCY"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.YahooChart.MaxConcurrency = x
		}
	}
}
