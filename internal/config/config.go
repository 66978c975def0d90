package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	infraconfig "pairscan-service/internal/infrastructure/config"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port string
	// Upstreams
	Provider       string
	SearchAPIBase  string
	ListingAPIURL  string
	ListingAPIKey  string
	ListingBearer  bool
	RequestTimeout time.Duration
	UpstreamRPS    float64
	UpstreamBurst  int
	// Quote registry overrides
	WETHQuoteAddress string
	USDCQuoteAddress string
	// Alert cooldowns
	CooldownBackend string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	// Alert journal
	AlertSink   string
	DatabaseURL string
	// Worker
	PollInterval   time.Duration
	PollCategories []string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func durMS(key string, def time.Duration) time.Duration {
	ms := atoiDef(os.Getenv(key), int(def/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

func floatDef(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func listDef(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:              getEnv("ENV", "local"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Port:             getEnv("PORT", infraconfig.DefaultHTTPPort),
		Provider:         strings.ToLower(getEnv("PROVIDER", "live")),
		SearchAPIBase:    getEnv("SEARCH_API_BASE", infraconfig.DefaultSearchAPIBase),
		ListingAPIURL:    getEnv("LISTING_API_URL", infraconfig.DefaultListingAPIURL),
		ListingAPIKey:    getEnv("DEFINED_API_KEY", os.Getenv("CODEX_API_KEY")),
		ListingBearer:    boolDef(os.Getenv("CODEX_AUTH_BEARER"), false),
		RequestTimeout:   durMS("REQUEST_TIMEOUT_MS", infraconfig.DefaultRequestTimeout),
		UpstreamRPS:      floatDef(os.Getenv("UPSTREAM_RPS"), infraconfig.DefaultUpstreamRPS),
		UpstreamBurst:    atoiDef(os.Getenv("UPSTREAM_BURST"), infraconfig.DefaultUpstreamBurst),
		WETHQuoteAddress: os.Getenv("CLANKER_QUOTE_ADDRESS"),
		USDCQuoteAddress: os.Getenv("ZORA_QUOTE_ADDRESS"),
		CooldownBackend:  strings.ToLower(getEnv("COOLDOWN_BACKEND", infraconfig.DefaultCooldownBackend)),
		RedisAddr:        getEnv("REDIS_ADDR", infraconfig.DefaultRedisAddr),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          atoiDef(os.Getenv("REDIS_DB"), 0),
		AlertSink:        strings.ToLower(getEnv("ALERT_SINK", infraconfig.DefaultAlertSink)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PollInterval:     durMS("POLL_INTERVAL_MS", infraconfig.DefaultPollInterval),
		PollCategories:   listDef(getEnv("POLL_CATEGORIES", "WETH,CLANKER,ZORA")),
	}
}
