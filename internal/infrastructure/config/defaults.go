package config

import "time"

const (
	DefaultHTTPPort        = "8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultPollInterval    = 5 * time.Second
	DefaultRequestTimeout  = 4 * time.Second
	DefaultUpstreamRPS     = 2.0
	DefaultUpstreamBurst   = 4
	DefaultPGMaxConns      = 5
	DefaultPGMinConns      = 1

	DefaultSearchAPIBase   = "https://api.dexscreener.com"
	DefaultListingAPIURL   = "https://graph.codex.io/graphql"
	DefaultRedisAddr       = "localhost:6379"
	DefaultCooldownBackend = "memory"
	DefaultAlertSink       = "log"
)
