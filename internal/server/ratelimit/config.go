package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-optimizer/internal/config"
)

// Environment variables read by LoadConfig.
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist       = "RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "RATE_LIMIT_BLACKLIST"
)

// Defaults used when the environment does not override them.
const (
	DefaultLimit           = 1000
	DefaultWindow          = time.Minute
	DefaultCleanupInterval = 5 * time.Minute
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity; defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns an enabled configuration with the default endpoint rules.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    DefaultLimit,
		DefaultWindow:   DefaultWindow,
		CleanupInterval: DefaultCleanupInterval,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
// Unparseable values fall back to the defaults.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetEnvBool(EnvEnabled, true)
	if !cfg.Enabled {
		return cfg
	}

	if n, err := config.GetEnvInt(EnvDefaultLimit, DefaultLimit); err == nil && n > 0 {
		cfg.DefaultLimit = n
	}
	if d, err := config.GetEnvDuration(EnvDefaultWindow, DefaultWindow); err == nil && d > 0 {
		cfg.DefaultWindow = d
	}
	if d, err := config.GetEnvDuration(EnvCleanupInterval, DefaultCleanupInterval); err == nil && d > 0 {
		cfg.CleanupInterval = d
	}
	cfg.Whitelist = parseIPList(config.GetEnv(EnvWhitelist, ""))
	cfg.Blacklist = parseIPList(config.GetEnv(EnvBlacklist, ""))
	return cfg
}

// DefaultEndpointConfigs returns the per-route rules. Routes that may call the
// language model are the strictest; credential routes are limited against
// guessing. Everything else uses the default limit.
func DefaultEndpointConfigs() []EndpointConfig {
	post, put := http.MethodPost, http.MethodPut
	return []EndpointConfig{
		// Model-backed operations
		{Path: "/api/optimize", Method: post, Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/api/generate-optimized", Method: post, Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/parse-job", Method: post, Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/api/extract-profile", Method: post, Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/api/analyze-compatibility", Method: post, Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/jobs", Method: post, Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/resumes", Method: post, Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/analyses", Method: post, Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/optimized-resumes", Method: post, Limit: 30, Window: time.Hour, Burst: 5},

		// Credentials
		{Path: "/auth/register", Method: post, Limit: 5, Window: time.Minute, Burst: 3},
		{Path: "/auth/login", Method: post, Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/auth/password", Method: put, Limit: 5, Window: time.Minute, Burst: 3},
		{Path: "/profile", Method: put, Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
