package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by the server and the CLI.
const (
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
	EnvPort        = "PORT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLocalOnly   = "LOCAL_ONLY"
	EnvUseBrowser  = "USE_BROWSER"
	EnvLLMTimeout  = "LLM_TIMEOUT"
	EnvOptTimeout  = "LLM_OPTIMIZE_TIMEOUT"
	EnvCORSOrigins = "CORS_ALLOWED_ORIGINS"
)

// GetEnv returns the trimmed value of key, or def when it is unset or blank.
func GetEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// GetEnvInt returns key parsed as an int, or def when it is unset.
func GetEnvInt(key string, def int) (int, error) {
	v := GetEnv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// GetEnvBool returns key parsed as a bool, or def when it is unset or invalid.
func GetEnvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return def
	}
	return b
}

// GetEnvDuration returns key parsed with time.ParseDuration, or def when it is unset.
func GetEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := GetEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// FromEnv returns the settings the environment provides. It is used as the
// defaults beneath a config file and command-line flags.
func FromEnv() (Config, error) {
	timeout, err := GetEnvDuration(EnvLLMTimeout, 0)
	if err != nil {
		return Config{}, err
	}
	optimize, err := GetEnvDuration(EnvOptTimeout, 0)
	if err != nil {
		return Config{}, err
	}
	return Config{
		APIKey:          GetEnv(EnvAPIKey, ""),
		DatabaseURL:     GetEnv(EnvDatabaseURL, ""),
		LocalOnly:       GetEnvBool(EnvLocalOnly, false),
		UseBrowser:      GetEnvBool(EnvUseBrowser, false),
		TimeoutSeconds:  int(timeout / time.Second),
		OptimizeSeconds: int(optimize / time.Second),
	}, nil
}
