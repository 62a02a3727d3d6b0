package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for routes that are never limited.
var unlimited = &EndpointConfig{Path: "/health", Method: http.MethodGet}

// MatchEndpoint returns the rule for a request, or nil when the default limit
// applies. Exact paths win over prefixes; GET /health is unlimited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == unlimited.Path && method == unlimited.Method {
		return unlimited
	}

	for i := range configs {
		if c := &configs[i]; c.Method == method && c.Path == path {
			return c
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasSuffix(c.Path, "/") || !strings.HasPrefix(path, c.Path) {
			continue
		}
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}
