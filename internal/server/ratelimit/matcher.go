package ratelimit

import (
	"net/http"
	"strings"
)

// healthEndpoint is never limited.
var healthEndpoint = EndpointConfig{Path: "/health", Method: http.MethodGet}

// MatchEndpoint returns the configuration for a request, or nil when none applies.
//
// Config paths use the router's pattern syntax: "{name}" matches exactly one path
// segment, so "/documents/{id}/pdf" covers every document's PDF download. A path
// ending in "/" matches everything below it. A literal path beats a pattern, a
// pattern beats a prefix, and among patterns the one with fewer wildcards wins.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == healthEndpoint.Path && method == healthEndpoint.Method {
		h := healthEndpoint
		return &h
	}

	segments := splitPath(path)
	var (
		best      *EndpointConfig
		bestScore = -1
	)
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != method {
			continue
		}
		if score := matchScore(cfg.Path, path, segments); score > bestScore {
			best, bestScore = cfg, score
		}
	}
	return best
}

// matchScore ranks how specifically pattern matches path; -1 means no match.
func matchScore(pattern, path string, segments []string) int {
	const (
		literal  = 3000
		wildcard = 2000
		prefix   = 1000
	)
	if pattern == path {
		return literal
	}
	if strings.HasSuffix(pattern, "/") {
		if strings.HasPrefix(path, pattern) {
			return prefix + len(pattern)
		}
		return -1
	}
	if !strings.Contains(pattern, "{") {
		return -1
	}

	parts := splitPath(pattern)
	if len(parts) != len(segments) {
		return -1
	}
	wildcards := 0
	for i, part := range parts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			if segments[i] == "" {
				return -1
			}
			wildcards++
			continue
		}
		if part != segments[i] {
			return -1
		}
	}
	return wildcard - wildcards
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
