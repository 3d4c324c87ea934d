package ratelimit

import (
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig.
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvGenerateLimit   = "RATE_LIMIT_GENERATE_PER_HOUR"
	EnvWhitelist       = "RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "RATE_LIMIT_BLACKLIST"
)

// defaultGeneratePerHour bounds generation requests, each of which calls the text generator.
const defaultGeneratePerHour = 30

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Literal path, "{name}" segment pattern, or prefix ending in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// ClientList holds client addresses and networks, e.g. "10.0.0.5" or "10.0.0.0/8".
type ClientList struct {
	addrs    map[netip.Addr]bool
	prefixes []netip.Prefix
	// other keeps entries that are not IP addresses, matched literally.
	other map[string]bool
}

// ParseClientList parses a comma-separated list. Empty entries are skipped.
func ParseClientList(list string) ClientList {
	var cl ClientList
	for _, entry := range strings.Split(list, ",") {
		cl.Add(strings.TrimSpace(entry))
	}
	return cl
}

// Add adds an address, a network in CIDR notation, or any other client ID.
func (cl *ClientList) Add(entry string) {
	if entry == "" {
		return
	}
	if prefix, err := netip.ParsePrefix(entry); err == nil {
		cl.prefixes = append(cl.prefixes, prefix.Masked())
		return
	}
	if addr, err := netip.ParseAddr(entry); err == nil {
		if cl.addrs == nil {
			cl.addrs = make(map[netip.Addr]bool)
		}
		cl.addrs[addr.Unmap()] = true
		return
	}
	if cl.other == nil {
		cl.other = make(map[string]bool)
	}
	cl.other[entry] = true
}

// Contains reports whether clientID is listed directly or lies in a listed network.
func (cl ClientList) Contains(clientID string) bool {
	addr, err := netip.ParseAddr(clientID)
	if err != nil {
		return cl.other[clientID]
	}
	addr = addr.Unmap()
	if cl.addrs[addr] {
		return true
	}
	for _, prefix := range cl.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (cl ClientList) Len() int {
	return len(cl.addrs) + len(cl.prefixes) + len(cl.other)
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() *Config {
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds the configuration from getenv. Unset or malformed values use defaults.
func ConfigFromEnv(getenv func(string) string) *Config {
	env := envReader(getenv)
	if !env.bool(EnvEnabled, true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.int(EnvDefaultLimit, 1000),
		DefaultWindow:   env.duration(EnvDefaultWindow, time.Minute),
		CleanupInterval: env.duration(EnvCleanupInterval, 5*time.Minute),
		Whitelist:       ParseClientList(getenv(EnvWhitelist)),
		Blacklist:       ParseClientList(getenv(EnvBlacklist)),
		EndpointConfigs: endpointConfigs(env.int(EnvGenerateLimit, defaultGeneratePerHour)),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return endpointConfigs(defaultGeneratePerHour)
}

func endpointConfigs(generatePerHour int) []EndpointConfig {
	generateBurst := min(max(generatePerHour/10, 1), generatePerHour)
	return []EndpointConfig{
		// Generation calls the text generator (strictest limits)
		{Path: "/documents", Method: "POST", Limit: generatePerHour, Window: time.Hour, Burst: generateBurst},
		{Path: "/documents/stream", Method: "POST", Limit: generatePerHour, Window: time.Hour, Burst: generateBurst},

		// PDF and preview rendering start a browser
		{Path: "/documents/{id}/pdf", Method: "GET", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/documents/{id}/pages/{page}", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/profiles/{id}/applications.pdf", Method: "GET", Limit: 30, Window: time.Minute, Burst: 5},

		// Stored documents and edits
		{Path: "/documents/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/documents/{id}/content", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

type envReader func(string) string

func (e envReader) int(key string, def int) int {
	if n, err := strconv.Atoi(e(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func (e envReader) bool(key string, def bool) bool {
	if b, err := strconv.ParseBool(e(key)); err == nil {
		return b
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(e(key)); err == nil && d > 0 {
		return d
	}
	return def
}
