package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter whose clock only moves when advance is called.
func newTestLimiter(t *testing.T, config *Config) (*Limiter, func(time.Duration)) {
	t.Helper()
	limiter := NewLimiter(config)
	t.Cleanup(limiter.Stop)

	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	limiter.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	return limiter, func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	// 11th request should be denied
	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 6*time.Second, info.RetryAfter, "one token refills every 6s at 10/min")
	assert.True(t, info.ResetTime.After(limiter.now()))
}

func TestLimiter_Refill(t *testing.T) {
	limiter, advance := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Second,
	})

	limiter.Allow("c", "/test", "GET")
	limiter.Allow("c", "/test", "GET")
	allowed, _ := limiter.Allow("c", "/test", "GET")
	require.False(t, allowed)

	advance(600 * time.Millisecond)
	allowed, _ = limiter.Allow("c", "/test", "GET")
	assert.True(t, allowed, "one token refilled after 500ms")
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     ParseClientList("127.0.0.1"),
		Blacklist:     ParseClientList("192.168.1.0/24"),
	})

	for i := 0; i < 20; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		assert.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}

	allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET")
	assert.False(t, allowed)

	disabled, _ := newTestLimiter(t, &Config{Enabled: false})
	for i := 0; i < 20; i++ {
		allowed, _ := disabled.Allow("10.0.0.1", "/documents", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})

	// POST /documents allows a burst of 3
	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("c", "/documents", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 30, info.Limit)
	}
	allowed, _ := limiter.Allow("c", "/documents", "POST")
	assert.False(t, allowed)

	// Other clients have their own buckets
	allowed, _ = limiter.Allow("other", "/documents", "POST")
	assert.True(t, allowed)

	// Different endpoint should use default limit
	allowed, info := limiter.Allow("c", "/other", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)

	// Health is never limited
	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("c", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_PrefixSharesBucket(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/documents/", Method: "GET", Limit: 2, Window: time.Minute, Burst: 2},
		},
	})

	limiter.Allow("c", "/documents/a/pdf", "GET")
	limiter.Allow("c", "/documents/b/pdf", "GET")
	allowed, _ := limiter.Allow("c", "/documents/c/pdf", "GET")
	assert.False(t, allowed, "all document paths draw from one bucket")
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})

	var (
		wg      sync.WaitGroup
		allowed atomic.Int32
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("c", "/test", "GET"); ok {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(100), allowed.Load())
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter, advance := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})

	limiter.Allow("c", "/test", "GET")
	require.Len(t, limiter.buckets, 1)

	advance(2 * time.Hour)
	limiter.cleanupBuckets()
	assert.Empty(t, limiter.buckets)
	assert.Empty(t, limiter.lastAccess)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("c", "/test", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path, method string
		wantPath     string
	}{
		{"/documents", "POST", "/documents"},
		{"/documents/stream", "POST", "/documents/stream"},
		{"/documents/123/pdf", "GET", "/documents/{id}/pdf"},
		{"/documents/123/pages/2", "GET", "/documents/{id}/pages/{page}"},
		{"/documents/123", "GET", "/documents/"},
		{"/documents/123/content", "PUT", "/documents/{id}/content"},
		{"/profiles/1/applications.pdf", "GET", "/profiles/{id}/applications.pdf"},
		{"/profiles/1/other", "GET", ""},
		{"/documents//pdf", "GET", "/documents/"},
		{"/documents/123/pdf", "DELETE", ""},
		{"/unknown", "GET", ""},
	}
	for _, tt := range tests {
		got := MatchEndpoint(tt.path, tt.method, configs)
		if tt.wantPath == "" {
			assert.Nil(t, got, tt.path)
			continue
		}
		require.NotNil(t, got, tt.path)
		assert.Equal(t, tt.wantPath, got.Path, tt.path)
	}

	health := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Equal(t, 0, health.Limit)
}

func TestMatchEndpoint_Precedence(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/documents/", Method: "GET", Limit: 1},
		{Path: "/documents/{id}/{part}", Method: "GET", Limit: 2},
		{Path: "/documents/{id}/pdf", Method: "GET", Limit: 3},
		{Path: "/documents/latest/pdf", Method: "GET", Limit: 4},
	}

	assert.Equal(t, 4, MatchEndpoint("/documents/latest/pdf", "GET", configs).Limit, "literal first")
	assert.Equal(t, 3, MatchEndpoint("/documents/7/pdf", "GET", configs).Limit, "fewer wildcards")
	assert.Equal(t, 2, MatchEndpoint("/documents/7/png", "GET", configs).Limit)
	assert.Equal(t, 1, MatchEndpoint("/documents/7/pages/1", "GET", configs).Limit, "prefix last")
}

func TestLimiter_PatternSharesBucket(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/documents/{id}/pdf", Method: "GET", Limit: 1, Window: time.Minute, Burst: 1},
		},
	})

	allowed, _ := limiter.Allow("c", "/documents/a/pdf", "GET")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("c", "/documents/b/pdf", "GET")
	assert.False(t, allowed)
	allowed, _ = limiter.Allow("c", "/documents/b", "GET")
	assert.True(t, allowed, "other document routes use the default bucket")
}

func TestClientList(t *testing.T) {
	cl := ParseClientList(" 10.0.0.5, 172.16.0.0/12 ,, ::1, 2001:db8::/32, internal-gateway ")

	assert.Equal(t, 5, cl.Len())
	for _, id := range []string{"10.0.0.5", "172.20.1.1", "::1", "2001:db8::7", "::ffff:10.0.0.5", "internal-gateway"} {
		assert.True(t, cl.Contains(id), id)
	}
	for _, id := range []string{"10.0.0.6", "172.32.0.1", "2001:db9::1", "", "other"} {
		assert.False(t, cl.Contains(id), id)
	}

	var empty ClientList
	assert.False(t, empty.Contains("127.0.0.1"))
}

func TestConfigFromEnv(t *testing.T) {
	env := map[string]string{
		EnvDefaultLimit:    "50",
		EnvDefaultWindow:   "30s",
		EnvGenerateLimit:   "5",
		EnvWhitelist:       "127.0.0.1",
		EnvBlacklist:       "10.0.0.0/8",
		EnvCleanupInterval: "bogus",
	}
	cfg := ConfigFromEnv(func(k string) string { return env[k] })

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval, "malformed values use defaults")
	assert.True(t, cfg.Whitelist.Contains("127.0.0.1"))
	assert.True(t, cfg.Blacklist.Contains("10.1.2.3"))

	generate := MatchEndpoint("/documents", "POST", cfg.EndpointConfigs)
	require.NotNil(t, generate)
	assert.Equal(t, 5, generate.Limit)
	assert.Equal(t, 1, generate.Burst)

	disabled := ConfigFromEnv(func(k string) string {
		if k == EnvEnabled {
			return "false"
		}
		return ""
	})
	assert.False(t, disabled.Enabled)

	defaults := ConfigFromEnv(func(string) string { return "" })
	assert.Equal(t, DefaultEndpointConfigs(), defaults.EndpointConfigs)
	assert.Equal(t, 1000, defaults.DefaultLimit)
}
