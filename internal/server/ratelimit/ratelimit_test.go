package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is advanced manually by tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestBucket_Take(t *testing.T) {
	now := time.Now()
	b := newBucket(3, 1.0, now)

	for i := 0; i < 3; i++ {
		allowed, remaining, _, _ := b.take(now)
		assert.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, resetAt, retryAfter := b.take(now)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, time.Second, retryAfter)
	assert.Equal(t, now.Add(3*time.Second), resetAt)
}

func TestBucket_Refill(t *testing.T) {
	now := time.Now()
	b := newBucket(2, 1.0, now)
	b.take(now)
	b.take(now)

	allowed, _, _, _ := b.take(now.Add(500 * time.Millisecond))
	assert.False(t, allowed)

	allowed, _, _, _ = b.take(now.Add(1100 * time.Millisecond))
	assert.True(t, allowed)

	// Refill never exceeds capacity
	allowed, remaining, _, _ := b.take(now.Add(time.Hour))
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
}

func TestLimiter_AnalyzeRule(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules:         DefaultRules(),
	})

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("1.2.3.4", "/api/analyze", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info := l.Allow("1.2.3.4", "/api/analyze", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 6*time.Second, info.RetryAfter)

	// Another client has its own bucket
	allowed, _ = l.Allow("5.6.7.8", "/api/analyze", "POST")
	assert.True(t, allowed)

	// 10 per minute refills one token every 6 seconds
	clock.advance(7 * time.Second)
	allowed, _ = l.Allow("1.2.3.4", "/api/analyze", "POST")
	assert.True(t, allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Rules:         DefaultRules(),
	})

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("1.2.3.4", "/api/health", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_DefaultLimitPerPath(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})

	allowed, _ := l.Allow("1.2.3.4", "/a", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/a", "GET")
	assert.False(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/b", "GET")
	assert.True(t, allowed)
}

func TestLimiter_PrefixRuleSharesBucket(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled: true,
		Rules:   []Rule{{Path: "/api/profiles/", Method: "GET", Limit: 2, Window: time.Minute}},
	})

	allowed, _ := l.Allow("c", "/api/profiles/alice", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/api/profiles/bob", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/api/profiles/carol", "GET")
	assert.False(t, allowed)
}

func TestLimiter_AllowAndDenyLists(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Allowlist:     map[string]bool{"10.0.0.1": true},
		Denylist:      map[string]bool{"10.0.0.2": true},
	})

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/x", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.2", "/x", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false})
	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("c", "/api/analyze", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  5,
		DefaultWindow: time.Minute,
		IdleTTL:       time.Hour,
	})

	l.Allow("old", "/x", "GET")
	clock.advance(2 * time.Hour)
	l.Allow("new", "/x", "GET")

	l.evictIdle()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	_, ok := l.buckets["new:GET:/x"]
	assert.True(t, ok)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  50,
		DefaultWindow: time.Hour,
	})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/x", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_StopIdempotent(t *testing.T) {
	l := NewLimiter(nil)
	assert.NotPanics(t, func() {
		l.Stop()
		l.Stop()
	})
}

func TestMatchRule(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		path, method string
		wantPath     string
	}{
		{"/api/analyze", "POST", "/api/analyze"},
		{"/api/analyze", "GET", ""},
		{"/api/health", "GET", "/api/health"},
		{"/api/profiles/jane", "GET", "/api/profiles/"},
		{"/other", "GET", ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			r := MatchRule(tt.path, tt.method, rules)
			if tt.wantPath == "" {
				assert.Nil(t, r)
				return
			}
			require.NotNil(t, r)
			assert.Equal(t, tt.wantPath, r.Path)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	env := map[string]string{
		"RATE_LIMIT_ANALYZE_LIMIT":  "3",
		"RATE_LIMIT_ANALYZE_WINDOW": "1h",
		"RATE_LIMIT_WHITELIST":      "10.0.0.1, 10.0.0.2",
	}
	cfg := loadConfig(func(k string) string { return env[k] })

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.DefaultLimit)
	assert.Equal(t, 3, cfg.Rules[0].Limit)
	assert.Equal(t, 3, cfg.Rules[0].Burst)
	assert.Equal(t, time.Hour, cfg.Rules[0].Window)
	assert.True(t, cfg.Allowlist["10.0.0.2"])
	assert.Empty(t, cfg.Denylist)
}

func TestLoadConfig_Disabled(t *testing.T) {
	cfg := loadConfig(func(k string) string {
		if k == "RATE_LIMIT_ENABLED" {
			return "false"
		}
		return ""
	})
	assert.False(t, cfg.Enabled)
}
