package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedHandler(t *testing.T, rps, burst int) echo.HandlerFunc {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return RateLimiter(ctx, rps, burst)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func serveFrom(e *echo.Echo, handler echo.HandlerFunc, remoteAddr string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	return rec, err
}

func TestRateLimiter_BurstThenLimited(t *testing.T) {
	e := echo.New()
	handler := newRateLimitedHandler(t, 2, 4)

	for i := 0; i < 4; i++ {
		rec, err := serveFrom(e, handler, "192.168.1.2:12345")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec, err := serveFrom(e, handler, "192.168.1.2:12345")
	// SendError writes the response and returns nil
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "SYSTEM_006")
}

func TestRateLimiter_DifferentIPs(t *testing.T) {
	e := echo.New()
	handler := newRateLimitedHandler(t, 5, 5)

	for _, ip := range []string{"192.168.1.1:1234", "192.168.1.2:1234", "192.168.1.3:1234"} {
		for i := 0; i < 5; i++ {
			rec, err := serveFrom(e, handler, ip)
			assert.NoError(t, err, "Request %d for IP %s should succeed", i, ip)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	}
}

func TestRateLimiter_InstancesAreIndependent(t *testing.T) {
	e := echo.New()
	strict := newRateLimitedHandler(t, 1, 1)
	loose := newRateLimitedHandler(t, 100, 100)

	_, _ = serveFrom(e, strict, "10.0.0.1:1")
	rec, _ := serveFrom(e, strict, "10.0.0.1:1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec, _ = serveFrom(e, loose, "10.0.0.1:1")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_SpoofedForwardedForIgnored(t *testing.T) {
	e := echo.New()
	extractor, err := NewIPExtractor(nil)
	require.NoError(t, err)
	e.IPExtractor = extractor
	handler := newRateLimitedHandler(t, 1, 1)

	serve := func(xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "198.51.100.20:4000"
		req.Header.Set(echo.HeaderXForwardedFor, xff)
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, serve("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, serve("203.0.113.3"))
}

func TestNewIPExtractor(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		xff        string
		expected   string
	}{
		{"no proxies uses peer", nil, "198.51.100.20:4000", "203.0.113.9", "198.51.100.20"},
		{"trusted proxy forwards client", []string{"10.0.0.0/8"}, "10.1.2.3:4000", "203.0.113.9", "203.0.113.9"},
		{"untrusted peer is the client", []string{"10.0.0.0/8"}, "198.51.100.20:4000", "203.0.113.9", "198.51.100.20"},
		{"forged left hops skipped", []string{"10.0.0.0/8"}, "10.1.2.3:4000", "1.1.1.1, 203.0.113.9", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor, err := NewIPExtractor(tt.trusted)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set(echo.HeaderXForwardedFor, tt.xff)

			assert.Equal(t, tt.expected, extractor(req))
		})
	}
}

func TestNewIPExtractor_InvalidCIDR(t *testing.T) {
	_, err := NewIPExtractor([]string{"10.0.0.1"})

	assert.ErrorContains(t, err, "invalid trusted proxy")
}

func TestVisitorCleanup(t *testing.T) {
	rl := newIPRateLimiter(5, 10)
	rl.visitors["old_ip"] = &visitor{lastSeen: time.Now().Add(-5 * time.Minute)}
	rl.visitors["new_ip"] = &visitor{lastSeen: time.Now()}

	rl.cleanup(visitorIdleTimeout)

	assert.Len(t, rl.visitors, 1)
	_, oldExists := rl.visitors["old_ip"]
	_, newExists := rl.visitors["new_ip"]
	assert.False(t, oldExists, "Old visitor should not exist")
	assert.True(t, newExists, "New visitor should still exist")
}

func TestRateLimiterConcurrency(t *testing.T) {
	e := echo.New()
	handler := newRateLimitedHandler(t, 5, 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	rateLimitCount := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			rec, err := serveFrom(e, handler, "192.168.1.100:12345")

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				switch rec.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					rateLimitCount++
				}
			}
		}()
	}

	wg.Wait()

	assert.Greater(t, successCount, 0, "Some requests should succeed")
	assert.Greater(t, rateLimitCount, 0, "Some requests should be rate limited")
	assert.Equal(t, 20, successCount+rateLimitCount, "All requests should be accounted for")
}
