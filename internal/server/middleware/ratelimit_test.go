package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(perMinute int) *RateLimiter {
	logger := zerolog.Nop()
	return NewRateLimiter(perMinute, &logger)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := newTestLimiter(3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, rl.allow("10.0.0.1"))

	// buckets are per IP
	assert.True(t, rl.allow("10.0.0.2"))
	assert.Equal(t, 2, rl.visitorCount())
}

func TestRateLimiter_Prune(t *testing.T) {
	rl := newTestLimiter(10)
	rl.idleTTL = time.Millisecond

	rl.allow("10.0.0.1")
	time.Sleep(5 * time.Millisecond)
	rl.Prune()

	assert.Equal(t, 0, rl.visitorCount())
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := newTestLimiter(1)
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remote, forwarded string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", nil)
		req.RemoteAddr = remote
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000", "").Code)

	// same host, different port
	limited := do("10.0.0.1:2000", "")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Contains(t, limited.Body.String(), "RATE_LIMITED")

	// forwarded client gets its own bucket
	assert.Equal(t, http.StatusOK, do("10.0.0.1:3000", "203.0.113.7, 10.0.0.1").Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:443"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", " 198.51.100.2 , 192.0.2.1")
	assert.Equal(t, "198.51.100.2", clientIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", clientIP(req))
}
