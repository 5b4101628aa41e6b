package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladanze/auth-api/pkg/ratelimit"
)

func newBucket(t *testing.T, cfg ratelimit.Config) *ratelimit.Bucket {
	t.Helper()
	b, err := ratelimit.NewBucket(cfg)
	require.NoError(t, err)
	t.Cleanup(b.Close)
	return b
}

func TestNewBucket_ConfigValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  ratelimit.Config
	}{
		{"zero capacity", ratelimit.Config{Capacity: 0, RefillRate: 1, RefillInterval: time.Second}},
		{"zero refill rate", ratelimit.Config{Capacity: 5, RefillRate: 0, RefillInterval: time.Second}},
		{"zero interval", ratelimit.Config{Capacity: 5, RefillRate: 1, RefillInterval: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimit.NewBucket(tc.cfg)
			assert.ErrorIs(t, err, ratelimit.ErrInvalidConfig)
		})
	}
}

func TestBucket_Allow(t *testing.T) {
	t.Parallel()

	t.Run("exhausts capacity then denies", func(t *testing.T) {
		t.Parallel()

		b := newBucket(t, ratelimit.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Hour})

		for range 3 {
			assert.True(t, b.Allow("key").Allowed())
		}
		result := b.Allow("key")
		assert.False(t, result.Allowed())
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		b := newBucket(t, ratelimit.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})

		assert.True(t, b.Allow("a").Allowed())
		assert.False(t, b.Allow("a").Allowed())
		assert.True(t, b.Allow("b").Allowed())
	})

	t.Run("empty key is exempt", func(t *testing.T) {
		t.Parallel()

		b := newBucket(t, ratelimit.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
		for range 10 {
			assert.True(t, b.Allow("").Allowed())
		}
	})

	t.Run("reset restores capacity", func(t *testing.T) {
		t.Parallel()

		b := newBucket(t, ratelimit.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
		require.True(t, b.Allow("key").Allowed())
		require.False(t, b.Allow("key").Allowed())

		b.Reset("key")
		assert.True(t, b.Allow("key").Allowed())
	})

	t.Run("refills over time", func(t *testing.T) {
		t.Parallel()

		b := newBucket(t, ratelimit.Config{Capacity: 2, RefillRate: 2, RefillInterval: 10 * time.Millisecond})
		require.True(t, b.Allow("key").Allowed())
		require.True(t, b.Allow("key").Allowed())
		require.False(t, b.Allow("key").Allowed())

		time.Sleep(30 * time.Millisecond)
		assert.True(t, b.Allow("key").Allowed())
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	b := newBucket(t, ratelimit.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour})

	handler := ratelimit.Middleware(b, ratelimit.ByClientIP())(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := do()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	_ = do()
	third := do()
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
	assert.Contains(t, third.Body.String(), "rate_limited")
}
