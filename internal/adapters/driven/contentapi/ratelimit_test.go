package contentapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func response(status int, retryAfter string) *http.Response {
	resp := &http.Response{StatusCode: status, Header: http.Header{}}
	if retryAfter != "" {
		resp.Header.Set(HeaderRetryAfter, retryAfter)
	}
	return resp
}

func TestRateLimiter_ObserveRetryAfter(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(10)
	limiter.now = fixedClock(now)

	limiter.Observe(response(http.StatusTooManyRequests, "2"))

	assert.Equal(t, now.Add(2*time.Second), limiter.BlockedUntil())
}

func TestRateLimiter_ObserveIgnored(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
	}{
		{"nil response", nil},
		{"success", response(http.StatusOK, "5")},
		{"no header", response(http.StatusTooManyRequests, "")},
		{"http date", response(http.StatusServiceUnavailable, "Wed, 21 Oct 2015 07:28:00 GMT")},
		{"negative", response(http.StatusTooManyRequests, "-3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewRateLimiter(10)
			limiter.Observe(tt.resp)
			assert.True(t, limiter.BlockedUntil().IsZero())
		})
	}
}

func TestRateLimiter_ObserveCapsAndKeepsLatest(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(10)
	limiter.now = fixedClock(now)

	limiter.Observe(response(http.StatusServiceUnavailable, "3600"))
	assert.Equal(t, now.Add(maxRetryAfter), limiter.BlockedUntil())

	limiter.Observe(response(http.StatusTooManyRequests, "1"))
	assert.Equal(t, now.Add(maxRetryAfter), limiter.BlockedUntil(), "shorter delay does not shrink the block")
}

func TestRateLimiter_WaitHonoursBlock(t *testing.T) {
	limiter := NewRateLimiter(10)
	limiter.Observe(response(http.StatusTooManyRequests, "30"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_WaitCancelled(t *testing.T) {
	limiter := NewRateLimiter(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, limiter.Wait(ctx))
}

func TestRateLimiter_WaitUnblocked(t *testing.T) {
	limiter := NewRateLimiter(0)
	require.NoError(t, limiter.Wait(context.Background()))
}

func TestClient_RetryAfterBlocksNextRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRetryAfter, "5")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"slow down"}`))
	}))
	defer srv.Close()
	client := newTestClient(srv, staticTokens{})

	_, err := client.FetchSnapshot(context.Background())
	require.EqualError(t, err, "slow down")
	assert.True(t, client.RateLimiter().BlockedUntil().After(time.Now()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.FetchSnapshot(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
