package contentapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the proactive request rate per second.
	DefaultRate = 5

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"

	// maxRetryAfter caps how long a single Retry-After can block.
	maxRetryAfter = time.Minute
)

// RateLimiter combines proactive throttling with the server's Retry-After.
type RateLimiter struct {
	mu           sync.Mutex
	bucket       *rate.Limiter
	blockedUntil time.Time
	now          func() time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests per second.
// A non-positive value uses DefaultRate.
func NewRateLimiter(perSecond int) *RateLimiter {
	if perSecond <= 0 {
		perSecond = DefaultRate
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), perSecond),
		now:    time.Now,
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	until := r.blockedUntil
	r.mu.Unlock()

	if wait := until.Sub(r.now()); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// Observe records a Retry-After from a 429 or 503 response.
func (r *RateLimiter) Observe(resp *http.Response) {
	if resp == nil {
		return
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return
	}

	seconds, err := strconv.Atoi(resp.Header.Get(HeaderRetryAfter))
	if err != nil || seconds <= 0 {
		return
	}
	delay := time.Duration(seconds) * time.Second
	if delay > maxRetryAfter {
		delay = maxRetryAfter
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if until := r.now().Add(delay); until.After(r.blockedUntil) {
		r.blockedUntil = until
	}
}

// BlockedUntil returns when the server-requested backoff ends.
func (r *RateLimiter) BlockedUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blockedUntil
}
