package preview

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// staleAfter is how long an untouched bucket is kept.
const staleAfter = time.Hour

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Throttle limits submissions per client with a token bucket: burst
// submissions at once, one more every interval.
type Throttle struct {
	mu        sync.Mutex
	burst     int
	interval  time.Duration
	buckets   map[string]*bucket
	lastPrune time.Time
	now       func() time.Time
}

// NewThrottle creates a throttle. Both burst and interval must be positive.
func NewThrottle(burst int, interval time.Duration) (*Throttle, error) {
	if burst <= 0 {
		return nil, fmt.Errorf("%w: burst must be positive, got %d", ErrInvalidThrottle, burst)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidThrottle, interval)
	}
	return &Throttle{
		burst:    burst,
		interval: interval,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}, nil
}

// Allow consumes one token for key. It returns the tokens left and, when the
// request is refused, how long to wait.
func (t *Throttle) Allow(key string) (remaining int, retryAfter time.Duration, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.prune(now)

	b, exists := t.buckets[key]
	if !exists {
		b = &bucket{tokens: t.burst, lastRefill: now}
		t.buckets[key] = b
	}
	b.lastAccess = now

	// Cap the elapsed intervals so a long idle period cannot overflow.
	intervals := int(min(int64(now.Sub(b.lastRefill)/t.interval), int64(t.burst)))
	if intervals > 0 {
		b.tokens = min(b.tokens+intervals, t.burst)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * t.interval)
	}

	if b.tokens == 0 {
		return 0, b.lastRefill.Add(t.interval).Sub(now), false
	}
	b.tokens--
	return b.tokens, 0, true
}

// Len returns the number of tracked clients.
func (t *Throttle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buckets)
}

func (t *Throttle) prune(now time.Time) {
	if now.Sub(t.lastPrune) < staleAfter {
		return
	}
	t.lastPrune = now
	for key, b := range t.buckets {
		if now.Sub(b.lastAccess) > staleAfter {
			delete(t.buckets, key)
		}
	}
}

// Middleware refuses requests over the limit with 429 and a Retry-After header.
// Requests are keyed by ClientIP.
func (t *Throttle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remaining, wait, ok := t.Allow(ClientIP(r))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(t.burst))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(max(1, int(wait.Round(time.Second).Seconds()))))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": ErrTooManySubmissions.Error()})
			return
		}
		next.ServeHTTP(w, r)
	})
}
