package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// staleAfter is how long an idle client keeps its bucket before the
// cleanup loop drops it.
const staleAfter = 10 * time.Minute

// RateLimiter applies a per-client-IP token bucket. Buckets refill
// continuously, so a client that stays under the limit never blocks.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	done    chan struct{}
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter starts the background cleanup loop. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go rl.cleanupLoop(cleanupInterval)
	return rl
}

// Stop terminates the cleanup loop and waits for it to exit.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
	<-rl.done
}

// Limit returns middleware that allows maxPerMinute requests per client IP
// and answers 429 with a Retry-After header above that.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	capacity := float64(maxPerMinute)
	perSecond := capacity / 60.0

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.take(clientIP(r), capacity, perSecond) {
				w.Header().Set("Retry-After", strconv.Itoa(int(1/perSecond)+1))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take refills the client's bucket for the time elapsed since the last
// request and consumes one token if available.
func (rl *RateLimiter) take(key string, capacity, perSecond float64) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: capacity}
		rl.buckets[key] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * perSecond
		if b.tokens > capacity {
			b.tokens = capacity
		}
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	defer close(rl.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-staleAfter)
			rl.mu.Lock()
			for key, b := range rl.buckets {
				if b.lastSeen.Before(cutoff) {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// clientIP strips the port from RemoteAddr so requests from the same host
// on different source ports share one bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
