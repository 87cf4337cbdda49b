package http

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultWritesPerMinute = 120
	defaultWriteBurst      = 20

	limiterIdleTTL = 10 * time.Minute
)

// writeLimiter keeps one token bucket per client and API resource, so a run
// of transaction entries does not lock the same client out of category or
// year edits.
type writeLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[bucketKey]*bucket
	hits    map[string]int64

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

type bucketKey struct {
	client   string
	resource string
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newWriteLimiter(perMinute, burst int) *writeLimiter {
	if perMinute < 1 {
		perMinute = defaultWritesPerMinute
	}
	if burst < 1 {
		burst = defaultWriteBurst
	}
	wl := &writeLimiter{
		limit:       rate.Every(time.Minute / time.Duration(perMinute)),
		burst:       burst,
		buckets:     make(map[bucketKey]*bucket),
		hits:        make(map[string]int64),
		stopCleanup: make(chan struct{}),
	}
	go wl.cleanupLoop()
	return wl
}

// resourceOf maps a request path to the API resource it writes:
// /api/transactions/42 -> transactions.
func resourceOf(path string) string {
	rest, ok := strings.CutPrefix(path, "/api/")
	if !ok {
		return "other"
	}
	resource, _, _ := strings.Cut(rest, "/")
	if resource == "" {
		return "other"
	}
	return resource
}

// allow takes a token from the bucket of client on resource at now.
func (wl *writeLimiter) allow(client, resource string, now time.Time) bool {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	key := bucketKey{client: client, resource: resource}
	b, ok := wl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(wl.limit, wl.burst)}
		wl.buckets[key] = b
	}
	b.lastSeen = now
	if b.limiter.AllowN(now, 1) {
		return true
	}
	wl.hits[resource]++
	return false
}

// rejected returns the number of throttled writes per resource.
func (wl *writeLimiter) rejected() map[string]int64 {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	out := make(map[string]int64, len(wl.hits))
	for k, v := range wl.hits {
		out[k] = v
	}
	return out
}

func (wl *writeLimiter) clients() int {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	return len(wl.buckets)
}

func (wl *writeLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case t := <-ticker.C:
			wl.forgetIdle(t.Add(-limiterIdleTTL))
		case <-wl.stopCleanup:
			return
		}
	}
}

// forgetIdle drops buckets unused since cutoff. A dropped bucket comes back
// full, which an idle client would have refilled to anyway.
func (wl *writeLimiter) forgetIdle(cutoff time.Time) {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	for k, b := range wl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(wl.buckets, k)
		}
	}
}

func (wl *writeLimiter) stop() {
	wl.stopOnce.Do(func() { close(wl.stopCleanup) })
}
