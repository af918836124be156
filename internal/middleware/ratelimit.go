// ratelimit.go implements per-caller rate limiting using a token bucket algorithm.
//
// How token bucket works:
// - Each caller gets a "bucket" with N tokens (an API key's rate_limit, or
//   the default limit for dashboard users)
// - Each request consumes 1 token
// - Tokens refill at a steady rate (N tokens per hour)
// - If the bucket is empty, the request is rejected with 429 Too Many Requests
package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/models"
)

// RateLimiter tracks request rates per caller.
type RateLimiter struct {
	mu           sync.Mutex
	buckets      map[string]*bucket
	defaultLimit int
	owner        OwnerOverride
	now          func() time.Time
	done         chan struct{}
	stopOnce     sync.Once
}

// bucket tracks the token state for a single caller.
type bucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// allowResult contains the result of a rate limit check,
// including header information for the response.
type allowResult struct {
	allowed   bool
	remaining float64
	limit     float64
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
// defaultLimit applies to callers without a per-key limit.
func NewRateLimiter(defaultLimit int, owner OwnerOverride) *RateLimiter {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	rl := &RateLimiter{
		buckets:      make(map[string]*bucket),
		defaultLimit: defaultLimit,
		owner:        owner,
		now:          time.Now,
		done:         make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// RateLimit returns Gin middleware that enforces per-caller rate limits.
// It must run after DualAuth.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.owner.Request(c) {
			c.Next()
			return
		}

		id, limit, ok := rl.identify(c)
		if !ok {
			// Unauthenticated; DualAuth has already rejected it.
			c.Next()
			return
		}

		result := rl.allow(id, limit)
		c.Header("X-RateLimit-Limit", formatFloat(result.limit))
		if !result.allowed {
			c.Header("X-RateLimit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Rate limit exceeded. Try again later.",
				Code:    http.StatusTooManyRequests,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", formatFloat(result.remaining))
		c.Next()
	}
}

func (rl *RateLimiter) identify(c *gin.Context) (string, int, bool) {
	if key := GetAPIKey(c); key != nil {
		limit := key.RateLimit
		if limit <= 0 {
			limit = rl.defaultLimit
		}
		return "key:" + key.ID, limit, true
	}
	if user := GetUser(c); user != nil {
		return "user:" + user.ID, rl.defaultLimit, true
	}
	return "", 0, false
}

// allow checks if a request should be allowed, consuming a token if so.
func (rl *RateLimiter) allow(id string, rateLimit int) allowResult {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, exists := rl.buckets[id]
	if !exists || b.maxTokens != float64(rateLimit) {
		b = &bucket{
			tokens:     float64(rateLimit),
			maxTokens:  float64(rateLimit),
			refillRate: float64(rateLimit) / 3600.0,
			lastRefill: now,
		}
		rl.buckets[id] = b
	}

	// Refill tokens based on elapsed time
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now

	if b.tokens < 1.0 {
		return allowResult{allowed: false, remaining: 0, limit: b.maxTokens}
	}

	b.tokens--
	return allowResult{allowed: true, remaining: b.tokens, limit: b.maxTokens}
}

// cleanup periodically removes stale buckets to prevent memory leaks.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.evictIdle(time.Hour)
		}
	}
}

// evictIdle drops buckets untouched for longer than idle. A full refill
// takes an hour, so such a bucket is indistinguishable from a new one.
func (rl *RateLimiter) evictIdle(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for id, b := range rl.buckets {
		if now.Sub(b.lastRefill) > idle {
			delete(rl.buckets, id)
		}
	}
}

// formatFloat converts a float to a string for headers.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.0f", f)
}
