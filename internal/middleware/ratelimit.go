// ratelimit.go limits each caller to a fixed number of requests per hour.
//
// A caller is the authenticated principal (see Principal) or, when auth is
// off, the client IP. Each caller has a token bucket holding up to `limit`
// tokens that refills continuously at limit/hour; a request spends one
// token and is rejected with 429 when less than one is left.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pdf-text-service/internal/models"
)

// RateLimiter holds one token bucket per caller.
type RateLimiter struct {
	limit      int     // Requests per hour; <= 0 disables limiting
	refillRate float64 // Tokens per second

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time // Swapped in tests
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per hour per caller.
func NewRateLimiter(limit int) *RateLimiter {
	rl := &RateLimiter{
		limit:      limit,
		refillRate: float64(limit) / time.Hour.Seconds(),
		buckets:    make(map[string]*bucket),
		now:        time.Now,
	}

	if limit > 0 {
		go rl.cleanup()
	}

	return rl
}

// RateLimit returns Gin middleware that enforces the per-caller limit.
// It must run after Authenticate so the caller identity is known.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		remaining, wait, ok := rl.take(callerKey(c))

		// Headers go on rejected requests too so clients can back off.
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Rate limit exceeded. Try again later.",
				Code:    http.StatusTooManyRequests,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// callerKey is the bucket key for a request.
func callerKey(c *gin.Context) string {
	if p := Principal(c); p != "" {
		return p
	}
	return "ip:" + c.ClientIP()
}

// take spends one token from the caller's bucket. It returns the whole
// tokens left and, when the bucket is empty, how long until the next one.
func (rl *RateLimiter) take(key string) (remaining int, wait time.Duration, ok bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{tokens: float64(rl.limit), lastSeen: now}
		rl.buckets[key] = b
	}

	b.tokens = math.Min(float64(rl.limit), b.tokens+now.Sub(b.lastSeen).Seconds()*rl.refillRate)
	b.lastSeen = now

	if b.tokens < 1 {
		wait = time.Duration((1 - b.tokens) / rl.refillRate * float64(time.Second))
		return 0, wait, false
	}

	b.tokens--
	return int(b.tokens), 0, true
}

// cleanup drops buckets idle for over an hour. Such a bucket would have
// refilled completely, so forgetting it changes nothing for the caller.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := rl.now()
		for key, b := range rl.buckets {
			if now.Sub(b.lastSeen) > time.Hour {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}
