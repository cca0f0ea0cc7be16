package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"tripmate/pkg/utils"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		now:     time.Now,
	}
}

func (r *RateLimiter) limiterFor(key string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[key] = c
	}
	c.lastSeen = r.now()
	return c.limiter
}

// Sweep drops clients not seen for at least idle and returns how many it
// removed. Buckets refill within a minute, so idle should be at least that.
func (r *RateLimiter) Sweep(idle time.Duration) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	removed := 0
	for key, c := range r.clients {
		if !c.lastSeen.After(cutoff) {
			delete(r.clients, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked clients.
func (r *RateLimiter) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// RateLimitMiddleware rejects requests over the per-client budget with 429.
// A nil limiter disables limiting.
func RateLimitMiddleware(r *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r == nil {
			c.Next()
			return
		}
		if !r.limiterFor(c.ClientIP()).Allow() {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
