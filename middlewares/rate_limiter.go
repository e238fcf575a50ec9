package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limit rate.Limit
	burst int
	ips   map[string]*rate.Limiter
	mu    sync.Mutex
}

// NewRateLimiter allows rps requests per second per IP with a burst of the
// same size.
func NewRateLimiter(rps int) *RateLimiter {
	return &RateLimiter{
		limit: rate.Limit(rps),
		burst: rps,
		ips:   make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.ips[ip]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.ips[ip] = l
	}
	return l
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  false,
				"message": "Too many requests",
			})
			return
		}
		c.Next()
	}
}

// NewStrictRateLimiter guards the login endpoint: 5 attempts per minute
// per IP.
func NewStrictRateLimiter() gin.HandlerFunc {
	rl := &RateLimiter{
		limit: rate.Every(time.Minute / 5),
		burst: 5,
		ips:   make(map[string]*rate.Limiter),
	}
	return rl.RateLimit()
}
