package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	limiters   = make(map[string]*rate.Limiter)
	limitersMu sync.Mutex
)

func limiterFor(key string, r rate.Limit, b int) *rate.Limiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	l, ok := limiters[key]
	if !ok {
		l = rate.NewLimiter(r, b)
		limiters[key] = l
	}
	return l
}

// RateLimitMiddleware applies a token-bucket limit per key. Keys come
// from keyFunc so tests can limit per route while production limits per
// client IP.
func RateLimitMiddleware(r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiterFor(keyFunc(c), r, b).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down :("})
			return
		}
		c.Next()
	}
}
