package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimit is a fixed-window per-IP limiter for the payment endpoints.
// Counters reset every window; good enough to stop checkout hammering
// without external state.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		counts  = map[string]int{}
		resetAt = time.Now().Add(window)
	)

	return func(c *gin.Context) {
		mu.Lock()
		now := time.Now()
		if now.After(resetAt) {
			counts = map[string]int{}
			resetAt = now.Add(window)
		}
		counts[c.ClientIP()]++
		over := counts[c.ClientIP()] > limit
		mu.Unlock()

		if over {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			return
		}
		c.Next()
	}
}
