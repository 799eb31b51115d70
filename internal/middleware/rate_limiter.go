package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/OKANLA95/Keziah-Shop/internal/apierror"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window in-memory limiter keyed by client IP.
// Good enough for a single instance; swap for a Redis limiter when scaling out.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	type bucket struct {
		count   int
		resetAt time.Time
	}
	var mu sync.Mutex
	buckets := map[string]*bucket{}

	// Purge expired buckets so the map does not grow without bound.
	go func() {
		for range time.Tick(window) {
			mu.Lock()
			now := time.Now()
			for ip, b := range buckets {
				if now.After(b.resetAt) {
					delete(buckets, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		b, ok := buckets[ip]
		if !ok || now.After(b.resetAt) {
			b = &bucket{resetAt: now.Add(window)}
			buckets[ip] = b
		}
		b.count++
		over := b.count > limit
		mu.Unlock()

		if over {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("too many requests, slow down"))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter protects the credential endpoints from brute force.
func LoginRateLimiter() gin.HandlerFunc {
	return RateLimiter(20, time.Minute)
}
