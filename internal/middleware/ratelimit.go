package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Default limits applied by RateLimiter().
const (
	DefaultRateLimit  = 60
	DefaultRateWindow = time.Minute
)

// client tracks one IP inside its current fixed window.
type client struct {
	windowStart time.Time
	count       int
}

// RateLimiter limits requests per client IP with the default limits.
//
// Usage:
//
//	router := gin.New()
//	router.GET("/", middleware.RateLimiter(), handler.Page)
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{
//	    "error": "rate limit exceeded"
//	}
func RateLimiter() gin.HandlerFunc {
	return NewRateLimiter(DefaultRateLimit, DefaultRateWindow)
}

// NewRateLimiter allows up to limit requests per IP in fixed windows of the
// given length. A window starts at a client's first request and is not
// extended by later ones, so a blocked client recovers when it ends.
//
// Each call owns its own in-memory store; multi-instance deployments need a
// shared store instead.
func NewRateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		t := time.Now()

		mu.Lock()
		cl, ok := clients[ip]
		if !ok || t.Sub(cl.windowStart) >= window {
			cl = &client{windowStart: t}
			clients[ip] = cl
		}
		cl.count++
		exceeded := cl.count > limit

		// Drop idle clients so the map does not grow without bound.
		if len(clients) > 1024 {
			for k, v := range clients {
				if t.Sub(v.windowStart) >= window {
					delete(clients, k)
				}
			}
		}
		mu.Unlock()

		if exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
