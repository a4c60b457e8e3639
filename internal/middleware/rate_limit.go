package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"business-agent-service/pkg/response"
)

// RateLimit enforces a per-client request budget. Each client IP gets its
// own token bucket sized to the configured per-minute rate; idle buckets
// expire from the cache.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.perMin <= 0 {
			c.Next()
			return
		}

		key := c.ClientIP()
		limiter, ok := m.limiters.Get(key)
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(float64(m.perMin)/60.0), m.perMin)
			m.limiters.Add(key, limiter)
		}

		if !limiter.Allow() {
			m.l.Warnf(c.Request.Context(), "rate limit exceeded for %s", key)
			response.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
