package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-scheduler/internal/cache"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
)

// RateLimit allows perMinute requests per client IP and route. Limiter
// failures let the request through.
func RateLimit(limiter cache.Limiter, perMinute int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 {
			c.Next()
			return
		}

		key := c.FullPath() + "|" + c.ClientIP()
		ok, err := limiter.Allow(c.Request.Context(), key, perMinute, time.Minute)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.Header("Retry-After", "60")
			httperr.TooManyRequests(c, "rate_limited", "Too many requests. Try again in a minute.")
			c.Abort()
			return
		}
		c.Next()
	}
}
