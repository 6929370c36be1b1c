package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"resource-hub-go/pkg/log"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RateLimit rejects requests over quota with 429. Requests are keyed by scope and client IP.
// A nil limiter lets every request through.
func RateLimit(limiter Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := scope + ":" + c.ClientIP()
		if !limiter.Allow(c.Request.Context(), key) {
			log.Warnw("rate limit exceeded", "scope", scope, "clientIP", c.ClientIP())
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Demasiadas solicitudes, intenta más tarde"})
			return
		}
		c.Next()
	}
}
