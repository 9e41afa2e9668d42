package middleware

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Srinivasc16/tempx/internal/server/ratelimit"
)

// Manager wires all HTTP middlewares with shared dependencies.
type Manager struct {
	limiter       *ratelimit.Limiter
	limit         int
	windowSeconds int
}

// NewManager builds a middleware manager for the HTTP server.
func NewManager(limiter *ratelimit.Limiter, limit, windowSeconds int) *Manager {
	return &Manager{
		limiter:       limiter,
		limit:         limit,
		windowSeconds: windowSeconds,
	}
}

// CORS allows any origin. The API is consumed by browser frontends served
// from elsewhere.
func (m *Manager) CORS() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = []string{"*"}
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	return cors.New(cfg)
}

// RateLimit enforces a fixed-window request limit per client IP.
func (m *Manager) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		if !m.limiter.Allow(c.ClientIP(), m.limit, m.windowSeconds) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
