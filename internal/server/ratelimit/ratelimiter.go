package ratelimit

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Limiter counts requests per client in fixed windows. Window state lives in
// an expiring cache, so stale clients evict themselves.
type Limiter struct {
	windows *cache.Cache
}

// NewLimiter creates a limiter with in-memory window tracking.
func NewLimiter() *Limiter {
	return &Limiter{
		windows: cache.New(cache.NoExpiration, 5*time.Minute),
	}
}

// Allow returns true if the client is within limit requests for the current
// window. The first request of a window opens it with the window's TTL.
func (l *Limiter) Allow(client string, limit int, windowSeconds int) bool {
	if limit <= 0 || windowSeconds <= 0 {
		return true
	}

	window := time.Duration(windowSeconds) * time.Second
	if err := l.windows.Add(client, 1, window); err == nil {
		return true
	}

	count, err := l.windows.IncrementInt(client, 1)
	if err != nil {
		// Window expired between Add and Increment; start a fresh one.
		l.windows.Set(client, 1, window)
		return true
	}

	return count <= limit
}
