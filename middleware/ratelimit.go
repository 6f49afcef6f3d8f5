package middleware

import (
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"scarlett-api/types"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterEntry holds a rate limiter and the last time it was seen.
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiterStore is a threadsafe store mapping client IPs to limiter
// entries. A background janitor removes stale entries so memory stays
// bounded no matter how many clients come and go.
type ipLimiterStore struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	staleAfter time.Duration
}

func newIPLimiterStore(staleAfter time.Duration) *ipLimiterStore {
	store := &ipLimiterStore{
		entries:    make(map[string]*limiterEntry),
		staleAfter: staleAfter,
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			store.cleanup()
		}
	}()
	return store
}

func (s *ipLimiterStore) getOrCreate(key string, r rate.Limit, burst int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.lastSeen = time.Now()
		return e.limiter
	}
	lim := rate.NewLimiter(r, burst)
	s.entries[key] = &limiterEntry{limiter: lim, lastSeen: time.Now()}
	return lim
}

func (s *ipLimiterStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.staleAfter)
	for key, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, key)
		}
	}
}

// RateLimitMiddleware applies a per-IP token bucket to every request.
// Defaults (10 req/s, burst 30) suit a single-user catalog browsed by a
// gallery frontend; RATE_LIMIT_RPS and RATE_LIMIT_BURST override them.
func RateLimitMiddleware() gin.HandlerFunc {
	rps := envFloat("RATE_LIMIT_RPS", 10)
	burst := envInt("RATE_LIMIT_BURST", 30)
	store := newIPLimiterStore(10 * time.Minute)

	return func(c *gin.Context) {
		lim := store.getOrCreate(c.ClientIP(), rate.Limit(rps), burst)
		if !lim.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				types.NewErrorResponse(types.ErrorCodeInvalidRequest, "Too many requests"))
			return
		}
		c.Next()
	}
}

func envFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
