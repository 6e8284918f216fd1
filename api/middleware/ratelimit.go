package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/keyhole/config"
	"github.com/use-agent/keyhole/models"
	"golang.org/x/time/rate"
)

// limiterPool tracks one token bucket per identity (API key when the
// auth middleware set one, client IP otherwise). Idle buckets are
// dropped by a periodic sweep so the map stays bounded.
type limiterPool struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rps     rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterPool(cfg config.RateLimitConfig) *limiterPool {
	return &limiterPool{
		buckets: make(map[string]*bucket),
		rps:     rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
	}
}

// allow consumes one token from the identity's bucket, creating the
// bucket on first sight.
func (p *limiterPool) allow(identity string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.buckets[identity]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(p.rps, p.burst)}
		p.buckets[identity] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

// evict drops every bucket last seen before cutoff.
func (p *limiterPool) evict(cutoff time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, b := range p.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(p.buckets, id)
		}
	}
}

func (p *limiterPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets)
}

// RateLimit returns per-identity token-bucket rate limiting middleware
// on golang.org/x/time/rate. Rate, burst and the eviction schedule all
// come from RateLimitConfig.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	pool := newLimiterPool(cfg)

	// Sweep runs only when configured; a zero interval disables it.
	if cfg.EvictInterval > 0 && cfg.EvictAfter > 0 {
		go func() {
			ticker := time.NewTicker(cfg.EvictInterval)
			defer ticker.Stop()
			for range ticker.C {
				pool.evict(time.Now().Add(-cfg.EvictAfter))
			}
		}()
	}

	return func(c *gin.Context) {
		if !pool.allow(identityFor(c)) {
			reject(c, http.StatusTooManyRequests, models.ErrCodeRateLimited,
				"rate limit exceeded, please slow down")
			return
		}
		c.Next()
	}
}

// identityFor prefers the authenticated API key and falls back to the
// client IP, so unauthenticated deployments still get per-client limits.
func identityFor(c *gin.Context) string {
	if key, ok := c.Get(apiKeyContextKey); ok {
		if s, ok := key.(string); ok && s != "" {
			return s
		}
	}
	return c.ClientIP()
}
