package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/rmitchellscott/ditherlab/internal/logging"
)

// DitherRateLimiter enforces a per-client-IP token bucket on the image
// processing endpoints. Limits live in memory; entries idle for an hour
// are dropped by a background sweep.
type DitherRateLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewDitherRateLimiter creates a limiter allowing rps requests per second
// with the given burst per client IP.
func NewDitherRateLimiter(rps float64, burst int) *DitherRateLimiter {
	rl := &DitherRateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*clientLimiter),
	}
	go rl.cleanupRoutine()
	return rl
}

// RateLimit rejects requests exceeding the per-IP budget with 429.
func (rl *DitherRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.allow(ip) {
			logging.Warn("Rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *DitherRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	cl, ok := rl.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	rl.mu.Unlock()
	return cl.limiter.Allow()
}

func (rl *DitherRateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-time.Hour)
		rl.mu.Lock()
		for ip, cl := range rl.clients {
			if cl.lastSeen.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}
