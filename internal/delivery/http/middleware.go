package http

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/plateup/backend/internal/domain"
)

// CORSMiddleware handles CORS for the meal-logging clients
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the origin is in the allowed list.
// A trailing "*" matches any suffix.
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		if strings.HasSuffix(allowed, "*") {
			if strings.HasPrefix(origin, strings.TrimSuffix(allowed, "*")) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// LoggerMiddleware logs requests
func LoggerMiddleware() gin.HandlerFunc {
	return gin.Logger()
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.Recovery()
}

const (
	// DefaultLimiterIdleTTL is how long an IP may stay quiet before its
	// bucket is forgotten. A bucket refills completely within a minute, so
	// a forgotten client restarts with the same budget it would have had.
	DefaultLimiterIdleTTL = 3 * time.Minute

	// DefaultMaxTrackedIPs caps the number of buckets held at once
	DefaultMaxTrackedIPs = 10000
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP. Buckets idle for
// longer than idleTTL are dropped, and at most maxIPs are held at once.
type IPRateLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	maxIPs  int
	now     func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewIPRateLimiter allows perMinute requests per client IP with a burst of
// perMinute. It returns nil when perMinute <= 0, which disables limiting.
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	return newIPRateLimiter(perMinute, DefaultLimiterIdleTTL, DefaultMaxTrackedIPs, time.Now)
}

func newIPRateLimiter(perMinute int, idleTTL time.Duration, maxIPs int, now func() time.Time) *IPRateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &IPRateLimiter{
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		idleTTL:   idleTTL,
		maxIPs:    maxIPs,
		now:       now,
		visitors:  make(map[string]*visitor),
		lastSweep: now(),
	}
}

// Allow reports whether a request from ip may proceed now
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.limiter(ip).AllowN(l.now(), 1)
}

// Tracked returns the number of client IPs currently holding a bucket
func (l *IPRateLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func (l *IPRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.removeIdle(now)
	}

	v, ok := l.visitors[ip]
	if !ok {
		if len(l.visitors) >= l.maxIPs {
			l.evictOne(now)
		}
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// removeIdle drops buckets not used within idleTTL. Callers hold mu.
func (l *IPRateLimiter) removeIdle(now time.Time) int {
	removed := 0
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idleTTL {
			delete(l.visitors, ip)
			removed++
		}
	}
	l.lastSweep = now
	return removed
}

// evictOne makes room for a new bucket, preferring idle ones and otherwise
// the least recently seen. Callers hold mu.
func (l *IPRateLimiter) evictOne(now time.Time) {
	if l.removeIdle(now) > 0 {
		return
	}

	var oldestIP string
	var oldest time.Time
	found := false
	for ip, v := range l.visitors {
		if !found || v.lastSeen.Before(oldest) {
			oldestIP, oldest, found = ip, v.lastSeen, true
		}
	}
	delete(l.visitors, oldestIP)
}

// RateLimitMiddleware rejects requests over the per-IP budget with 429.
// A nil limiter lets every request through.
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if !limiter.Allow(ip) {
			log.Printf("[RATELIMIT] rejected %s %s from %s", c.Request.Method, c.Request.URL.Path, ip)
			respondError(c, domain.ErrRateLimited)
			return
		}

		c.Next()
	}
}
