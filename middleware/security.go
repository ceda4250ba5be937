package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// SecurityHeaders adds security-related headers to all responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent clickjacking
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Header("Content-Security-Policy", "default-src 'self'; img-src 'self' data: https:; style-src 'self' 'unsafe-inline'; font-src 'self' data:; connect-src 'self'")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.Header("Cache-Control", "no-store")
		}

		c.Next()
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	ips   map[string]*limiterEntry
	mu    sync.Mutex
	rate  rate.Limit
	burst int
	ttl   time.Duration
}

// NewRateLimiter creates a limiter allowing perMinute requests per IP with the
// given burst. Entries idle for longer than ttl are dropped by Cleanup.
func NewRateLimiter(perMinute, burst int, ttl time.Duration) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 100
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		ips:   make(map[string]*limiterEntry),
		rate:  rate.Every(time.Minute / time.Duration(perMinute)),
		burst: burst,
		ttl:   ttl,
	}
}

// GetLimiter returns the rate limiter for the given IP
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.ips[ip]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.ips[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// Cleanup removes limiters that have not been used within the ttl.
func (rl *RateLimiter) Cleanup(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for ip, e := range rl.ips {
		if now.Sub(e.lastSeen) > rl.ttl {
			delete(rl.ips, ip)
			removed++
		}
	}
	return removed
}

// Size reports how many IPs are tracked.
func (rl *RateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.ips)
}

// StartCleanup runs Cleanup every ttl until stop is closed.
func (rl *RateLimiter) StartCleanup(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(rl.ttl)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				rl.Cleanup(now)
			case <-stop:
				return
			}
		}
	}()
}

// RateLimit rejects requests from IPs that have exhausted their bucket.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// CORS allows the configured origins. A single "*" allows any origin, in
// which case credentials are not allowed.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		for _, o := range origins {
			cfg.AllowOrigins = append(cfg.AllowOrigins, strings.TrimSuffix(o, "/"))
		}
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
