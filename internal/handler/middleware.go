package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const contentSecurityPolicy = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; form-action 'self'; frame-ancestors 'none'"

// SecurityHeaders adds security response headers (CSP, X-Frame-Options, etc.)
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("X-XSS-Protection", "0")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		next.ServeHTTP(w, r)
	})
}

// RateLimiter limits requests per client IP over a sliding one-minute window.
type RateLimiter struct {
	maxPerMinute      int
	trustedProxyCount int
	now               func() time.Time

	mu      sync.Mutex
	clients map[string][]time.Time
}

// NewRateLimiter creates a limiter allowing maxPerMinute requests per IP.
// Stale clients are swept until ctx is done. One trusted reverse proxy is
// assumed in front of the server.
func NewRateLimiter(ctx context.Context, maxPerMinute int) *RateLimiter {
	rl := &RateLimiter{
		maxPerMinute:      maxPerMinute,
		trustedProxyCount: 1,
		now:               time.Now,
		clients:           make(map[string][]time.Time),
	}
	go rl.cleanupLoop(ctx)
	return rl
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	windowStart := rl.now().Add(-time.Minute)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, stamps := range rl.clients {
		stamps = prune(stamps, windowStart)
		if len(stamps) == 0 {
			delete(rl.clients, ip)
			continue
		}
		rl.clients[ip] = stamps
	}
}

// prune drops timestamps at or before windowStart, reusing the backing array.
func prune(stamps []time.Time, windowStart time.Time) []time.Time {
	valid := stamps[:0]
	for _, ts := range stamps {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}
	return valid
}

// allow records a request from ip. When the window is full it returns false
// and how long until the oldest request leaves it.
func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	stamps := prune(rl.clients[ip], now.Add(-time.Minute))
	if len(stamps) >= rl.maxPerMinute {
		rl.clients[ip] = stamps
		return false, stamps[0].Add(time.Minute).Sub(now)
	}
	rl.clients[ip] = append(stamps, now)
	return true, 0
}

// Middleware rejects requests over the limit with 429 and Retry-After.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		ok, retryAfter := rl.allow(ip)
		if !ok {
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", retryAfterSeconds(retryAfter))
			http.Error(w, "Too many requests, please slow down.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// clientIP reads the entry our proxy appended to X-Forwarded-For, counted
// from the right, so clients cannot spoof it.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && rl.trustedProxyCount > 0 {
		parts := strings.Split(xff, ",")
		idx := len(parts) - rl.trustedProxyCount
		if idx >= 0 && idx < len(parts) {
			return strings.TrimSpace(parts[idx])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
