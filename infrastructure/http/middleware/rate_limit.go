package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/infrastructure/http/response"
	"github.com/learnhub/learnhub/infrastructure/service/logger"
)

// RateLimitPolicy bounds attempts per client IP inside a fixed window.
type RateLimitPolicy struct {
	Attempts      int
	Window        time.Duration
	BlockDuration time.Duration

	// TrustProxyHeaders keys on X-Forwarded-For / X-Real-IP. Enable only behind a proxy that
	// overwrites them; otherwise a client can pick its own key.
	TrustProxyHeaders bool
}

type RateLimitMiddleware struct {
	rateLimitService inbound.RateLimitService
	policy           RateLimitPolicy
	logger           logger.Logger
}

func NewRateLimitMiddleware(rateLimitService inbound.RateLimitService, policy RateLimitPolicy, logger logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		policy:           policy,
		logger:           logger,
	}
}

// Limit counts every request under "<scope>:ip:<client ip>". Once the window's attempts are
// used up the key is blocked for BlockDuration. Store failures let the request through.
func (m *RateLimitMiddleware) Limit(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.rateLimitService == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			clientIP := getClientIP(r, m.policy.TrustProxyHeaders)
			key := fmt.Sprintf("%s:ip:%s", scope, clientIP)

			isBlocked, err := m.rateLimitService.IsBlocked(ctx, key)
			if err != nil {
				m.logger.Error(ctx, "Failed to check block status", err, map[string]interface{}{
					"ip":  clientIP,
					"key": key,
				})
			}
			if isBlocked {
				logger.LogSecurityEvent(ctx, m.logger, "rate_limit_blocked", "MEDIUM", map[string]interface{}{
					"ip":        clientIP,
					"path":      r.URL.Path,
					"key":       key,
					"userAgent": r.UserAgent(),
				})
				m.tooMany(w)
				return
			}

			allowed, err := m.rateLimitService.CheckLimit(ctx, key, m.policy.Attempts, m.policy.Window)
			if err != nil {
				m.logger.Error(ctx, "Failed to check rate limit", err, map[string]interface{}{
					"ip":  clientIP,
					"key": key,
				})
				allowed = true
			}

			if !allowed {
				if err := m.rateLimitService.Block(ctx, key, m.policy.BlockDuration, "Rate limit exceeded"); err != nil {
					m.logger.Error(ctx, "Failed to block IP", err, map[string]interface{}{
						"ip":  clientIP,
						"key": key,
					})
				}
				logger.LogSecurityEvent(ctx, m.logger, "rate_limit_exceeded", "HIGH", map[string]interface{}{
					"ip":        clientIP,
					"path":      r.URL.Path,
					"key":       key,
					"userAgent": r.UserAgent(),
				})
				m.tooMany(w)
				return
			}

			if err := m.rateLimitService.Increment(ctx, key, m.policy.Window); err != nil {
				m.logger.Error(ctx, "Failed to count attempt", err, map[string]interface{}{
					"ip":  clientIP,
					"key": key,
				})
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *RateLimitMiddleware) tooMany(w http.ResponseWriter) {
	w.Header().Set("Retry-After", strconv.Itoa(int(m.policy.BlockDuration.Seconds())))
	response.TooManyRequests(w, "Too many requests. Please try again later.")
}

// getClientIP returns the peer address, or the proxy-reported client when trustProxy is set.
func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// X-Forwarded-For can contain multiple IPs, take the first one
			if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
				return ip
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
