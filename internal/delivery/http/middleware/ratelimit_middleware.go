package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"hospital-management/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Rate limiting defaults
	defaultRateLimit  = 5                // 5 attempts
	defaultRateWindow = 15 * time.Minute // per 15 minutes
)

// RateLimitConfig holds configuration for rate limiting. TrustedProxies
// lists the addresses or CIDRs whose X-Forwarded-For and X-Real-IP headers
// are believed; with none, the client is always the connection peer.
type RateLimitConfig struct {
	Limit          int
	Window         time.Duration
	TrustedProxies []string
}

// RateLimiter counts requests per endpoint and client IP in fixed windows.
type RateLimiter struct {
	redisClient *redis.Client
	log         *logrus.Logger
	config      RateLimitConfig
	trusted     []netip.Prefix
}

func NewRateLimiter(redisClient *redis.Client, log *logrus.Logger, config RateLimitConfig) *RateLimiter {
	if config.Limit <= 0 {
		config.Limit = defaultRateLimit
	}
	if config.Window <= 0 {
		config.Window = defaultRateWindow
	}
	return &RateLimiter{
		redisClient: redisClient,
		log:         log,
		config:      config,
		trusted:     parseTrustedProxies(log, config.TrustedProxies),
	}
}

func parseTrustedProxies(log *logrus.Logger, entries []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				log.Warnf("Ignoring invalid trusted proxy %q: %v", entry, err)
				continue
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			log.Warnf("Ignoring invalid trusted proxy %q: %v", entry, err)
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes
}

// RateLimitKey is the Redis counter key for one endpoint and client.
func RateLimitKey(endpoint, clientIP string) string {
	return fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)
}

func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := l.clientIP(r)
		endpoint := r.URL.Path

		allowed, err := l.allow(r.Context(), RateLimitKey(endpoint, clientIP))
		if err != nil {
			// Redis unavailable: let the request through
			l.log.WithFields(logrus.Fields{
				"ip":       clientIP,
				"endpoint": endpoint,
			}).Warnf("Rate limit check failed: %+v", err)
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			l.log.WithFields(logrus.Fields{
				"ip":       clientIP,
				"endpoint": endpoint,
			}).Warn("Rate limit exceeded")
			response.TooManyRequests(w, "Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow increments the counter and reports whether it is within the limit.
// The window starts at the first request.
func (l *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	count, err := l.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := l.redisClient.Expire(ctx, key, l.config.Window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(l.config.Limit), nil
}

// clientIP is the connection peer unless the peer is a trusted proxy. Then
// X-Forwarded-For is walked from the right and the first untrusted hop is
// the client; X-Real-IP is used when that header is absent.
func (l *RateLimiter) clientIP(r *http.Request) string {
	peer := remoteHost(r.RemoteAddr)
	if !l.isTrusted(peer) {
		return peer
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !l.isTrusted(hop) || i == 0 {
				return hop
			}
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return peer
}

func (l *RateLimiter) isTrusted(host string) bool {
	if len(l.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range l.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
