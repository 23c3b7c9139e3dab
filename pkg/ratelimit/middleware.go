package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"guideomra/internal/shared/utils/response"
	"guideomra/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware enforces the per-IP budget of the route's rate limit type.
// A Redis failure lets the request through.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		limitType := getRateLimitType(c.Request.Method, path)

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			logger.GetDefault().LogDegraded(c.Request.Context(), "ratelimit", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			logger.GetDefault().LogRateLimitExceeded(c.Request.Context(), clientIP, path)
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Trop de requêtes, veuillez réessayer plus tard", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

func getRateLimitType(method, path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"):
		return RateLimitTypeHealth

	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAuth

	// Submission and quoting hit the database or the guard on every call
	case method == http.MethodPost && strings.HasSuffix(path, "/reservations"),
		strings.HasSuffix(path, "/reservations/quote"):
		return RateLimitTypeReservationCritical

	case strings.Contains(path, "/reservations"):
		return RateLimitTypeReservation

	case strings.Contains(path, "/guide/"):
		return RateLimitTypeGuide

	case strings.Contains(path, "/services"),
		strings.Contains(path, "/guides"),
		strings.Contains(path, "/calendar"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// extracts real client IP
func getClientIP(c *gin.Context) string {
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return ip
}
