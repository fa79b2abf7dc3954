package ratelimit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"roomly/internal/shared/utils/response"
)

// Middleware classifies the route and enforces the matching limit
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.Request.URL.Path, c.Request.Method)

		result, err := limiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			// Redis hiccups must not take the API down with them
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil, gin.H{
				"retry_after": result.ResetTime,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitType maps a request path onto a limit class
func getRateLimitType(path, method string) RateLimitType {
	path = strings.ToLower(path)

	switch {
	case strings.Contains(path, "/health") || strings.Contains(path, "/ping") || strings.Contains(path, "/status"):
		return RateLimitTypeHealth
	case strings.Contains(path, "/locks"):
		// Lock acquisition and confirmation guard the booking invariant
		return RateLimitTypeBookingCritical
	case strings.Contains(path, "/bookings"):
		return RateLimitTypeBooking
	case strings.Contains(path, "/rooms") || strings.Contains(path, "/availability"):
		return RateLimitTypePublic
	default:
		return RateLimitTypeDefault
	}
}

// getClientIP extracts the real client IP, honoring proxy headers
func getClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := c.ClientIP()
	if ip == "" {
		ip = c.Request.RemoteAddr
		if idx := strings.LastIndex(ip, ":"); idx != -1 {
			ip = ip[:idx]
		}
	}

	return ip
}
