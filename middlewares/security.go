package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// apiCSP allows nothing to load from API responses except the KDS socket.
const apiCSP = "default-src 'none'; connect-src 'self' ws: wss:; frame-ancestors 'none'"

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Content-Security-Policy", apiCSP)
		c.Header("Referrer-Policy", "no-referrer")

		if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		// Order and customer data must not sit in shared caches.
		if c.GetHeader("Authorization") != "" || strings.HasPrefix(c.Request.URL.Path, "/admin") {
			c.Header("Cache-Control", "no-store")
		}

		c.Next()
	}
}
