package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"todoweb/internal/adapter/http/helper"

	"github.com/gin-gonic/gin"
)

const MsgCrossSiteRequest = "The form could not be verified. Reload the page and try again."

type CSRFConfig struct {
	// AllowedOrigins are accepted in addition to the request's own origin.
	AllowedOrigins []string
}

// CSRF rejects state-changing requests whose Origin (or Referer) is not
// the site itself or one of the allowed origins.
func CSRF(config CSRFConfig) gin.HandlerFunc {
	allowedSet := make(map[string]bool)

	for _, origin := range config.AllowedOrigins {
		allowedSet[normalizeOrigin(origin)] = true
	}

	return func(c *gin.Context) {
		method := c.Request.Method

		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")

		if origin == "" {
			origin = extractOrigin(c.GetHeader("Referer"))
		}

		if origin == "" {
			rejectCrossSite(c)
			return
		}

		normalized := normalizeOrigin(origin)

		if normalized != requestOrigin(c) && !allowedSet[normalized] {
			rejectCrossSite(c)
			return
		}

		c.Next()
	}
}

func rejectCrossSite(c *gin.Context) {
	helper.RenderError(c, http.StatusForbidden, MsgCrossSiteRequest)
	c.Abort()
}

func requestOrigin(c *gin.Context) string {
	scheme := "http"

	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}

	return normalizeOrigin(scheme + "://" + c.Request.Host)
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(origin), "/")
}

func extractOrigin(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)

	if err != nil || parsed.Host == "" {
		return ""
	}

	return parsed.Scheme + "://" + parsed.Host
}
