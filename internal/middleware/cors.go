package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// wildcardOrigin represents an allowed-origin pattern of the form
// "https://*.example.com". Exactly one subdomain label may stand in for
// the wildcard; nested subdomains do not match.
type wildcardOrigin struct {
	scheme string
	suffix string
}

// parseWildcardOrigin parses a wildcard pattern, returning nil for
// exact origins and malformed patterns.
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	var scheme string
	switch {
	case strings.HasPrefix(pattern, "https://"):
		scheme = "https://"
	case strings.HasPrefix(pattern, "http://"):
		scheme = "http://"
	default:
		return nil
	}

	host := pattern[len(scheme):]
	if !strings.HasPrefix(host, "*.") {
		return nil
	}

	suffix := host[1:] // keep the leading dot
	if strings.Contains(suffix, "*") {
		return nil
	}
	// Require at least two labels after the wildcard ("*.com" is too broad)
	if strings.Count(suffix, ".") < 2 {
		return nil
	}

	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

// matches reports whether an Origin header value matches the pattern
func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) || !strings.HasSuffix(origin, w.suffix) {
		return false
	}

	label := origin[len(w.scheme) : len(origin)-len(w.suffix)]
	if label == "" || strings.ContainsAny(label, "./") {
		return false
	}

	return true
}

// CORS middleware to handle cross-origin requests.
// CORS_ALLOWED_ORIGINS holds a comma-separated list of exact origins
// and wildcard patterns ("https://*.macrolog.pages.dev"); when unset,
// all origins are allowed.
func CORS() gin.HandlerFunc {
	allowedOriginsStr := os.Getenv("CORS_ALLOWED_ORIGINS")
	allowAll := allowedOriginsStr == ""

	var exactOrigins []string
	var wildcardOrigins []*wildcardOrigin
	if !allowAll {
		for _, pattern := range strings.Split(allowedOriginsStr, ",") {
			pattern = strings.TrimSpace(pattern)
			if wildcard := parseWildcardOrigin(pattern); wildcard != nil {
				wildcardOrigins = append(wildcardOrigins, wildcard)
				continue
			}
			exactOrigins = append(exactOrigins, pattern)
		}
	}

	originAllowed := func(origin string) bool {
		for _, allowed := range exactOrigins {
			if origin == allowed {
				return true
			}
		}
		for _, wildcard := range wildcardOrigins {
			if wildcard.matches(origin) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" {
			if originAllowed(origin) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			} else if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
