// Package middleware holds the request-surface middleware: API key
// authentication and per-identity rate limiting. Rejections use the same
// response envelope the scrape handler emits, so a client sees one error
// shape regardless of where a request died.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/keyhole/models"
)

// apiKeyContextKey is where the auth middleware stores the caller's key
// for downstream middleware (the rate limiter keys its buckets on it).
const apiKeyContextKey = "api_key"

// Auth returns API key authentication middleware. Keys are read from
// X-API-Key or Authorization: Bearer. With no keys configured the
// middleware is a pass-through, so a local deployment needs no setup.
func Auth(apiKeys []string) gin.HandlerFunc {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys[k] = struct{}{}
		}
	}
	if len(keys) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := requestAPIKey(c)
		if key == "" {
			reject(c, http.StatusUnauthorized, models.ErrCodeUnauthorized,
				"missing API key: send X-API-Key or Authorization: Bearer <key>")
			return
		}
		if _, ok := keys[key]; !ok {
			reject(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, "invalid API key")
			return
		}
		c.Set(apiKeyContextKey, key)
		c.Next()
	}
}

// requestAPIKey reads the caller's key: X-API-Key wins, then a Bearer
// token. Anything else in Authorization is not a key.
func requestAPIKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	const bearer = "Bearer "
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, bearer) {
		return strings.TrimSpace(auth[len(bearer):])
	}
	return ""
}

// reject aborts the request with the service's standard error envelope.
func reject(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.ScrapeResponse{
		Success: false,
		Images:  []models.Image{},
		Links:   []models.Link{},
		Error:   &models.ErrorDetail{Code: code, Message: message},
	})
}
