package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth guards the admin routes with a static API key supplied in
// the X-API-Key header. An empty configured key rejects everything, so a
// misconfigured deployment fails closed.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-API-Key")
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or missing API key",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
