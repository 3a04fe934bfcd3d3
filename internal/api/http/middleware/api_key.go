package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKey gates a route group behind the X-API-Key header. Callers only
// install it when a key is configured.
func APIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")

		if key == "" || key != expected {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid API key",
			})
			return
		}

		c.Next()
	}
}
