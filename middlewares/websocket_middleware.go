package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

// WebSocketAuthMiddleware authenticates ws upgrades via a query token,
// since browsers cannot set headers on websocket requests.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}
