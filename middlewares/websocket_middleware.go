package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/reservation-app/utils"
)

// WebSocketAuthMiddleware -> browser tidak bisa set header pada koneksi WS,
// jadi token dashboard diterima lewat query string
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
		c.Set("userID", claims.UserID)

		c.Next()
	}
}
