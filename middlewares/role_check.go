package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/reservation-app/utils"
)

// RequireOwner -> endpoint setting restoran, limit, dan kalender tutup hanya
// untuk owner
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if userRole != "owner" {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("owner access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireStaff -> owner atau staff (dashboard reservasi harian)
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if userRole != "staff" && userRole != "owner" {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("staff access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
