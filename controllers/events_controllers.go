package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/reservation-app/events"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Sesuaikan dengan kebutuhan keamanan
	},
}

// EventsHandler -> endpoint WebSocket dashboard owner/staff
func EventsHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if role != "owner" && role != "staff" {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	events.RegisterClient(ws, role)

	// Baca pesan sampai koneksi putus
	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}

	events.UnregisterClient(ws)
}
