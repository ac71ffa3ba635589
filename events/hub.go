package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/reservation-app/models"
)

// Event types
const (
	EventReservationCreate = "reservation_create"
	EventReservationUpdate = "reservation_update"
	EventReservationCancel = "reservation_cancel"
	EventLimitUpdate       = "limit_update"
	EventTableUpdate       = "table_update"
	EventClosedDayUpdate   = "closed_day_update"
	EventSettingsUpdate    = "settings_update"
	EventNotification      = "notification"
	EventDashboardUpdate   = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client dashboard (owner, staff) dan menyiarkan
// perubahan reservasi/limit/meja secara real-time
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastReservationCreate -> reservasi baru masuk
func BroadcastReservationCreate(reservation models.Reservation) {
	broadcast(Message{
		Event: EventReservationCreate,
		Data:  reservation,
	})
}

// BroadcastReservationUpdate -> status reservasi berubah (seen/attended)
func BroadcastReservationUpdate(reservation models.Reservation) {
	broadcast(Message{
		Event: EventReservationUpdate,
		Data:  reservation,
	})
}

// BroadcastReservationCancel -> reservasi dibatalkan
func BroadcastReservationCancel(reservation models.Reservation) {
	broadcast(Message{
		Event: EventReservationCancel,
		Data:  reservation,
	})
}

// BroadcastLimitUpdate -> reservation limit berubah
func BroadcastLimitUpdate(data interface{}) {
	broadcast(Message{
		Event: EventLimitUpdate,
		Data:  data,
	})
}

// BroadcastTableUpdate -> inventaris meja berubah
func BroadcastTableUpdate(data interface{}) {
	broadcast(Message{
		Event: EventTableUpdate,
		Data:  data,
	})
}

// BroadcastNotification -> notifikasi tersimpan oleh notifier
func BroadcastNotification(notification models.Notification) {
	broadcast(Message{
		Event: EventNotification,
		Data:  notification,
	})
}

// BroadcastMessage -> kirim message apa adanya
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshalling broadcast message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Error broadcasting to client: %v", err)
			conn.Close()
			delete(hub.clients, conn)
		}
	}
}
