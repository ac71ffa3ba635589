package models

import (
	"time"
)

// Jenis notifikasi yang dikirim oleh notifier queue
const (
	NotificationReservationCreated   = "reservation_created"
	NotificationReservationCancelled = "reservation_cancelled"
	NotificationReservationReminder  = "reservation_reminder"
)

type Notification struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	RestaurantID  uint        `gorm:"not null;index" json:"restaurant_id"`
	ReservationID *uint       `gorm:"index" json:"reservation_id,omitempty"`
	Reservation   Reservation `gorm:"foreignKey:ReservationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Kind          string      `gorm:"type:varchar(50);not null" json:"kind"`
	Message       string      `gorm:"type:text;not null" json:"message"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
}
