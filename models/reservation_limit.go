package models

import "time"

// ReservationLimit adalah override kapasitas per (restoran, tanggal, slot) yang
// diset owner. Unique index komposit menjamin maksimal satu baris per slot;
// insert duplikat gagal sebagai konflik, bukan error generik.
type ReservationLimit struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RestaurantID    uint      `gorm:"not null;uniqueIndex:idx_limit_slot" json:"restaurant_id"`
	Date            string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_limit_slot" json:"date"`     // "YYYY-MM-DD"
	TimeSlot        string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_limit_slot" json:"time_slot"` // "HH:MM"
	MaxReservations int       `gorm:"not null" json:"max_reservations"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
