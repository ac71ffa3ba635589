package models

import "time"

// ClosedDay adalah kalender tutup restoran. Resolver menolak tanggal yang
// terdaftar di sini dengan sinyal "closed", bukan "penuh".
type ClosedDay struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;uniqueIndex:idx_closed_day" json:"restaurant_id"`
	Date         string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_closed_day" json:"date"` // "YYYY-MM-DD"
	Reason       string    `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
