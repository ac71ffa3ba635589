package models

import "time"

// Reservation adalah booking satu slot oleh tamu. Baris tidak pernah dihapus:
// pembatalan hanya menandai flag Cancelled supaya riwayat tetap ada untuk
// reminder dan thank-you job.
type Reservation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Code           string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"code"`
	RestaurantID   uint      `gorm:"not null;index:idx_reservation_slot" json:"restaurant_id"`
	TableID        *uint     `gorm:"index" json:"table_id,omitempty"`
	Table          *Table    `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Date           string    `gorm:"type:varchar(10);not null;index:idx_reservation_slot" json:"date"` // "YYYY-MM-DD"
	Time           string    `gorm:"type:varchar(5);not null;index:idx_reservation_slot" json:"time"`  // "HH:MM"
	People         int       `gorm:"not null" json:"people"`
	GuestName      string    `gorm:"type:varchar(100);not null" json:"guest_name"`
	GuestEmail     string    `gorm:"type:varchar(255)" json:"guest_email"`
	GuestPhone     string    `gorm:"type:varchar(50)" json:"guest_phone"`
	SpecialRequest string    `gorm:"type:text" json:"special_request"`
	Occasion       string    `gorm:"type:varchar(100)" json:"occasion"`
	DepositCost    float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"deposit_cost"`
	Seen           bool      `gorm:"not null;default:false" json:"seen"`
	Attended       bool      `gorm:"not null;default:false" json:"attended"`
	Cancelled      bool      `gorm:"not null;default:false" json:"cancelled"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
