package models

import "time"

type Restaurant struct {
	ID                     uint          `gorm:"primaryKey" json:"id"`
	OwnerID                uint          `gorm:"not null;index" json:"owner_id"`
	Owner                  User          `gorm:"foreignKey:OwnerID" json:"-"`
	Name                   string        `gorm:"type:varchar(100);not null" json:"name"`
	OpenTime               string        `gorm:"type:varchar(5)" json:"open_time"`  // "HH:MM"
	CloseTime              string        `gorm:"type:varchar(5)" json:"close_time"` // "HH:MM"
	SlotDurationMinutes    int           `json:"slot_duration_minutes"`
	TableAssignmentMode    string        `gorm:"type:varchar(20);not null;default:'automatic'" json:"table_assignment_mode"`
	DefaultSlotCapacity    int           `gorm:"not null;default:0" json:"default_slot_capacity"`
	CapacityBasis          string        `gorm:"type:varchar(20);not null;default:'reservations'" json:"capacity_basis"`
	AllowHeadcountFallback bool          `gorm:"not null;default:true" json:"allow_headcount_fallback"`
	DepositTiers           []DepositTier `gorm:"foreignKey:RestaurantID" json:"deposit_tiers,omitempty"`
	CreatedAt              time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time     `gorm:"not null" json:"updated_at"`
}

type DepositTier struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	RestaurantID uint    `gorm:"not null;index" json:"restaurant_id"`
	MinPeople    int     `gorm:"not null" json:"min_people"`
	Cost         float64 `gorm:"type:decimal(10,2);not null" json:"cost"`
}

// DepositFor -> biaya deposit untuk jumlah tamu tertentu (tier terbesar dengan min_people <= people)
func (r *Restaurant) DepositFor(people int) float64 {
	var cost float64
	best := -1
	for _, tier := range r.DepositTiers {
		if tier.MinPeople <= people && tier.MinPeople > best {
			best = tier.MinPeople
			cost = tier.Cost
		}
	}
	return cost
}
