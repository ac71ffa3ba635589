package models

import "time"

// TableType mengelompokkan meja berdasarkan kapasitas tempat duduk (mis. "2-top", "family").
type TableType struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Label        string    `gorm:"type:varchar(50);not null" json:"label"`
	MinCovers    int       `gorm:"not null;default:1" json:"min_covers"`
	MaxCovers    int       `gorm:"not null" json:"max_covers"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

type Table struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	TableTypeID  uint      `gorm:"not null;index" json:"table_type_id"`
	TableType    TableType `gorm:"foreignKey:TableTypeID" json:"table_type,omitempty"`
	TableNumber  string    `gorm:"type:varchar(50);not null" json:"table_number"`
	Capacity     int       `gorm:"not null" json:"capacity"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
