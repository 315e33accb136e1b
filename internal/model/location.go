package model

import "time"

// Location represents a physical site assets are assigned to.
type Location struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:128;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Associations
	Assets []Asset `gorm:"foreignKey:LocationID"`
}
