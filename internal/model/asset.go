package model

import "time"

// Asset represents a tracked physical item.
type Asset struct {
	ID           int64        `gorm:"primaryKey"`
	Tag          string       `gorm:"uniqueIndex;size:64;not null"` // inventory tag printed on the item
	Name         string       `gorm:"size:256;not null"`
	LocationID   int64        `gorm:"index;not null"`
	Condition    Condition    `gorm:"size:16;not null"`
	Availability Availability `gorm:"size:16;not null;default:active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Associations
	Location Location `gorm:"constraint:OnDelete:CASCADE"`
}
