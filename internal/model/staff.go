package model

import "time"

// Staff is a registry user who can submit inventory surveys.
type Staff struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null"`
	Email     string `gorm:"uniqueIndex;size:256"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
