package model

import "time"

// PushSubscription holds a browser push subscription for a staff member, used
// to notify submitters when one of their surveys has been reviewed.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	StaffID   int64     `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
