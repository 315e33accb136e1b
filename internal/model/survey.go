package model

import "time"

// InventorySurvey is one walk-through submission covering the assets at one
// location on one date. Reviewed flips to true exactly once, when an
// administrator reconciles the survey; it is never reverted.
type InventorySurvey struct {
	ID          int64  `gorm:"primaryKey"`
	Date        string `gorm:"size:10;not null"` // ISO date, immutable after creation
	SubmitterID int64  `gorm:"index;not null"`
	LocationID  int64  `gorm:"index;not null"`
	Reviewed    bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Associations
	Lines     []InventoryLine `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
	Submitter Staff           `gorm:"foreignKey:SubmitterID"`
	Location  Location        `gorm:"foreignKey:LocationID"`
}

// InventoryLine is one asset's provisional observation within a survey.
// Position preserves submission order so review decisions can be correlated
// row-by-row with the review UI.
type InventoryLine struct {
	ID        int64     `gorm:"primaryKey"`
	SurveyID  int64     `gorm:"index;not null"`
	Position  int       `gorm:"not null"`
	AssetID   int64     `gorm:"index;not null"`
	Condition Condition `gorm:"size:16;not null"`
	Note      string    `gorm:"size:512"`
}
