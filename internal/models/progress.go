package models

import "time"

// Progress is the derived per-day completion record. Lookups bucket by
// created_at through the fixed KST offset; Date stores the same local day as
// a "YYYY-MM-DD" string and carries the unique index that makes recording
// idempotent under concurrent writes.
type Progress struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ChallengeID uint      `gorm:"not null;uniqueIndex:uidx_progress_user_challenge_day" json:"challenge_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uidx_progress_user_challenge_day" json:"user_id"`
	Progress    float64   `gorm:"not null;default:0" json:"progress"`
	Date        string    `gorm:"not null;uniqueIndex:uidx_progress_user_challenge_day" json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
