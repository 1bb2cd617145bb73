package models

import "time"

// Post is a proof-of-completion entry. Posts are only ever soft-deleted so
// the progress recorder can re-derive day buckets from created_at later.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	PublicID    string    `gorm:"uniqueIndex;not null" json:"id"`
	ChallengeID uint      `gorm:"not null;index" json:"challenge_id"`
	GroupID     uint      `gorm:"not null;index" json:"group_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `json:"content"`
	ImageURLs   []string  `gorm:"serializer:json" json:"image_urls"`
	IsDeleted   bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// LikeCount and CommentCount are computed at query time.
	LikeCount    int64 `gorm:"-" json:"like_count"`
	CommentCount int64 `gorm:"-" json:"comment_count"`
	Liked        bool  `gorm:"-" json:"liked"`
}
