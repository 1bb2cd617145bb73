package models

import "time"

// Comment threads are at most two levels deep: a reply's parent must be a
// top-level comment of the same post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	Content   string    `gorm:"not null" json:"content"`
	IsDeleted bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Replies []Comment `gorm:"-" json:"replies,omitempty"`
}

type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:uidx_like_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_like_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
