package models

import "time"

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	InviteCode  string    `gorm:"uniqueIndex;not null" json:"invite_code"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GroupMembership is the authoritative join between users and groups.
// Exactly one row per (group, user); role is a scalar.
type GroupMembership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"not null;uniqueIndex:uidx_group_user" json:"group_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_group_user" json:"user_id"`
	Role      string    `gorm:"not null;default:member" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
