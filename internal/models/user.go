// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role is a user's permission level.
type Role string

// User roles, ordered by increasing privilege.
const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// CanModerate reports whether the role grants access to moderation endpoints.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// AnonymizedDisplayName replaces the display name of deleted accounts.
const AnonymizedDisplayName = "Deleted User"

// User represents an account in the Haven application.
// Email and PasswordHash are pointers because account deletion scrubs them
// to NULL while keeping the row (content stays, identity goes).
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        *string   `gorm:"uniqueIndex;size:255" json:"email,omitempty"`
	PasswordHash *string   `gorm:"size:255" json:"-"`
	DisplayName  string    `gorm:"size:50" json:"display_name"`
	IsAnonymous  bool      `gorm:"default:true" json:"is_anonymous"`
	Role         Role      `gorm:"size:20;default:user" json:"role"`
	IsBanned     bool      `gorm:"default:false" json:"is_banned"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
