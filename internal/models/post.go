package models

import (
	"time"
)

// PostStatus is the lifecycle state of a post.
type PostStatus string

// Post lifecycle states. Deletion is one-way; there is no undelete.
const (
	PostStatusActive  PostStatus = "active"
	PostStatusDeleted PostStatus = "deleted"
	PostStatusLocked  PostStatus = "locked"
)

// Post represents a message on a condition board.
type Post struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	AuthorID  uint            `gorm:"not null;index" json:"author_id"`
	Author    User            `gorm:"foreignKey:AuthorID" json:"author"`
	BoardID   *uint           `gorm:"index" json:"board_id,omitempty"`
	Board     *ConditionBoard `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Content   string          `gorm:"type:text;not null" json:"content"`
	Status    PostStatus      `gorm:"size:20;default:active;index" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
