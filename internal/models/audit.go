package models

import (
	"time"
)

// Audit action types written by the workflows.
const (
	AuditCrisisReportCreated = "crisis_report_created"
	AuditCrisisEscalation    = "crisis_escalation"
	AuditDeletePost          = "delete_post"
	AuditDeleteAccount       = "delete_account"
)

// AuditDetailsLimit bounds the details column for entries built from post
// content snippets. Truncation is deliberate: audit storage bounds detail
// size.
const AuditDetailsLimit = 100

// AuditLogEntry is an append-only record of a state-changing moderation or
// account action. Entries are never updated or deleted. ActorID is nil for
// system-triggered actions such as keyword escalation.
type AuditLogEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorID    *uint     `gorm:"index" json:"actor_id,omitempty"`
	ActionType string    `gorm:"size:100;not null;index" json:"action_type"`
	TargetType string    `gorm:"size:100" json:"target_type,omitempty"`
	TargetID   *uint     `json:"target_id,omitempty"`
	Details    string    `gorm:"type:text" json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}
