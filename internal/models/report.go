package models

import (
	"time"
)

// ReportStatus is the lifecycle state of a report. Transitions only go
// open -> resolved or open -> dismissed; both are terminal.
type ReportStatus string

const (
	ReportStatusOpen      ReportStatus = "open"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// Valid reports whether s is one of the accepted report statuses.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusOpen, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// ReportReason is the reporter-selected category for a report.
type ReportReason string

const (
	ReasonHarassment    ReportReason = "harassment"
	ReasonSpam          ReportReason = "spam"
	ReasonInappropriate ReportReason = "inappropriate"
	ReasonCrisis        ReportReason = "crisis"
)

// Valid reports whether r is one of the accepted report reasons.
func (r ReportReason) Valid() bool {
	switch r {
	case ReasonHarassment, ReasonSpam, ReasonInappropriate, ReasonCrisis:
		return true
	}
	return false
}

// ModerationAction is the closed set of actions a moderator can apply to an
// open report.
type ModerationAction string

const (
	ActionWarn          ModerationAction = "warn"
	ActionBan           ModerationAction = "ban"
	ActionDismiss       ModerationAction = "dismiss"
	ActionDeletePost    ModerationAction = "delete_post"
	ActionDeleteAccount ModerationAction = "delete_account"
)

// Valid reports whether a is one of the accepted moderation actions.
func (a ModerationAction) Valid() bool {
	switch a {
	case ActionWarn, ActionBan, ActionDismiss, ActionDeletePost, ActionDeleteAccount:
		return true
	}
	return false
}

// AllowedOnCrisis reports whether the action may be applied to a crisis
// report. Crisis reports are about content safety, not punishment, so only
// post removal and dismissal are permitted.
func (a ModerationAction) AllowedOnCrisis() bool {
	return a == ActionDeletePost || a == ActionDismiss
}

// Resolution impact labels recorded on resolved reports.
const (
	ImpactPostDeleted           = "post_deleted"
	ImpactPostDeletedUserWarned = "post_deleted_user_warned"
	ImpactAccountBannedDeleted  = "account_banned_deleted"
	ImpactAccountDeleted        = "account_deleted"
)

// Report is a complaint against a post or user. ReportingUserID is nil for
// system-created crisis reports (keyword escalation has no human reporter).
type Report struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	ReportingUserID  *uint        `gorm:"index" json:"reporting_user_id,omitempty"`
	ReportingUser    *User        `gorm:"foreignKey:ReportingUserID" json:"reporting_user,omitempty"`
	ReportedUserID   *uint        `gorm:"index" json:"reported_user_id,omitempty"`
	ReportedUser     *User        `gorm:"foreignKey:ReportedUserID" json:"reported_user,omitempty"`
	PostID           *uint        `gorm:"index" json:"post_id,omitempty"`
	Post             *Post        `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Reason           ReportReason `gorm:"size:20;not null" json:"reason"`
	Details          string       `gorm:"type:text" json:"details"`
	IsCrisis         bool         `gorm:"default:false;index" json:"is_crisis"`
	Status           ReportStatus `gorm:"size:20;default:open;index" json:"status"`
	ResolutionImpact string       `gorm:"size:50" json:"resolution_impact,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	ResolvedAt       *time.Time   `json:"resolved_at,omitempty"`
}
