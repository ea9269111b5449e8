package models

import (
	"time"
)

// CrisisStatus is the lifecycle state of a crisis ticket.
type CrisisStatus string

const (
	CrisisStatusOpen     CrisisStatus = "open"
	CrisisStatusInReview CrisisStatus = "in_review"
	CrisisStatusClosed   CrisisStatus = "closed"
)

// Valid reports whether s is one of the accepted ticket statuses.
func (s CrisisStatus) Valid() bool {
	switch s {
	case CrisisStatusOpen, CrisisStatusInReview, CrisisStatusClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the ticket status may move to next.
// The flow is one-way: open -> in_review -> closed.
func (s CrisisStatus) CanTransitionTo(next CrisisStatus) bool {
	switch s {
	case CrisisStatusOpen:
		return next == CrisisStatusInReview || next == CrisisStatusClosed
	case CrisisStatusInReview:
		return next == CrisisStatusClosed
	}
	return false
}

// CrisisTicket tracks an expedited review of self-harm-indicating content.
// It is created 1:1 alongside a crisis Report.
type CrisisTicket struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    *uint        `gorm:"index" json:"user_id,omitempty"`
	User      *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ReportID  *uint        `gorm:"index" json:"report_id,omitempty"`
	Report    *Report      `gorm:"foreignKey:ReportID" json:"report,omitempty"`
	Status    CrisisStatus `gorm:"size:20;default:open;index" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
