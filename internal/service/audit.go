// Package service contains the business logic for accounts, posts, reports,
// moderation and crisis handling.
package service

import (
	"haven/internal/middleware"
	"haven/internal/models"

	"gorm.io/gorm"
)

// appendAudit writes one audit log entry inside the caller's transaction.
// actorID is nil for system-triggered actions.
func appendAudit(tx *gorm.DB, actorID *uint, actionType, targetType string, targetID *uint, details string) error {
	entry := models.AuditLogEntry{
		ActorID:    actorID,
		ActionType: actionType,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}
	middleware.AuditEntriesWritten.WithLabelValues(actionType).Inc()
	return nil
}

// truncateDetails bounds audit details built from content snippets.
func truncateDetails(s string) string {
	if len(s) > models.AuditDetailsLimit {
		return s[:models.AuditDetailsLimit]
	}
	return s
}
