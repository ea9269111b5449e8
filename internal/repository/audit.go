package repository

import (
	"context"

	"haven/internal/models"
	"haven/internal/observability"

	"gorm.io/gorm"
)

// AuditRepository defines read access to the append-only audit log.
// Entries are written inside service transactions, never through this interface,
// so it deliberately exposes no create, update or delete methods.
type AuditRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.AuditLogEntry, error)
	ListByActionType(ctx context.Context, actionType string, limit, offset int) ([]models.AuditLogEntry, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository returns a new AuditRepository implementation.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) List(ctx context.Context, limit, offset int) ([]models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	defer observability.TrackQuery("select", "audit_log_entries")()
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *auditRepository) ListByActionType(ctx context.Context, actionType string, limit, offset int) ([]models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	defer observability.TrackQuery("select", "audit_log_entries")()
	if err := r.db.WithContext(ctx).
		Where("action_type = ?", actionType).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}
