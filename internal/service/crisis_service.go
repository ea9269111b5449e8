package service

import (
	"context"

	"haven/internal/middleware"
	"haven/internal/models"

	"gorm.io/gorm"
)

// EscalateCrisisInput is the payload for direct crisis escalation.
type EscalateCrisisInput struct {
	UserID         *uint  `json:"user_id"`
	PostID         *uint  `json:"post_id"`
	ContentSnippet string `json:"content_snippet"`
}

// CrisisService manages crisis tickets and the escalation entry point.
type CrisisService struct {
	db *gorm.DB
}

// NewCrisisService returns a new CrisisService.
func NewCrisisService(db *gorm.DB) *CrisisService {
	return &CrisisService{db: db}
}

// EscalateCrisis creates a crisis report and ticket outside the normal
// reporting path. Unlike report creation it performs no post-status or
// self-report checks: the content already looked dangerous, so the ticket
// must exist regardless of who or what flagged it.
//
// actorID is the escalating user, or nil when the escalation is
// system-triggered (keyword scan). The audit details are truncated to bound
// storage, not by accident.
func (s *CrisisService) EscalateCrisis(ctx context.Context, actorID *uint, in EscalateCrisisInput) (*models.CrisisTicket, error) {
	var ticket models.CrisisTicket

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		report := models.Report{
			ReportingUserID: actorID,
			ReportedUserID:  in.UserID,
			PostID:          in.PostID,
			Reason:          models.ReasonCrisis,
			Details:         in.ContentSnippet,
			IsCrisis:        true,
			Status:          models.ReportStatusOpen,
		}
		if err := tx.Create(&report).Error; err != nil {
			return models.NewInternalError(err)
		}

		ticket = models.CrisisTicket{
			UserID:   in.UserID,
			ReportID: &report.ID,
			Status:   models.CrisisStatusOpen,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			return models.NewInternalError(err)
		}

		return appendAudit(tx, actorID, models.AuditCrisisEscalation, "CrisisTicket", &ticket.ID, truncateDetails(in.ContentSnippet))
	})
	if err != nil {
		return nil, err
	}

	source := "manual"
	if actorID == nil {
		source = "keyword"
	}
	middleware.CrisisTicketsOpened.WithLabelValues(source).Inc()
	middleware.Logger.InfoContext(ctx, "crisis escalated", "ticket_id", ticket.ID, "source", source)

	return &ticket, nil
}

// ListTickets returns crisis tickets, optionally filtered by status, newest first.
func (s *CrisisService) ListTickets(ctx context.Context, status *models.CrisisStatus, limit, offset int) ([]models.CrisisTicket, error) {
	query := s.db.WithContext(ctx).Model(&models.CrisisTicket{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var tickets []models.CrisisTicket
	if err := query.
		Preload("Report").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tickets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tickets, nil
}

// UpdateTicketStatus moves a ticket along the one-way open -> in_review -> closed flow.
func (s *CrisisService) UpdateTicketStatus(ctx context.Context, ticketID uint, next models.CrisisStatus) (*models.CrisisTicket, error) {
	var ticket models.CrisisTicket
	if err := s.db.WithContext(ctx).First(&ticket, ticketID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Crisis ticket", ticketID)
		}
		return nil, models.NewInternalError(err)
	}

	if next != models.CrisisStatusInReview && next != models.CrisisStatusClosed {
		return nil, models.NewValidationError("Invalid ticket status")
	}
	if !ticket.Status.CanTransitionTo(next) {
		return nil, models.NewInvalidStateError("Ticket cannot move from " + string(ticket.Status) + " to " + string(next))
	}

	ticket.Status = next
	if err := s.db.WithContext(ctx).Save(&ticket).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &ticket, nil
}
