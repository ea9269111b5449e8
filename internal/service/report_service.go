package service

import (
	"context"
	"errors"
	"fmt"

	"haven/internal/middleware"
	"haven/internal/models"

	"gorm.io/gorm"
)

// CreateReportInput is the payload for reporting a post.
type CreateReportInput struct {
	Reason  models.ReportReason `json:"reason"`
	Details string              `json:"details"`
}

// ReportService handles user-submitted reports against posts.
type ReportService struct {
	db *gorm.DB
}

// NewReportService returns a new ReportService.
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport files a report against a post. Preconditions are checked in
// order, each with a distinct failure: post exists, post is active, reporter
// is not the author, reporter has no open report on this post already.
// Crisis reports additionally create a linked ticket and an audit entry; all
// writes commit atomically.
//
// The duplicate check is read-then-write and can race under concurrent
// requests from the same reporter; accepted for now.
func (s *ReportService) CreateReport(ctx context.Context, reporter *models.User, postID uint, in CreateReportInput) (*models.Report, error) {
	if !in.Reason.Valid() {
		return nil, models.NewValidationError("Invalid report reason")
	}

	var report models.Report

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewInternalError(err)
		}

		if post.Status != models.PostStatusActive {
			return models.NewInvalidStateError("Cannot report an inactive post")
		}

		if post.AuthorID == reporter.ID {
			return models.NewInvalidStateError("You cannot report your own post")
		}

		var existing models.Report
		err := tx.Where(
			"reporting_user_id = ? AND post_id = ? AND status = ?",
			reporter.ID, postID, models.ReportStatusOpen,
		).First(&existing).Error
		if err == nil {
			return models.NewInvalidStateError("You have already reported this post")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewInternalError(err)
		}

		isCrisis := in.Reason == models.ReasonCrisis

		report = models.Report{
			ReportingUserID: &reporter.ID,
			ReportedUserID:  &post.AuthorID,
			PostID:          &postID,
			Reason:          in.Reason,
			Details:         in.Details,
			IsCrisis:        isCrisis,
			Status:          models.ReportStatusOpen,
		}
		if err := tx.Create(&report).Error; err != nil {
			return models.NewInternalError(err)
		}

		if isCrisis {
			ticket := models.CrisisTicket{
				UserID:   &post.AuthorID,
				ReportID: &report.ID,
				Status:   models.CrisisStatusOpen,
			}
			if err := tx.Create(&ticket).Error; err != nil {
				return models.NewInternalError(err)
			}

			details := fmt.Sprintf("Crisis report created for post %d", postID)
			if err := appendAudit(tx, &reporter.ID, models.AuditCrisisReportCreated, "Report", &report.ID, details); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	middleware.ReportsCreated.WithLabelValues(string(in.Reason)).Inc()
	if report.IsCrisis {
		middleware.CrisisTicketsOpened.WithLabelValues("report").Inc()
	}
	middleware.Logger.InfoContext(ctx, "report created",
		"report_id", report.ID, "post_id", postID, "reason", in.Reason, "is_crisis", report.IsCrisis)

	return &report, nil
}

// ListReports returns reports, optionally filtered by status, newest first.
func (s *ReportService) ListReports(ctx context.Context, status *models.ReportStatus, limit, offset int) ([]models.Report, error) {
	query := s.db.WithContext(ctx).Model(&models.Report{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var reports []models.Report
	if err := query.
		Preload("Post").
		Preload("ReportedUser").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}
