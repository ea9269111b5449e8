package service

import (
	"context"
	"errors"
	"time"

	"haven/internal/cache"
	"haven/internal/middleware"
	"haven/internal/models"

	"gorm.io/gorm"
)

// DetermineActionInput is the payload for resolving a report.
type DetermineActionInput struct {
	ReportID uint                    `json:"report_id"`
	Action   models.ModerationAction `json:"action"`
	ModNote  string                  `json:"mod_note"`
}

// ModerationService applies moderator actions to reports, posts and accounts.
type ModerationService struct {
	db *gorm.DB
}

// NewModerationService returns a new ModerationService.
func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

// DetermineAction resolves an open report with one of the allowed actions.
// Crisis reports only accept delete_post and dismiss: they are about content
// safety, not punishment. Every transition writes exactly one audit entry
// and commits atomically with the state change.
func (s *ModerationService) DetermineAction(ctx context.Context, moderator *models.User, in DetermineActionInput) (*models.Report, error) {
	if !in.Action.Valid() {
		return nil, models.NewValidationError("Invalid action")
	}

	var report models.Report

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, in.ReportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Report", in.ReportID)
			}
			return models.NewInternalError(err)
		}

		if report.Status != models.ReportStatusOpen {
			return models.NewInvalidStateError("Report is already " + string(report.Status))
		}

		if report.IsCrisis && !in.Action.AllowedOnCrisis() {
			return models.NewValidationError("Crisis reports can only use 'Delete Post' or 'Dismiss'")
		}

		switch in.Action {
		case models.ActionDeletePost:
			return s.applyDeletePost(ctx, tx, moderator, &report, in.ModNote)
		case models.ActionDeleteAccount:
			return s.applyDeleteAccount(ctx, tx, moderator, &report, in.ModNote)
		default:
			return s.applySimpleAction(ctx, tx, moderator, &report, in.Action, in.ModNote)
		}
	})
	if err != nil {
		return nil, err
	}

	middleware.ModerationActions.WithLabelValues(string(in.Action)).Inc()
	middleware.Logger.InfoContext(ctx, "moderation action applied",
		"report_id", report.ID, "action", in.Action, "moderator_id", moderator.ID)

	return &report, nil
}

// applySimpleAction handles warn, ban and dismiss. Dismiss goes to
// dismissed; the rest resolve. The resolution impact is the action itself.
func (s *ModerationService) applySimpleAction(ctx context.Context, tx *gorm.DB, moderator *models.User, report *models.Report, action models.ModerationAction, note string) error {
	if action == models.ActionDismiss {
		report.Status = models.ReportStatusDismissed
	} else {
		report.Status = models.ReportStatusResolved
	}
	report.ResolutionImpact = string(action)
	now := time.Now()
	report.ResolvedAt = &now

	if action == models.ActionBan && report.ReportedUserID != nil {
		if err := tx.Model(&models.User{}).
			Where("id = ?", *report.ReportedUserID).
			Update("is_banned", true).Error; err != nil {
			return models.NewInternalError(err)
		}
		cache.InvalidateUser(ctx, *report.ReportedUserID)
	}

	if err := tx.Save(report).Error; err != nil {
		return models.NewInternalError(err)
	}

	return appendAudit(tx, &moderator.ID, "moderation_"+string(action), "Report", &report.ID, note)
}

// applyDeletePost deletes the reported post and resolves the report. A
// reported user on a non-crisis report is additionally considered warned,
// reflected in the resolution impact and audit action type.
func (s *ModerationService) applyDeletePost(ctx context.Context, tx *gorm.DB, moderator *models.User, report *models.Report, note string) error {
	if report.PostID == nil {
		return models.NewValidationError("No post associated with this report")
	}

	if err := tx.Model(&models.Post{}).
		Where("id = ?", *report.PostID).
		Update("status", models.PostStatusDeleted).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, *report.PostID)

	actionType := "moderation_delete_post"
	if report.ReportedUserID != nil && !report.IsCrisis {
		report.ResolutionImpact = models.ImpactPostDeletedUserWarned
		actionType = "moderation_delete_post_warn"
	} else {
		report.ResolutionImpact = models.ImpactPostDeleted
	}

	report.Status = models.ReportStatusResolved
	now := time.Now()
	report.ResolvedAt = &now

	if err := tx.Save(report).Error; err != nil {
		return models.NewInternalError(err)
	}

	return appendAudit(tx, &moderator.ID, actionType, "Report", &report.ID, note)
}

// applyDeleteAccount bans the reported user, anonymizes their account and
// resolves the report.
func (s *ModerationService) applyDeleteAccount(ctx context.Context, tx *gorm.DB, moderator *models.User, report *models.Report, note string) error {
	if report.ReportedUserID == nil {
		return models.NewValidationError("No user associated with this report")
	}

	var reported models.User
	if err := tx.First(&reported, *report.ReportedUserID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewInternalError(err)
	} else if err == nil {
		if err := tx.Model(&models.User{}).
			Where("id = ?", reported.ID).
			Update("is_banned", true).Error; err != nil {
			return models.NewInternalError(err)
		}
		reason := note
		if reason == "" {
			reason = "Banned and deleted by moderator"
		}
		if err := anonymizeAccount(tx, &reported, reason, &moderator.ID); err != nil {
			return err
		}
		cache.InvalidateUser(ctx, reported.ID)
	}

	report.Status = models.ReportStatusResolved
	report.ResolutionImpact = models.ImpactAccountBannedDeleted
	now := time.Now()
	report.ResolvedAt = &now

	if err := tx.Save(report).Error; err != nil {
		return models.NewInternalError(err)
	}

	return appendAudit(tx, &moderator.ID, "moderation_ban_delete_account", "Report", &report.ID, note)
}

// DeletePost is the direct moderator deletion path, not tied to a
// determine-action resolution. If reportID is given the report is resolved
// too, skipping the transition when it is no longer open.
func (s *ModerationService) DeletePost(ctx context.Context, moderator *models.User, postID uint, reason string, reportID *uint) (*models.Post, error) {
	var post models.Post

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewInternalError(err)
		}

		if post.Status == models.PostStatusDeleted {
			return models.NewInvalidStateError("Post was already deleted")
		}

		post.Status = models.PostStatusDeleted
		if err := tx.Save(&post).Error; err != nil {
			return models.NewInternalError(err)
		}

		if err := appendAudit(tx, &moderator.ID, models.AuditDeletePost, "Post", &post.ID, reason); err != nil {
			return err
		}

		if reportID != nil {
			if err := s.resolveReport(tx, moderator, *reportID, models.ImpactPostDeleted, reason); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidatePost(ctx, post.ID)
	middleware.Logger.InfoContext(ctx, "post deleted by moderator",
		"post_id", post.ID, "moderator_id", moderator.ID)

	return &post, nil
}

// resolveReport resolves an open report with the given impact inside the
// caller's transaction. Reports that are not open are left untouched rather
// than failing the surrounding operation.
func (s *ModerationService) resolveReport(tx *gorm.DB, moderator *models.User, reportID uint, impact, reason string) error {
	var report models.Report
	if err := tx.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return models.NewInternalError(err)
	}
	if report.Status != models.ReportStatusOpen {
		return nil
	}

	report.Status = models.ReportStatusResolved
	report.ResolutionImpact = impact
	now := time.Now()
	report.ResolvedAt = &now

	if err := tx.Save(&report).Error; err != nil {
		return models.NewInternalError(err)
	}

	return appendAudit(tx, &moderator.ID, "moderation_"+impact, "Report", &report.ID, reason)
}

// DeleteAccountAsModerator anonymizes a user's account on a moderator's
// authority, optionally resolving a linked report first.
func (s *ModerationService) DeleteAccountAsModerator(ctx context.Context, moderator *models.User, userID uint, reason string, reportID *uint) (*DeleteAccountResult, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", userID)
		}
		return nil, models.NewInternalError(err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reportID != nil {
			if err := s.resolveReport(tx, moderator, *reportID, models.ImpactAccountDeleted, reason); err != nil {
				return err
			}
		}
		return anonymizeAccount(tx, &user, reason, &moderator.ID)
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateUser(ctx, user.ID)
	middleware.Logger.InfoContext(ctx, "account deleted by moderator",
		"user_id", user.ID, "moderator_id", moderator.ID)

	return &DeleteAccountResult{Success: true, Message: "Account deleted and content anonymized"}, nil
}
