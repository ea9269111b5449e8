package server

import (
	"log/slog"

	"haven/internal/models"
	"haven/internal/service"

	"github.com/gofiber/fiber/v2"
)

type moderationDeleteRequest struct {
	Reason   string `json:"reason"`
	ReportID *uint  `json:"report_id"`
}

// GetReports lists reports for moderator review
// @Summary List reports
// @Tags moderation
// @Security BearerAuth
// @Param status query string false "Filter by status (open, resolved, dismissed)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Report
// @Router /api/moderation/reports [get]
func (s *Server) GetReports(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	var status *models.ReportStatus
	if raw := c.Query("status"); raw != "" {
		st := models.ReportStatus(raw)
		if !st.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid status filter"))
		}
		status = &st
	}

	reports, err := s.reportService.ListReports(c.Context(), status, limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(reports)
}

// GetAuditLog lists audit log entries, newest first
// @Summary List audit log entries
// @Tags moderation
// @Security BearerAuth
// @Param action_type query string false "Filter by action type"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.AuditLogEntry
// @Router /api/moderation/audit-log [get]
func (s *Server) GetAuditLog(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	var entries []models.AuditLogEntry
	var err error
	if actionType := c.Query("action_type"); actionType != "" {
		entries, err = s.auditRepo.ListByActionType(c.Context(), actionType, limit, offset)
	} else {
		entries, err = s.auditRepo.List(c.Context(), limit, offset)
	}
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(entries)
}

// DetermineAction applies a moderation action to an open report
// @Summary Resolve a report with a moderation action
// @Tags moderation
// @Security BearerAuth
// @Param request body service.DetermineActionInput true "Report ID and action"
// @Success 200 {object} models.Report
// @Router /api/moderation/determine-action [post]
func (s *Server) DetermineAction(c *fiber.Ctx) error {
	var in service.DetermineActionInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	moderator := currentUser(c)
	report, err := s.moderationService.DetermineAction(c.Context(), moderator, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	slog.Info("moderation action applied", "report_id", report.ID,
		"action", in.Action, "moderator_id", moderator.ID)
	return c.JSON(report)
}

// ModeratorDeletePost soft-deletes any post, optionally resolving a report
// @Summary Delete a post as moderator
// @Tags moderation
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body moderationDeleteRequest false "Reason and optional report link"
// @Success 200 {object} models.Post
// @Router /api/moderation/delete-post/{id} [post]
func (s *Server) ModeratorDeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req moderationDeleteRequest
	_ = c.BodyParser(&req)

	moderator := currentUser(c)
	post, err := s.moderationService.DeletePost(c.Context(), moderator, postID, req.Reason, req.ReportID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	slog.Info("post deleted by moderator", "post_id", postID, "moderator_id", moderator.ID)
	return c.JSON(post)
}

// ModeratorDeleteAccount bans, anonymizes and deactivates an account
// @Summary Delete an account as moderator
// @Tags moderation
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body moderationDeleteRequest false "Reason and optional report link"
// @Success 200 {object} service.DeleteAccountResult
// @Router /api/moderation/delete-account/{id} [delete]
func (s *Server) ModeratorDeleteAccount(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req moderationDeleteRequest
	_ = c.BodyParser(&req)

	moderator := currentUser(c)
	result, err := s.moderationService.DeleteAccountAsModerator(c.Context(), moderator, userID, req.Reason, req.ReportID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	slog.Info("account deleted by moderator", "user_id", userID, "moderator_id", moderator.ID)
	return c.JSON(result)
}
