package server

import (
	"log/slog"

	"haven/internal/models"
	"haven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts lists active posts, optionally filtered by board
// @Summary List active posts
// @Tags posts
// @Security BearerAuth
// @Param board_id query int false "Filter by board"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Post
// @Router /api/posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	var boardID *uint
	if raw := c.QueryInt("board_id", 0); raw > 0 {
		id := uint(raw)
		boardID = &id
	}

	posts, err := s.messagingService.ListPosts(c.Context(), boardID, limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost publishes a new post
// @Summary Create a post
// @Tags posts
// @Security BearerAuth
// @Param request body service.PostMessageInput true "Post content"
// @Success 201 {object} models.Post
// @Router /api/posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var in service.PostMessageInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.messagingService.PostMessage(c.Context(), currentUser(c), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeleteMyPost soft-deletes the caller's own post
// @Summary Delete own post
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Router /api/posts/{id} [delete]
func (s *Server) DeleteMyPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	post, err := s.messagingService.DeletePostSelf(c.Context(), currentUser(c), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// ReportPost files a report against a post
// @Summary Report a post
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body service.CreateReportInput true "Report reason and details"
// @Success 201 {object} models.Report
// @Router /api/posts/{id}/report [post]
func (s *Server) ReportPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var in service.CreateReportInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.CreateReport(c.Context(), currentUser(c), postID, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	slog.Info("report created", "report_id", report.ID, "post_id", postID,
		"reason", report.Reason, "is_crisis", report.IsCrisis)
	return c.Status(fiber.StatusCreated).JSON(report)
}
