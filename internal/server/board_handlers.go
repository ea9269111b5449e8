package server

import (
	"log/slog"

	"haven/internal/models"
	"haven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetBoards lists all condition boards
// @Summary List condition boards
// @Tags boards
// @Security BearerAuth
// @Success 200 {array} models.ConditionBoard
// @Router /api/boards [get]
func (s *Server) GetBoards(c *fiber.Ctx) error {
	boards, err := s.boardService.ListBoards(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(boards)
}

// CreateBoard creates a new condition board (moderators only)
// @Summary Create a condition board
// @Tags boards
// @Security BearerAuth
// @Param request body service.CreateBoardInput true "Board details"
// @Success 201 {object} models.ConditionBoard
// @Router /api/boards [post]
func (s *Server) CreateBoard(c *fiber.Ctx) error {
	var in service.CreateBoardInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	board, err := s.boardService.CreateBoard(c.Context(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	slog.Info("board created", "board_id", board.ID, "name", board.Name,
		"moderator_id", currentUser(c).ID)
	return c.Status(fiber.StatusCreated).JSON(board)
}
