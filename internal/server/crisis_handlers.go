package server

import (
	"log/slog"

	"haven/internal/models"
	"haven/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateTicketRequest struct {
	Status models.CrisisStatus `json:"status"`
}

// EscalateCrisis opens a crisis ticket manually
// @Summary Escalate a crisis
// @Tags crisis
// @Security BearerAuth
// @Param request body service.EscalateCrisisInput true "Affected user, post and content snippet"
// @Success 201 {object} models.CrisisTicket
// @Router /api/crisis/escalate [post]
func (s *Server) EscalateCrisis(c *fiber.Ctx) error {
	var in service.EscalateCrisisInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	moderator := currentUser(c)
	ticket, err := s.crisisService.EscalateCrisis(c.Context(), &moderator.ID, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	slog.Warn("crisis escalated manually", "ticket_id", ticket.ID, "moderator_id", moderator.ID)
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// GetCrisisTickets lists crisis tickets
// @Summary List crisis tickets
// @Tags crisis
// @Security BearerAuth
// @Param status query string false "Filter by status (open, in_review, closed)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.CrisisTicket
// @Router /api/crisis/tickets [get]
func (s *Server) GetCrisisTickets(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	var status *models.CrisisStatus
	if raw := c.Query("status"); raw != "" {
		st := models.CrisisStatus(raw)
		if !st.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid status filter"))
		}
		status = &st
	}

	tickets, err := s.crisisService.ListTickets(c.Context(), status, limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(tickets)
}

// UpdateCrisisTicket moves a ticket to in_review or closed
// @Summary Update crisis ticket status
// @Tags crisis
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Param request body updateTicketRequest true "Target status"
// @Success 200 {object} models.CrisisTicket
// @Router /api/crisis/tickets/{id} [patch]
func (s *Server) UpdateCrisisTicket(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req updateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ticket, err := s.crisisService.UpdateTicketStatus(c.Context(), ticketID, req.Status)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(ticket)
}
