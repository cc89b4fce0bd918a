package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/console-service/internal/api/dto"
	"github.com/spec-kit/console-service/internal/auth"
	"github.com/spec-kit/console-service/internal/domain"
	"github.com/spec-kit/console-service/internal/service"
)

// TicketsHandler exposes ticket management endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService}
}

// Create handles POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.TicketCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	ticket, err := h.tickets.CreateTicket(c.UserContext(), service.TicketCreateInput{
		Category:     domain.TicketCategory(req.Category),
		Title:        req.Title,
		Description:  req.Description,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		SLADeadline:  req.SLADeadline,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// List handles GET /tickets with optional category and status filters.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		tickets, err := h.tickets.ListByCategory(c.UserContext(), domain.TicketCategory(category))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": tickets})
	}
	if status := c.Query("status"); status != "" {
		tickets, err := h.tickets.ListByStatus(c.UserContext(), domain.TicketStatus(status))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": tickets})
	}
	tickets, err := h.tickets.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tickets})
}

// Stats handles GET /tickets/stats.
func (h *TicketsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.tickets.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// Overdue handles GET /tickets/overdue.
func (h *TicketsHandler) Overdue(c *fiber.Ctx) error {
	tickets, err := h.tickets.OverdueTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tickets})
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.tickets.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// ChangeStatus handles POST /tickets/:id/status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	var req dto.TicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	switch domain.TicketStatus(req.Status) {
	case domain.TicketStatusNew, domain.TicketStatusInProgress, domain.TicketStatusPendingUser,
		domain.TicketStatusWaitingThirdParty, domain.TicketStatusResolved, domain.TicketStatusClosed:
	default:
		return fiber.NewError(http.StatusBadRequest, "unknown ticket status")
	}

	if err := h.tickets.ChangeStatus(c.UserContext(), c.Params("id"), domain.TicketStatus(req.Status), h.actor(c), req.Note); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// Assign handles POST /tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	var req dto.TicketAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.AgentID == "" {
		return fiber.NewError(http.StatusBadRequest, "agent_id required")
	}
	if req.AgentName == "" {
		req.AgentName = req.AgentID
	}
	if err := h.tickets.Assign(c.UserContext(), c.Params("id"), req.AgentID, req.AgentName); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// Escalate handles POST /tickets/:id/escalate.
func (h *TicketsHandler) Escalate(c *fiber.Ctx) error {
	if err := h.tickets.Escalate(c.UserContext(), c.Params("id"), h.actor(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

func (h *TicketsHandler) actor(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.User.PhoneNumber
	}
	return "system"
}
