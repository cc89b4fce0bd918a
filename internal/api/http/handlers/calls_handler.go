package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/console-service/internal/api/dto"
	"github.com/spec-kit/console-service/internal/auth"
	"github.com/spec-kit/console-service/internal/domain"
	"github.com/spec-kit/console-service/internal/service"
)

// CallsHandler exposes the live-call console endpoints.
type CallsHandler struct {
	calls *service.CallService
}

// NewCallsHandler constructs handler.
func NewCallsHandler(callService *service.CallService) *CallsHandler {
	return &CallsHandler{calls: callService}
}

// Incoming handles POST /calls.
func (h *CallsHandler) Incoming(c *fiber.Ctx) error {
	var req dto.IncomingCallRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	call, err := h.calls.HandleIncomingCall(c.UserContext(), req.PhoneNumber, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": call})
}

// List handles GET /calls with optional status and type filters.
func (h *CallsHandler) List(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		calls, err := h.calls.ListByStatus(c.UserContext(), domain.CallStatus(status))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": calls})
	}
	if callType := c.Query("type"); callType != "" {
		calls, err := h.calls.ListByType(c.UserContext(), domain.CallType(callType))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": calls})
	}
	calls, err := h.calls.ListCalls(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": calls})
}

// Urgent handles GET /calls/urgent.
func (h *CallsHandler) Urgent(c *fiber.Ctx) error {
	calls, err := h.calls.UrgentCalls(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": calls})
}

// Archive handles GET /calls/archive.
func (h *CallsHandler) Archive(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	records, err := h.calls.RecentArchivedCalls(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": records})
}

// Get handles GET /calls/:id.
func (h *CallsHandler) Get(c *fiber.Ctx) error {
	call, err := h.calls.GetCall(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": call})
}

// Accept handles POST /calls/:id/accept.
func (h *CallsHandler) Accept(c *fiber.Ctx) error {
	return h.statusAction(c, h.calls.AcceptCall)
}

// Hold handles POST /calls/:id/hold.
func (h *CallsHandler) Hold(c *fiber.Ctx) error {
	return h.statusAction(c, h.calls.HoldCall)
}

// Transfer handles POST /calls/:id/transfer.
func (h *CallsHandler) Transfer(c *fiber.Ctx) error {
	return h.statusAction(c, h.calls.TransferCall)
}

// Complete handles POST /calls/:id/complete.
func (h *CallsHandler) Complete(c *fiber.Ctx) error {
	return h.statusAction(c, h.calls.CompleteCall)
}

// Intervene handles POST /calls/:id/intervene.
func (h *CallsHandler) Intervene(c *fiber.Ctx) error {
	return h.statusAction(c, h.calls.Intervene)
}

// Reclassify handles POST /calls/:id/reclassify.
func (h *CallsHandler) Reclassify(c *fiber.Ctx) error {
	var req dto.ReclassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	switch domain.CallType(req.Type) {
	case domain.CallTypeSales, domain.CallTypeTechnicalSupport, domain.CallTypeComplaint:
	default:
		return fiber.NewError(http.StatusBadRequest, "unknown call type")
	}
	if err := h.calls.Reclassify(c.UserContext(), c.Params("id"), domain.CallType(req.Type)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// UpdateContext handles PUT /calls/:id/context.
func (h *CallsHandler) UpdateContext(c *fiber.Ctx) error {
	var req dto.CallContextRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	err := h.calls.UpdateContext(c.UserContext(), service.CallContext{
		CallID:          c.Params("id"),
		DurationSeconds: req.DurationSeconds,
		AIConfidence:    req.AIConfidence,
		Problem:         req.Problem,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// Delete handles DELETE /calls/:id.
func (h *CallsHandler) Delete(c *fiber.Ctx) error {
	if err := h.calls.DeleteCall(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *CallsHandler) statusAction(c *fiber.Ctx, action func(ctx context.Context, callID, agentID string) error) error {
	agentID := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		agentID = principal.User.ID
	}
	if err := action(c.UserContext(), c.Params("id"), agentID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}
