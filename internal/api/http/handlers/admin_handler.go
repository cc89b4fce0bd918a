package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/console-service/internal/service"
)

// AdminHandler exposes supervisor-only state snapshot endpoints.
type AdminHandler struct {
	state *service.StateService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(stateService *service.StateService) *AdminHandler {
	return &AdminHandler{state: stateService}
}

// SaveState handles POST /admin/state/save.
func (h *AdminHandler) SaveState(c *fiber.Ctx) error {
	if err := h.state.SaveState(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// LoadState handles POST /admin/state/load.
func (h *AdminHandler) LoadState(c *fiber.Ctx) error {
	if err := h.state.LoadState(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// ClearState handles DELETE /admin/state.
func (h *AdminHandler) ClearState(c *fiber.Ctx) error {
	if err := h.state.ClearState(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}
