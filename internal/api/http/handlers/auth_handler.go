package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/console-service/internal/api/dto"
	"github.com/spec-kit/console-service/internal/domain"
	"github.com/spec-kit/console-service/internal/service"
)

// AuthHandler exposes login and registration endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login. The body always carries the structured
// result with its success flag and message; failures answer 401.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result := h.auth.Login(c.UserContext(), req.PhoneNumber, req.Password)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnauthorized
	}
	return c.Status(status).JSON(fiber.Map{"data": result})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result := h.auth.Register(c.UserContext(), req.PhoneNumber, req.Password, domain.UserRole(req.Role))
	status := http.StatusCreated
	if !result.Success {
		status = http.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"data": result})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext(), c.Get("Authorization")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}
