package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openlearn/coursehub/internal/service"
)

// AdminHandler exposes admin-gated user operations. Role checks run in the
// route middleware before these handlers; an unauthorized caller gets 403
// before any user lookup can reveal existence.
type AdminHandler struct {
	authService *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// ResetPasswordLink handles POST /admin/users/:id/reset-password-link.
func (h *AdminHandler) ResetPasswordLink(c *fiber.Ctx) error {
	link, exp, err := h.authService.IssueResetLink(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"link":      link,
		"expiresAt": exp,
	})
}
