package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/openlearn/coursehub/internal/api/dto"
	"github.com/openlearn/coursehub/internal/auth"
	"github.com/openlearn/coursehub/internal/service"
	apperrors "github.com/openlearn/coursehub/pkg/util"
)

// AuthHandler exposes login, identity and CSRF endpoints.
type AuthHandler struct {
	authService *service.AuthService
	cookies     *auth.CookieWriter
	csrf        *auth.CSRFManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies *auth.CookieWriter, csrf *auth.CSRFManager) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies, csrf: csrf}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := map[string]any{}
	if req.Identifier == "" {
		details["identifier"] = "required"
	}
	if req.Password == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("missing required fields", details)
	}

	user, token, exp, err := h.authService.Login(c.Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	h.cookies.SetSession(c, token, exp)
	// Role hint for the UI only; authorization re-derives role from the
	// verified session claims on every call.
	h.cookies.SetRoleHint(c, string(user.Role), exp)

	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewUserResponse(user),
		"token":   token,
	})
}

// Me handles GET /auth/me. Identity is reconstructed from the validated
// session claims; no store lookup happens here.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": dto.UserResponse{
			ID:    claims.SubjectID,
			Name:  claims.Name,
			Email: claims.Email,
			Phone: claims.Phone,
			Role:  string(claims.Role),
		},
	})
}

// Logout handles POST /auth/logout. Session tokens stay valid until expiry;
// logout only clears the browser's cookies.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookies.ClearSession(c)
	return c.JSON(fiber.Map{"success": true})
}

// CSRFToken handles GET /csrf-token. The token value is returned in the body
// exactly once per issuance; the cookie copy stays http-only.
func (h *AuthHandler) CSRFToken(c *fiber.Ctx) error {
	token, err := h.csrf.Issue(c)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"csrfToken": token,
	})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := map[string]any{}
	if req.Token == "" {
		details["token"] = "required"
	}
	if req.NewPassword == "" {
		details["newPassword"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("missing required fields", details)
	}

	if err := h.authService.RedeemReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true})
}
