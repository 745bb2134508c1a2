package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names are fixed; clients never choose them.
const (
	SessionCookieName = "session-token"
	CSRFCookieName    = "csrf-token"
	RoleCookieName    = "role"
)

// CookieWriter centralizes the attributes shared by all auth cookies:
// http-only, SameSite=Strict, Path=/ and Secure in production.
type CookieWriter struct {
	secure bool
}

// NewCookieWriter constructs a writer; secure toggles the Secure attribute.
func NewCookieWriter(secure bool) *CookieWriter {
	return &CookieWriter{secure: secure}
}

// SetSession writes the session cookie.
func (w *CookieWriter) SetSession(c *fiber.Ctx, token string, expiresAt time.Time) {
	w.set(c, SessionCookieName, token, expiresAt, true)
}

// SetCSRF writes the CSRF cookie. It stays http-only: the client receives the
// token value through the issuing endpoint's response body, never by reading
// the cookie.
func (w *CookieWriter) SetCSRF(c *fiber.Ctx, token string, expiresAt time.Time) {
	w.set(c, CSRFCookieName, token, expiresAt, true)
}

// SetRoleHint writes the role cookie. It is a UI hint only; authorization
// never reads it.
func (w *CookieWriter) SetRoleHint(c *fiber.Ctx, role string, expiresAt time.Time) {
	w.set(c, RoleCookieName, role, expiresAt, false)
}

// ClearSession expires the session and role cookies.
func (w *CookieWriter) ClearSession(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	w.set(c, SessionCookieName, "", expired, true)
	w.set(c, RoleCookieName, "", expired, false)
}

func (w *CookieWriter) set(c *fiber.Ctx, name, value string, expiresAt time.Time, httpOnly bool) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expiresAt,
		Path:     "/",
		HTTPOnly: httpOnly,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
