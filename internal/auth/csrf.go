package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/openlearn/coursehub/pkg/util"
)

const csrfHeaderName = "X-CSRF-Token"

// CSRFManager implements double-submit CSRF protection. The server-issued
// token lives in an http-only cookie; a mutating request must echo the same
// value through the header or body, which only same-origin script that called
// the issuing endpoint can do.
type CSRFManager struct {
	cookies *CookieWriter
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCSRFManager constructs the manager.
func NewCSRFManager(cookies *CookieWriter, ttlHours int, logger *zap.Logger) *CSRFManager {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &CSRFManager{
		cookies: cookies,
		ttl:     time.Duration(ttlHours) * time.Hour,
		logger:  logger,
	}
}

// Issue generates a fresh token, stores it in the CSRF cookie and returns it
// for the response body. Issuing again overwrites the previous token.
func (m *CSRFManager) Issue(c *fiber.Ctx) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	m.cookies.SetCSRF(c, token, time.Now().Add(m.ttl))
	return token, nil
}

// Middleware enforces the double-submit check before any state-changing
// handler runs. Read-only methods bypass verification entirely. All rejection
// paths return the same caller-visible response; the precise reason is only
// logged.
func (m *CSRFManager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		cookieToken := c.Cookies(CSRFCookieName)
		if cookieToken == "" {
			m.reject(c, "token missing")
			return apperrors.NewCSRFRejected()
		}

		candidate := c.Get(csrfHeaderName)
		if candidate == "" {
			candidate = bodyToken(c.Body())
		}
		if candidate == "" {
			m.reject(c, "no candidate token")
			return apperrors.NewCSRFRejected()
		}

		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(candidate)) != 1 {
			m.reject(c, "token mismatch")
			return apperrors.NewCSRFRejected()
		}
		return c.Next()
	}
}

func (m *CSRFManager) reject(c *fiber.Ctx, reason string) {
	if m.logger != nil {
		m.logger.Warn("csrf rejected",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("reason", reason),
		)
	}
}

// bodyToken pulls the fallback csrfToken field out of a JSON body without
// consuming it for later handlers.
func bodyToken(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		CSRFToken string `json:"csrfToken"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.CSRFToken
}
