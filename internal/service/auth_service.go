package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/openlearn/coursehub/internal/auth"
	"github.com/openlearn/coursehub/internal/config"
	"github.com/openlearn/coursehub/internal/domain"
	"github.com/openlearn/coursehub/internal/repository"
	apperrors "github.com/openlearn/coursehub/pkg/util"
)

// AuthService coordinates login, identity lookup and the password-reset flow.
type AuthService struct {
	users      repository.UserRepository
	spent      repository.SpentTokenRepository
	tokenMgr   *auth.TokenManager
	resetMgr   *auth.ResetTokenBinder
	bcryptCost int
	publicURL  string
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	SpentTokenRepo repository.SpentTokenRepository
	Logger         *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		spent:      deps.SpentTokenRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTLHours),
		resetMgr:   auth.NewResetTokenBinder(cfg.Auth.JWTSecret, cfg.Auth.PasswordResetTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		publicURL:  cfg.App.PublicURL,
		logger:     deps.Logger,
	}
}

// Login authenticates an identifier/password pair and issues a session
// token. Unknown identifier and wrong password return the identical error so
// the response never reveals whether an account exists.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error("credential store lookup failed", zap.Error(err))
			return nil, "", time.Time{}, apperrors.NewInternalError(err)
		}
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		s.logger.Error("session token signing failed", zap.Error(err))
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// IssueResetLink loads the target user, binds a reset capability to the
// current password hash and returns a redemption link. No link state is kept
// server-side; the token is the whole capability.
func (s *AuthService) IssueResetLink(ctx context.Context, userID string) (string, time.Time, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		s.logger.Error("credential store lookup failed", zap.Error(err))
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	token, exp, err := s.resetMgr.Issue(user)
	if err != nil {
		s.logger.Error("reset token signing failed", zap.Error(err))
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.publicURL, url.QueryEscape(token))
	return link, exp, nil
}

// RedeemReset verifies a reset capability and overwrites the password hash.
// The embedded fingerprint must match a fresh digest of the current hash:
// any password change since issuance makes the capability stale. A spent-jti
// set additionally rejects immediate replays; if that set is unreachable the
// fingerprint check remains the backstop. Every failure surfaces as one
// generic error; the precise reason is logged only.
func (s *AuthService) RedeemReset(ctx context.Context, tokenStr, newPassword string) error {
	genericErr := apperrors.NewUnauthorized("invalid or expired link")

	claims, err := s.resetMgr.Parse(tokenStr)
	if err != nil {
		s.logger.Info("reset token rejected", zap.Error(err))
		return genericErr
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Info("reset token for unknown user", zap.String("sub", claims.Subject))
			return genericErr
		}
		s.logger.Error("credential store lookup failed", zap.Error(err))
		return apperrors.NewInternalError(err)
	}

	if auth.Fingerprint(user.PasswordHash) != claims.Fingerprint {
		s.logger.Info("reset token stale fingerprint", zap.String("sub", claims.Subject))
		return genericErr
	}

	if spent, err := s.spent.IsSpent(ctx, claims.ID); err != nil {
		s.logger.Warn("spent-token check unavailable", zap.Error(err))
	} else if spent {
		s.logger.Info("reset token replayed", zap.String("jti", claims.ID))
		return genericErr
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		s.logger.Error("password update failed", zap.Error(err))
		return apperrors.NewInternalError(err)
	}

	if err := s.spent.MarkSpent(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		s.logger.Warn("failed to mark reset token spent", zap.Error(err))
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
