package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/openlearn/coursehub/internal/domain"
)

// ResetPurpose is the fixed purpose claim for password-reset capabilities.
const ResetPurpose = "password_reset"

// ResetClaims describes the reset capability payload. The fingerprint binds
// the token to the password hash at issuance: changing the password changes
// the fingerprint and thereby invalidates every outstanding link without a
// revocation list.
type ResetClaims struct {
	Purpose     string `json:"purpose"`
	Fingerprint string `json:"fpr"`
	jwt.RegisteredClaims
}

// ResetTokenBinder issues and verifies short-lived reset capabilities.
type ResetTokenBinder struct {
	secret []byte
	ttl    time.Duration
}

// NewResetTokenBinder builds a binder with the given validity window.
func NewResetTokenBinder(secret string, ttlMinutes int) *ResetTokenBinder {
	if ttlMinutes <= 0 {
		ttlMinutes = 30
	}
	return &ResetTokenBinder{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Fingerprint computes the one-way digest of a stored password hash.
func Fingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:])
}

// Issue signs a reset capability for the user, bound to the current password
// hash. No server-side link state exists beyond the token itself.
func (b *ResetTokenBinder) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(b.ttl)
	claims := &ResetClaims{
		Purpose:     ResetPurpose,
		Fingerprint: Fingerprint(user.PasswordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(b.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, expiry and purpose. The fingerprint comparison
// against the current hash happens at redemption, not here.
func (b *ResetTokenBinder) Parse(tokenStr string) (*ResetClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return b.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*ResetClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Purpose != ResetPurpose {
		return nil, errors.New("wrong token purpose")
	}
	if claims.Subject == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, errors.New("incomplete reset claims")
	}
	return claims, nil
}
