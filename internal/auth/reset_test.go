package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/openlearn/coursehub/internal/domain"
)

func TestResetTokenBindsFingerprint(t *testing.T) {
	binder := NewResetTokenBinder("secret", 30)
	user := &domain.User{ID: "user-2", PasswordHash: "hash-at-issuance"}

	token, exp, err := binder.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if until := time.Until(exp); until > 30*time.Minute || until < 29*time.Minute {
		t.Fatalf("unexpected validity window: %v", until)
	}

	claims, err := binder.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-2" {
		t.Errorf("subject = %q, want user-2", claims.Subject)
	}
	if claims.Purpose != ResetPurpose {
		t.Errorf("purpose = %q", claims.Purpose)
	}
	if claims.ID == "" {
		t.Error("jti missing")
	}
	if claims.Fingerprint != Fingerprint("hash-at-issuance") {
		t.Error("fingerprint does not match hash at issuance")
	}
	if claims.Fingerprint == Fingerprint("hash-after-change") {
		t.Error("fingerprint must change with the password hash")
	}
}

func TestResetTokenRejectsWrongPurpose(t *testing.T) {
	binder := NewResetTokenBinder("secret", 30)

	claims := &ResetClaims{
		Purpose:     "email_verification",
		Fingerprint: Fingerprint("hash"),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-2",
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := binder.Parse(signed); err == nil {
		t.Fatal("expected purpose rejection")
	}
}

func TestResetTokenRejectsExpired(t *testing.T) {
	binder := NewResetTokenBinder("secret", 30)

	claims := &ResetClaims{
		Purpose:     ResetPurpose,
		Fingerprint: Fingerprint("hash"),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-2",
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Second)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := binder.Parse(signed); err == nil {
		t.Fatal("expected expiry rejection")
	}
}

func TestResetTokenRejectsTampered(t *testing.T) {
	binder := NewResetTokenBinder("secret", 30)
	token, _, err := binder.Issue(&domain.User{ID: "user-2", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewResetTokenBinder("other-secret", 30).Parse(token); err == nil {
		t.Fatal("expected signature rejection")
	}
	if _, err := binder.Parse(token + "x"); err == nil {
		t.Fatal("expected tamper rejection")
	}
}
