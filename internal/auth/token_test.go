package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/openlearn/coursehub/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:           "user-1",
		Name:         "Ada",
		Email:        "ada@example.com",
		Phone:        "+15550100",
		Role:         domain.RoleAdmin,
		PasswordHash: "$2a$10$fakehash",
	}
}

func TestIssueParseRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 168)

	token, exp, err := tm.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) < 167*time.Hour {
		t.Fatalf("expiry window too short: %v", exp)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SubjectID != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.SubjectID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want admin", claims.Role)
	}
	if claims.Email != "ada@example.com" || claims.Name != "Ada" || claims.Phone != "+15550100" {
		t.Errorf("identity claims not carried: %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 1).Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenManager("secret-b", 1).Parse(token); err == nil {
		t.Fatal("expected signature failure")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", 1)

	claims := &SessionClaims{
		SubjectID: "user-1",
		Role:      domain.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Second)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.Parse(signed); err == nil {
		t.Fatal("expected expiry failure")
	}
}

func TestParseRejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	user := testUser()
	user.Role = domain.Role("superuser")

	token, _, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tm.Parse(token); err == nil {
		t.Fatal("expected unknown role rejection")
	}
}

func TestParseRejectsWrongAlgorithm(t *testing.T) {
	tm := NewTokenManager("secret", 1)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{
		SubjectID: "user-1",
		Role:      domain.RoleAdmin,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tm.Parse(signed); err == nil {
		t.Fatal("expected signing method rejection")
	}
}
