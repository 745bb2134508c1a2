package auth

import (
	"testing"

	"github.com/openlearn/coursehub/internal/domain"
)

func claimsFor(id string, role domain.Role) *SessionClaims {
	return &SessionClaims{SubjectID: id, Role: role}
}

func TestGateDecisions(t *testing.T) {
	gate := NewGate()

	tests := []struct {
		name   string
		claims *SessionClaims
		action Action
		allow  bool
	}{
		{"admin passes role gate", claimsFor("a", domain.RoleAdmin), Action{RequiredRole: domain.RoleTeacher}, true},
		{"admin passes ownership gate", claimsFor("a", domain.RoleAdmin), Action{OwnerID: "someone-else"}, true},
		{"teacher passes matching role", claimsFor("t", domain.RoleTeacher), Action{RequiredRole: domain.RoleTeacher}, true},
		{"student fails teacher gate", claimsFor("s", domain.RoleStudent), Action{RequiredRole: domain.RoleTeacher}, false},
		{"teacher fails admin gate", claimsFor("t", domain.RoleTeacher), Action{RequiredRole: domain.RoleAdmin}, false},
		{"owner passes ownership gate", claimsFor("u1", domain.RoleTeacher), Action{OwnerID: "u1"}, true},
		{"non-owner fails ownership gate", claimsFor("u2", domain.RoleTeacher), Action{OwnerID: "u1"}, false},
		{"nil claims rejected", nil, Action{RequiredRole: domain.RoleStudent}, false},
		{"invalid role rejected", claimsFor("x", domain.Role("root")), Action{RequiredRole: domain.RoleStudent}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Authorize(tt.claims, tt.action)
			if tt.allow && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tt.allow && err == nil {
				t.Fatal("expected deny")
			}
		})
	}
}
