package service

import (
	"context"
	"errors"
	"testing"

	"github.com/openlearn/coursehub/internal/auth"
	"github.com/openlearn/coursehub/internal/domain"
	apperrors "github.com/openlearn/coursehub/pkg/util"
)

func sessionClaims(id string, role domain.Role) *auth.SessionClaims {
	return &auth.SessionClaims{SubjectID: id, Role: role}
}

func newTestCourseService(t *testing.T) (*CourseService, *mockCourseRepository) {
	t.Helper()

	courses := newMockCourseRepository()
	return NewCourseService(courses, auth.NewGate()), courses
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if domainErr.HTTPStatus != status {
		t.Fatalf("status = %d, want %d (%+v)", domainErr.HTTPStatus, status, domainErr)
	}
}

func TestCreateCourseRequiresTeacher(t *testing.T) {
	svc, _ := newTestCourseService(t)

	if _, err := svc.Create(context.Background(), sessionClaims("s1", domain.RoleStudent), "Go 101", ""); err == nil {
		t.Fatal("student must not create courses")
	}

	course, err := svc.Create(context.Background(), sessionClaims("t1", domain.RoleTeacher), "Go 101", "intro")
	if err != nil {
		t.Fatalf("teacher create: %v", err)
	}
	if course.OwnerID != "t1" {
		t.Errorf("owner = %q, want caller id", course.OwnerID)
	}
}

func TestUpdateCourseOwnership(t *testing.T) {
	svc, courses := newTestCourseService(t)
	courses.Create(context.Background(), &domain.Course{ID: "c1", Title: "Go 101", OwnerID: "t1"})

	title := "Go 102"

	// Foreign non-admin caller is forbidden.
	_, err := svc.Update(context.Background(), sessionClaims("t2", domain.RoleTeacher), "c1", CourseUpdate{Title: &title})
	assertStatus(t, err, 403)

	// The owner may update.
	updated, err := svc.Update(context.Background(), sessionClaims("t1", domain.RoleTeacher), "c1", CourseUpdate{Title: &title})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Go 102" {
		t.Errorf("title = %q", updated.Title)
	}

	// Admins may update any course.
	published := true
	if _, err := svc.Update(context.Background(), sessionClaims("a1", domain.RoleAdmin), "c1", CourseUpdate{Published: &published}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestListOwnCourses(t *testing.T) {
	svc, courses := newTestCourseService(t)
	courses.Create(context.Background(), &domain.Course{ID: "c1", Title: "Go 101", OwnerID: "t1"})
	courses.Create(context.Background(), &domain.Course{ID: "c2", Title: "Go 201", OwnerID: "t2"})

	own, err := svc.ListOwn(context.Background(), sessionClaims("t1", domain.RoleTeacher))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(own) != 1 || own[0].ID != "c1" {
		t.Fatalf("unexpected listing: %+v", own)
	}

	if _, err := svc.ListOwn(context.Background(), nil); err == nil {
		t.Fatal("nil claims must be rejected")
	}
}

func TestUpdateCourseNotFound(t *testing.T) {
	svc, _ := newTestCourseService(t)

	_, err := svc.Update(context.Background(), sessionClaims("a1", domain.RoleAdmin), "missing", CourseUpdate{})
	assertStatus(t, err, 404)
}
