package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/openlearn/coursehub/internal/auth"
	"github.com/openlearn/coursehub/internal/domain"
	"github.com/openlearn/coursehub/internal/repository"
	apperrors "github.com/openlearn/coursehub/pkg/util"
)

// CourseService owns course mutations. Every privileged path runs through the
// same authorization gate; ownership is resolved from the stored record, never
// from request input.
type CourseService struct {
	courses repository.CourseRepository
	gate    auth.Gate
}

// NewCourseService builds the service.
func NewCourseService(courses repository.CourseRepository, gate auth.Gate) *CourseService {
	return &CourseService{courses: courses, gate: gate}
}

// Create adds a course owned by the caller. Teachers and admins only.
func (s *CourseService) Create(ctx context.Context, claims *auth.SessionClaims, title, description string) (*domain.Course, error) {
	if err := s.gate.Authorize(claims, auth.Action{RequiredRole: domain.RoleTeacher}); err != nil {
		return nil, err
	}

	course := &domain.Course{
		Title:       title,
		Description: description,
		OwnerID:     claims.SubjectID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, apperrors.MapError(err)
	}
	return course, nil
}

// CourseUpdate carries the mutable course fields.
type CourseUpdate struct {
	Title       *string
	Description *string
	Published   *bool
}

// Update applies a partial update when the caller owns the course or holds
// the admin role.
func (s *CourseService) Update(ctx context.Context, claims *auth.SessionClaims, id string, patch CourseUpdate) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("course", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.gate.Authorize(claims, auth.Action{OwnerID: course.OwnerID}); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Published != nil {
		course.Published = *patch.Published
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, apperrors.MapError(err)
	}
	return course, nil
}

// ListOwn returns the courses owned by the caller.
func (s *CourseService) ListOwn(ctx context.Context, claims *auth.SessionClaims) ([]domain.Course, error) {
	if claims == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	courses, err := s.courses.ListByOwner(ctx, claims.SubjectID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return courses, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("course", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return course, nil
}
