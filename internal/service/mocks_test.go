package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/openlearn/coursehub/internal/domain"
)

// mockUserRepository is an in-memory credential store.
type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (r *mockUserRepository) add(user *domain.User) {
	r.users[user.ID] = user
}

func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *mockUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == identifier || (user.Phone != "" && user.Phone == identifier) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *mockUserRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

// mockSpentTokenRepository tracks redeemed reset jtis in memory.
type mockSpentTokenRepository struct {
	spent map[string]bool
	err   error
}

func newMockSpentTokenRepository() *mockSpentTokenRepository {
	return &mockSpentTokenRepository{spent: make(map[string]bool)}
}

func (r *mockSpentTokenRepository) IsSpent(ctx context.Context, jti string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.spent[jti], nil
}

func (r *mockSpentTokenRepository) MarkSpent(ctx context.Context, jti string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.spent[jti] = true
	return nil
}

// mockCourseRepository is an in-memory course store.
type mockCourseRepository struct {
	courses map[string]*domain.Course
}

func newMockCourseRepository() *mockCourseRepository {
	return &mockCourseRepository{courses: make(map[string]*domain.Course)}
}

func (r *mockCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	if course.ID == "" {
		course.ID = fmt.Sprintf("course-%d", len(r.courses)+1)
	}
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	r.courses[course.ID] = course
	return nil
}

func (r *mockCourseRepository) Update(ctx context.Context, course *domain.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return pgx.ErrNoRows
	}
	course.UpdatedAt = time.Now()
	r.courses[course.ID] = course
	return nil
}

func (r *mockCourseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *course
	return &copied, nil
}

func (r *mockCourseRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Course, error) {
	var out []domain.Course
	for _, course := range r.courses {
		if course.OwnerID == ownerID {
			out = append(out, *course)
		}
	}
	return out, nil
}
