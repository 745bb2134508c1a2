package dto

import (
	"time"

	"github.com/openlearn/coursehub/internal/domain"
)

// CourseCreateRequest payload for new courses.
type CourseCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CSRFToken   string `json:"csrfToken,omitempty"`
}

// CourseUpdateRequest payload for partial course updates.
type CourseUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Published   *bool   `json:"published"`
	CSRFToken   string  `json:"csrfToken,omitempty"`
}

// CourseResponse is the caller-visible course shape.
type CourseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewCourseResponse maps a domain course.
func NewCourseResponse(course *domain.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		OwnerID:     course.OwnerID,
		Published:   course.Published,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}
