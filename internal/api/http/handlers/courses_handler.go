package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/openlearn/coursehub/internal/api/dto"
	"github.com/openlearn/coursehub/internal/auth"
	"github.com/openlearn/coursehub/internal/service"
	apperrors "github.com/openlearn/coursehub/pkg/util"
)

// CoursesHandler exposes the course resource. Mutations are ownership-scoped
// through the authorization gate inside the service.
type CoursesHandler struct {
	courses *service.CourseService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courses *service.CourseService) *CoursesHandler {
	return &CoursesHandler{courses: courses}
}

// Create handles POST /courses.
func (h *CoursesHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CourseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" {
		return apperrors.NewValidationError("missing required fields", map[string]any{"title": "required"})
	}

	course, err := h.courses.Create(c.Context(), claims, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"course":  dto.NewCourseResponse(course),
	})
}

// Update handles PATCH /courses/:id.
func (h *CoursesHandler) Update(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CourseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	course, err := h.courses.Update(c.Context(), claims, c.Params("id"), service.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"course":  dto.NewCourseResponse(course),
	})
}

// List handles GET /courses, returning the caller's own courses.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	courses, err := h.courses.ListOwn(c.Context(), claims)
	if err != nil {
		return err
	}
	resp := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		resp = append(resp, dto.NewCourseResponse(&courses[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"courses": resp,
	})
}

// Get handles GET /courses/:id.
func (h *CoursesHandler) Get(c *fiber.Ctx) error {
	course, err := h.courses.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"course":  dto.NewCourseResponse(course),
	})
}
