package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codemingle/internal/dto"
	"codemingle/internal/logger"
	"codemingle/internal/service"
)

// CourseHandler serves /courses.
type CourseHandler struct {
	svc service.CourseService
	log *logger.Logger
}

func NewCourseHandler(svc service.CourseService, log *logger.Logger) *CourseHandler {
	return &CourseHandler{svc: svc, log: log}
}

// List godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseDTO
// @Router /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, courses)
}

// Get godoc
// @Summary Get course by id
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.CourseDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	course, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, course)
}

// Create godoc
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CourseRequest true "Course payload"
// @Success 201 {object} dto.CourseDTO
// @Failure 400 {object} errors.ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req dto.CourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	course, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, course)
}

// Update godoc
// @Summary Update course
// @Description Omitted or blank fields keep their stored value.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Fields to change"
// @Success 200 {object} dto.CourseDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	course, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, course)
}

// Delete godoc
// @Summary Delete course with its lessons and enrollments
// @Tags courses
// @Param id path int true "Course ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
