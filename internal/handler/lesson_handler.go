package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codemingle/internal/dto"
	"codemingle/internal/logger"
	"codemingle/internal/service"
)

// LessonHandler serves /lessons.
type LessonHandler struct {
	svc service.LessonService
	log *logger.Logger
}

func NewLessonHandler(svc service.LessonService, log *logger.Logger) *LessonHandler {
	return &LessonHandler{svc: svc, log: log}
}

// List godoc
// @Summary List lessons
// @Tags lessons
// @Produce json
// @Success 200 {array} dto.LessonDTO
// @Router /lessons [get]
func (h *LessonHandler) List(c echo.Context) error {
	lessons, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, lessons)
}

// ListByCourse godoc
// @Summary List lessons of a course
// @Tags lessons
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {array} dto.LessonDTO
// @Failure 404 {object} errors.ErrorResponse
// @Router /lessons/course/{courseId} [get]
func (h *LessonHandler) ListByCourse(c echo.Context) error {
	courseID, err := parseID(c, "courseId")
	if err != nil {
		return err
	}
	lessons, err := h.svc.ListByCourse(c.Request().Context(), courseID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, lessons)
}

// Get godoc
// @Summary Get lesson by id
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.LessonDTO
// @Failure 404 {object} errors.ErrorResponse
// @Router /lessons/{id} [get]
func (h *LessonHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	lesson, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, lesson)
}

// Create godoc
// @Summary Create lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body dto.LessonRequest true "Lesson payload"
// @Success 201 {object} dto.LessonDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /lessons [post]
func (h *LessonHandler) Create(c echo.Context) error {
	var req dto.LessonRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	lesson, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, lesson)
}

// Update godoc
// @Summary Update lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param request body dto.LessonRequest true "Fields to change"
// @Success 200 {object} dto.LessonDTO
// @Failure 404 {object} errors.ErrorResponse
// @Router /lessons/{id} [put]
func (h *LessonHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.LessonRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	lesson, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, lesson)
}

// Delete godoc
// @Summary Delete lesson with its comments and quizzes
// @Tags lessons
// @Param id path int true "Lesson ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /lessons/{id} [delete]
func (h *LessonHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
