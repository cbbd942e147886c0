package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codemingle/internal/dto"
	"codemingle/internal/logger"
	"codemingle/internal/service"
)

// EnrollmentHandler serves /enrollments.
type EnrollmentHandler struct {
	svc service.EnrollmentService
	log *logger.Logger
}

func NewEnrollmentHandler(svc service.EnrollmentService, log *logger.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{svc: svc, log: log}
}

// List godoc
// @Summary List enrollments
// @Tags enrollments
// @Produce json
// @Success 200 {array} dto.EnrollmentDTO
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c echo.Context) error {
	enrollments, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, enrollments)
}

// ListByUser godoc
// @Summary List enrollments of a user
// @Tags enrollments
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} dto.EnrollmentDTO
// @Failure 404 {object} errors.ErrorResponse
// @Router /enrollments/user/{userId} [get]
func (h *EnrollmentHandler) ListByUser(c echo.Context) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	enrollments, err := h.svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, enrollments)
}

// Check godoc
// @Summary Whether a user is enrolled in a course
// @Tags enrollments
// @Produce json
// @Param userId path int true "User ID"
// @Param courseId path int true "Course ID"
// @Success 200 {boolean} boolean
// @Failure 404 {object} errors.ErrorResponse
// @Router /enrollments/check/{userId}/{courseId} [get]
func (h *EnrollmentHandler) Check(c echo.Context) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	courseID, err := parseID(c, "courseId")
	if err != nil {
		return err
	}
	enrolled, err := h.svc.IsEnrolled(c.Request().Context(), userID, courseID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, enrolled)
}

// Get godoc
// @Summary Get enrollment by id
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentDTO
// @Failure 404 {object} errors.ErrorResponse
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	enrollment, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, enrollment)
}

// Create godoc
// @Summary Enroll a user in a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.EnrollmentRequest true "Enrollment payload"
// @Success 201 {object} dto.EnrollmentDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c echo.Context) error {
	var req dto.EnrollmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	enrollment, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, enrollment)
}

// Update godoc
// @Summary Update enrollment
// @Description Omitted lessonId keeps the lesson; clearLesson=true removes it.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param request body dto.EnrollmentRequest true "Fields to change"
// @Success 200 {object} dto.EnrollmentDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /enrollments/{id} [put]
func (h *EnrollmentHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.EnrollmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	enrollment, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, enrollment)
}

// Delete godoc
// @Summary Delete enrollment
// @Tags enrollments
// @Param id path int true "Enrollment ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
