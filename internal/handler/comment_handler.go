package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codemingle/internal/dto"
	"codemingle/internal/logger"
	"codemingle/internal/service"
)

// CommentHandler serves /comments.
type CommentHandler struct {
	svc service.CommentService
	log *logger.Logger
}

func NewCommentHandler(svc service.CommentService, log *logger.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: log}
}

// List godoc
// @Summary List comments
// @Tags comments
// @Produce json
// @Success 200 {array} dto.CommentDTO
// @Router /comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, comments)
}

// ListByLesson godoc
// @Summary List comments on a lesson
// @Tags comments
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {array} dto.CommentDTO
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/lesson/{lessonId} [get]
func (h *CommentHandler) ListByLesson(c echo.Context) error {
	lessonID, err := parseID(c, "lessonId")
	if err != nil {
		return err
	}
	comments, err := h.svc.ListByLesson(c.Request().Context(), lessonID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, comments)
}

// Get godoc
// @Summary Get comment by id
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.CommentDTO
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// Create godoc
// @Summary Create comment
// @Tags comments
// @Accept json
// @Produce json
// @Param request body dto.CommentRequest true "Comment payload"
// @Success 201 {object} dto.CommentDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	var req dto.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// Update godoc
// @Summary Edit comment text
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body dto.CommentRequest true "New content"
// @Success 200 {object} dto.CommentDTO
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete comment
// @Tags comments
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
