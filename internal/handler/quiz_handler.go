package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codemingle/internal/dto"
	"codemingle/internal/logger"
	"codemingle/internal/service"
)

// QuizHandler serves /quizzes. Responses always include the questions.
type QuizHandler struct {
	svc service.QuizService
	log *logger.Logger
}

func NewQuizHandler(svc service.QuizService, log *logger.Logger) *QuizHandler {
	return &QuizHandler{svc: svc, log: log}
}

// List godoc
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Success 200 {array} dto.QuizDTO
// @Router /quizzes [get]
func (h *QuizHandler) List(c echo.Context) error {
	quizzes, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, quizzes)
}

// ListByLesson godoc
// @Summary List quizzes of a lesson
// @Tags quizzes
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {array} dto.QuizDTO
// @Failure 404 {object} errors.ErrorResponse
// @Router /quizzes/lesson/{lessonId} [get]
func (h *QuizHandler) ListByLesson(c echo.Context) error {
	lessonID, err := parseID(c, "lessonId")
	if err != nil {
		return err
	}
	quizzes, err := h.svc.ListByLesson(c.Request().Context(), lessonID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, quizzes)
}

// Get godoc
// @Summary Get quiz with questions
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDTO
// @Failure 404 {object} errors.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	quiz, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, quiz)
}

// Create godoc
// @Summary Create quiz and its questions atomically
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Quiz payload"
// @Success 201 {object} dto.QuizDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) Create(c echo.Context) error {
	var req dto.QuizRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	quiz, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, quiz)
}

// Update godoc
// @Summary Update quiz
// @Description A present questions array replaces every existing question.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param request body dto.QuizRequest true "Fields to change"
// @Success 200 {object} dto.QuizDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /quizzes/{id} [put]
func (h *QuizHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.QuizRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	quiz, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, quiz)
}

// Delete godoc
// @Summary Delete quiz and its questions
// @Tags quizzes
// @Param id path int true "Quiz ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
