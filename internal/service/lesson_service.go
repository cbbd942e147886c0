package service

import (
	"context"
	"fmt"
	"time"

	"codemingle/internal/dto"
	apperrors "codemingle/internal/errors"
	"codemingle/internal/model"
	"codemingle/internal/repository"
)

// LessonService exposes lesson operations.
type LessonService interface {
	List(ctx context.Context) ([]dto.LessonDTO, error)
	ListByCourse(ctx context.Context, courseID uint) ([]dto.LessonDTO, error)
	Get(ctx context.Context, id uint) (*dto.LessonDTO, error)
	Create(ctx context.Context, req dto.LessonRequest) (*dto.LessonDTO, error)
	Update(ctx context.Context, id uint, req dto.LessonRequest) (*dto.LessonDTO, error)
	Delete(ctx context.Context, id uint) error
}

type lessonService struct {
	lessons repository.LessonRepository
	courses repository.CourseRepository
	now     func() time.Time
}

func NewLessonService(lessons repository.LessonRepository, courses repository.CourseRepository) LessonService {
	return &lessonService{lessons: lessons, courses: courses, now: time.Now}
}

func (s *lessonService) List(ctx context.Context) ([]dto.LessonDTO, error) {
	lessons, err := s.lessons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return dto.Map(lessons, dto.FromLesson), nil
}

func (s *lessonService) ListByCourse(ctx context.Context, courseID uint) ([]dto.LessonDTO, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, notFound(err, apperrors.ErrCourseNotFound)
	}
	lessons, err := s.lessons.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons of course %d: %w", courseID, err)
	}
	return dto.Map(lessons, dto.FromLesson), nil
}

func (s *lessonService) Get(ctx context.Context, id uint) (*dto.LessonDTO, error) {
	lesson, err := s.lessons.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrLessonNotFound)
	}
	out := dto.FromLesson(lesson)
	return &out, nil
}

func (s *lessonService) Create(ctx context.Context, req dto.LessonRequest) (*dto.LessonDTO, error) {
	courseID, err := requiredID(req.CourseID, "courseId")
	if err != nil {
		return nil, err
	}
	title, err := requiredString(req.Title, "title")
	if err != nil {
		return nil, err
	}
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, notFound(err, apperrors.ErrCourseNotFound)
	}

	lesson := &model.Lesson{
		CourseID:  course.ID,
		Title:     title,
		Topic:     optionalString(req.Topic),
		Content:   optionalString(req.Content),
		CreatedAt: createdAtOrNow(req.CreatedAt, s.now()),
	}
	if err := s.lessons.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	lesson.Course = *course
	out := dto.FromLesson(lesson)
	return &out, nil
}

func (s *lessonService) Update(ctx context.Context, id uint, req dto.LessonRequest) (*dto.LessonDTO, error) {
	lesson, err := s.lessons.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrLessonNotFound)
	}
	if req.CourseID != nil && *req.CourseID != lesson.CourseID {
		course, err := s.courses.FindByID(ctx, *req.CourseID)
		if err != nil {
			return nil, notFound(err, apperrors.ErrCourseNotFound)
		}
		lesson.CourseID = course.ID
		lesson.Course = *course
	}
	applyString(&lesson.Title, req.Title)
	applyString(&lesson.Topic, req.Topic)
	applyString(&lesson.Content, req.Content)

	if err := s.lessons.Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	out := dto.FromLesson(lesson)
	return &out, nil
}

func (s *lessonService) Delete(ctx context.Context, id uint) error {
	if err := s.lessons.Delete(ctx, id); err != nil {
		return notFound(err, apperrors.ErrLessonNotFound)
	}
	return nil
}
