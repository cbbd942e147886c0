package service

import (
	"context"
	"fmt"
	"time"

	"codemingle/internal/cache"
	"codemingle/internal/dto"
	apperrors "codemingle/internal/errors"
	"codemingle/internal/model"
	"codemingle/internal/repository"
)

const courseCacheTTL = 5 * time.Minute

// CourseService exposes course operations.
type CourseService interface {
	List(ctx context.Context) ([]dto.CourseDTO, error)
	Get(ctx context.Context, id uint) (*dto.CourseDTO, error)
	Create(ctx context.Context, req dto.CourseRequest) (*dto.CourseDTO, error)
	Update(ctx context.Context, id uint, req dto.CourseRequest) (*dto.CourseDTO, error)
	Delete(ctx context.Context, id uint) error
}

type courseService struct {
	repo  repository.CourseRepository
	cache *cache.Client
	now   func() time.Time
}

// NewCourseService builds a CourseService. Single course reads go through the cache.
func NewCourseService(repo repository.CourseRepository, cache *cache.Client) CourseService {
	return &courseService{repo: repo, cache: cache, now: time.Now}
}

func (s *courseService) cacheKey(id uint) string {
	return fmt.Sprintf("course:%d", id)
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseDTO, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return dto.Map(courses, dto.FromCourse), nil
}

func (s *courseService) Get(ctx context.Context, id uint) (*dto.CourseDTO, error) {
	var cached dto.CourseDTO
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrCourseNotFound)
	}
	out := dto.FromCourse(course)
	_ = s.cache.SetJSON(ctx, s.cacheKey(id), out, courseCacheTTL)
	return &out, nil
}

func (s *courseService) Create(ctx context.Context, req dto.CourseRequest) (*dto.CourseDTO, error) {
	title, err := requiredString(req.Title, "title")
	if err != nil {
		return nil, err
	}
	course := &model.Course{
		Title:       title,
		Description: optionalString(req.Description),
		Category:    optionalString(req.Category),
		CreatedAt:   createdAtOrNow(req.CreatedAt, s.now()),
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	out := dto.FromCourse(course)
	return &out, nil
}

func (s *courseService) Update(ctx context.Context, id uint, req dto.CourseRequest) (*dto.CourseDTO, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrCourseNotFound)
	}
	applyString(&course.Title, req.Title)
	applyString(&course.Description, req.Description)
	applyString(&course.Category, req.Category)

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	out := dto.FromCourse(course)
	return &out, nil
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, apperrors.ErrCourseNotFound)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
