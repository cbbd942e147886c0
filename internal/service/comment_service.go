package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codemingle/internal/dto"
	apperrors "codemingle/internal/errors"
	"codemingle/internal/model"
	"codemingle/internal/repository"
)

// CommentService exposes comment operations.
type CommentService interface {
	List(ctx context.Context) ([]dto.CommentDTO, error)
	ListByLesson(ctx context.Context, lessonID uint) ([]dto.CommentDTO, error)
	Get(ctx context.Context, id uint) (*dto.CommentDTO, error)
	Create(ctx context.Context, req dto.CommentRequest) (*dto.CommentDTO, error)
	Update(ctx context.Context, id uint, req dto.CommentRequest) (*dto.CommentDTO, error)
	Delete(ctx context.Context, id uint) error
}

type commentService struct {
	comments repository.CommentRepository
	users    repository.UserRepository
	lessons  repository.LessonRepository
	now      func() time.Time
}

func NewCommentService(comments repository.CommentRepository, users repository.UserRepository, lessons repository.LessonRepository) CommentService {
	return &commentService{comments: comments, users: users, lessons: lessons, now: time.Now}
}

func (s *commentService) List(ctx context.Context) ([]dto.CommentDTO, error) {
	comments, err := s.comments.ListWithDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return dto.Map(comments, dto.FromComment), nil
}

func (s *commentService) ListByLesson(ctx context.Context, lessonID uint) ([]dto.CommentDTO, error) {
	if _, err := s.lessons.FindByID(ctx, lessonID); err != nil {
		return nil, notFound(err, apperrors.ErrLessonNotFound)
	}
	comments, err := s.comments.ListByLesson(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("list comments of lesson %d: %w", lessonID, err)
	}
	return dto.Map(comments, dto.FromComment), nil
}

func (s *commentService) Get(ctx context.Context, id uint) (*dto.CommentDTO, error) {
	comment, err := s.comments.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrCommentNotFound)
	}
	out := dto.FromComment(comment)
	return &out, nil
}

func (s *commentService) Create(ctx context.Context, req dto.CommentRequest) (*dto.CommentDTO, error) {
	userID, err := requiredID(req.UserID, "userId")
	if err != nil {
		return nil, err
	}
	lessonID, err := requiredID(req.LessonID, "lessonId")
	if err != nil {
		return nil, err
	}
	if req.Content == nil || strings.TrimSpace(*req.Content) == "" {
		return nil, apperrors.ErrBlankContent
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	if _, err := s.lessons.FindByID(ctx, lessonID); err != nil {
		return nil, notFound(err, apperrors.ErrLessonNotFound)
	}

	comment := &model.Comment{
		UserID:    userID,
		LessonID:  lessonID,
		Content:   strings.TrimSpace(*req.Content),
		CreatedAt: createdAtOrNow(req.CreatedAt, s.now()),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return s.Get(ctx, comment.ID)
}

// Update only edits the text; author and lesson stay fixed.
func (s *commentService) Update(ctx context.Context, id uint, req dto.CommentRequest) (*dto.CommentDTO, error) {
	comment, err := s.comments.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrCommentNotFound)
	}
	applyString(&comment.Content, req.Content)

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	out := dto.FromComment(comment)
	return &out, nil
}

func (s *commentService) Delete(ctx context.Context, id uint) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		return notFound(err, apperrors.ErrCommentNotFound)
	}
	return nil
}
