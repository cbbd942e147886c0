package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codemingle/internal/model"
)

// CommentRepository defines comment persistence operations. Detail reads
// preload the author and the lesson with its course.
type CommentRepository interface {
	ListWithDetails(ctx context.Context) ([]model.Comment, error)
	ListByLesson(ctx context.Context, lessonID uint) ([]model.Comment, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Lesson.Course")
}

func (r *commentRepository) ListWithDetails(ctx context.Context) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.details(ctx).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) ListByLesson(ctx context.Context, lessonID uint) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.details(ctx).Where("lesson_id = ?", lessonID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.details(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *commentRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &model.Comment{}, id)
}
