package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codemingle/internal/model"
)

// LessonRepository defines lesson persistence operations. Reads preload the
// owning course so projections can carry its title.
type LessonRepository interface {
	List(ctx context.Context) ([]model.Lesson, error)
	ListByCourse(ctx context.Context, courseID uint) ([]model.Lesson, error)
	FindByID(ctx context.Context, id uint) (*model.Lesson, error)
	Create(ctx context.Context, lesson *model.Lesson) error
	Update(ctx context.Context, lesson *model.Lesson) error
	// Delete removes the lesson with its comments, quizzes and questions.
	// Enrollments pinned to it keep existing without a lesson.
	Delete(ctx context.Context, id uint) error
}

type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository creates a new lesson repository.
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) List(ctx context.Context) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := r.db.WithContext(ctx).Preload("Course").Order("id ASC").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := r.db.WithContext(ctx).Preload("Course").
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepository) FindByID(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.db.WithContext(ctx).Preload("Course").First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(lesson).Error
}

func (r *lessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(lesson).Error
}

func (r *lessonRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Lesson{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return deleteLessons(tx, []uint{id})
	})
}
