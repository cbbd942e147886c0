package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codemingle/internal/model"
)

// EnrollmentRepository defines enrollment persistence operations. Detail
// reads preload user, course and the optional lesson.
type EnrollmentRepository interface {
	ListWithDetails(ctx context.Context) ([]model.Enrollment, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Enrollment, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*model.Enrollment, error)
	Exists(ctx context.Context, userID, courseID uint) (bool, error)
	// Create and Update return gorm.ErrDuplicatedKey when another enrollment
	// already holds the (user, course) pair.
	Create(ctx context.Context, enrollment *model.Enrollment) error
	Update(ctx context.Context, enrollment *model.Enrollment) error
	Delete(ctx context.Context, id uint) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Course").Preload("Lesson")
}

func (r *enrollmentRepository) ListWithDetails(ctx context.Context) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := r.details(ctx).Order("id ASC").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := r.details(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.details(ctx).First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(enrollment).Error
}

func (r *enrollmentRepository) Update(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(enrollment).Error
}

func (r *enrollmentRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &model.Enrollment{}, id)
}
