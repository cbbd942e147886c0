package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codemingle/internal/model"
)

// QuizRepository defines quiz and question persistence operations.
// Every read eagerly loads the questions, ordered by question_order then id.
type QuizRepository interface {
	List(ctx context.Context) ([]model.Quiz, error)
	ListByLesson(ctx context.Context, lessonID uint) ([]model.Quiz, error)
	FindByID(ctx context.Context, id uint) (*model.Quiz, error)
	// Create and Update persist the quiz header only.
	Create(ctx context.Context, quiz *model.Quiz) error
	Update(ctx context.Context, quiz *model.Quiz) error
	// ReplaceQuestions drops every question of the quiz and inserts the given ones.
	ReplaceQuestions(ctx context.Context, quizID uint, questions []model.Question) error
	Delete(ctx context.Context, id uint) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo QuizRepository) error) error
}

type quizRepository struct {
	db *gorm.DB
}

// NewQuizRepository creates a new quiz repository.
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("question_order ASC").Order("id ASC")
}

func (r *quizRepository) withQuestions(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Questions", orderedQuestions)
}

func (r *quizRepository) List(ctx context.Context) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.withQuestions(ctx).Order("id ASC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) ListByLesson(ctx context.Context, lessonID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.withQuestions(ctx).Where("lesson_id = ?", lessonID).Order("id ASC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.withQuestions(ctx).First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(quiz).Error
}

func (r *quizRepository) Update(ctx context.Context, quiz *model.Quiz) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(quiz).Error
}

func (r *quizRepository) ReplaceQuestions(ctx context.Context, quizID uint, questions []model.Question) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("quiz_id = ?", quizID).Delete(&model.Question{}).Error; err != nil {
		return err
	}
	if len(questions) == 0 {
		return nil
	}
	for i := range questions {
		questions[i].ID = 0
		questions[i].QuizID = quizID
	}
	return db.Create(&questions).Error
}

func (r *quizRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &model.Quiz{}, id)
	})
}

// WithTransaction executes a function within a database transaction.
func (r *quizRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo QuizRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &quizRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
