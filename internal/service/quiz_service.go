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

// QuizService manages quizzes together with their questions. Header and
// questions are written in one transaction.
type QuizService interface {
	List(ctx context.Context) ([]dto.QuizDTO, error)
	ListByLesson(ctx context.Context, lessonID uint) ([]dto.QuizDTO, error)
	Get(ctx context.Context, id uint) (*dto.QuizDTO, error)
	Create(ctx context.Context, req dto.QuizRequest) (*dto.QuizDTO, error)
	// Update replaces the full question set when req.Questions is present
	// and leaves the questions alone otherwise.
	Update(ctx context.Context, id uint, req dto.QuizRequest) (*dto.QuizDTO, error)
	Delete(ctx context.Context, id uint) error
}

type quizService struct {
	quizzes repository.QuizRepository
	lessons repository.LessonRepository
	now     func() time.Time
}

func NewQuizService(quizzes repository.QuizRepository, lessons repository.LessonRepository) QuizService {
	return &quizService{quizzes: quizzes, lessons: lessons, now: time.Now}
}

func (s *quizService) List(ctx context.Context) ([]dto.QuizDTO, error) {
	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return dto.Map(quizzes, dto.FromQuiz), nil
}

func (s *quizService) ListByLesson(ctx context.Context, lessonID uint) ([]dto.QuizDTO, error) {
	if _, err := s.lessons.FindByID(ctx, lessonID); err != nil {
		return nil, notFound(err, apperrors.ErrLessonNotFound)
	}
	quizzes, err := s.quizzes.ListByLesson(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes of lesson %d: %w", lessonID, err)
	}
	return dto.Map(quizzes, dto.FromQuiz), nil
}

func (s *quizService) Get(ctx context.Context, id uint) (*dto.QuizDTO, error) {
	quiz, err := s.quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrQuizNotFound)
	}
	out := dto.FromQuiz(quiz)
	return &out, nil
}

func (s *quizService) Create(ctx context.Context, req dto.QuizRequest) (*dto.QuizDTO, error) {
	lessonID, err := requiredID(req.LessonID, "lessonId")
	if err != nil {
		return nil, err
	}
	title, err := requiredString(req.Title, "title")
	if err != nil {
		return nil, err
	}
	var questions []model.Question
	if req.Questions != nil {
		if questions, err = buildQuestions(*req.Questions); err != nil {
			return nil, err
		}
	}
	if _, err := s.lessons.FindByID(ctx, lessonID); err != nil {
		return nil, notFound(err, apperrors.ErrLessonNotFound)
	}

	quiz := &model.Quiz{
		LessonID:         lessonID,
		Title:            title,
		Description:      optionalString(req.Description),
		TimeLimitMinutes: model.DefaultTimeLimitMinutes,
		CreatedAt:        createdAtOrNow(req.CreatedAt, s.now()),
	}
	if req.ShuffleQuestions != nil {
		quiz.ShuffleQuestions = *req.ShuffleQuestions
	}
	if req.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = *req.TimeLimitMinutes
	}

	err = s.quizzes.WithTransaction(ctx, func(ctx context.Context, repo repository.QuizRepository) error {
		if err := repo.Create(ctx, quiz); err != nil {
			return fmt.Errorf("create quiz: %w", err)
		}
		if err := repo.ReplaceQuestions(ctx, quiz.ID, questions); err != nil {
			return fmt.Errorf("create questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, quiz.ID)
}

func (s *quizService) Update(ctx context.Context, id uint, req dto.QuizRequest) (*dto.QuizDTO, error) {
	quiz, err := s.quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrQuizNotFound)
	}
	if req.LessonID != nil && *req.LessonID != quiz.LessonID {
		if _, err := s.lessons.FindByID(ctx, *req.LessonID); err != nil {
			return nil, notFound(err, apperrors.ErrLessonNotFound)
		}
		quiz.LessonID = *req.LessonID
	}
	var questions []model.Question
	if req.Questions != nil {
		if questions, err = buildQuestions(*req.Questions); err != nil {
			return nil, err
		}
	}
	applyString(&quiz.Title, req.Title)
	applyString(&quiz.Description, req.Description)
	if req.ShuffleQuestions != nil {
		quiz.ShuffleQuestions = *req.ShuffleQuestions
	}
	if req.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = *req.TimeLimitMinutes
	}
	quiz.Questions = nil

	err = s.quizzes.WithTransaction(ctx, func(ctx context.Context, repo repository.QuizRepository) error {
		if err := repo.Update(ctx, quiz); err != nil {
			return fmt.Errorf("update quiz: %w", err)
		}
		if req.Questions == nil {
			return nil
		}
		if err := repo.ReplaceQuestions(ctx, quiz.ID, questions); err != nil {
			return fmt.Errorf("replace questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, quiz.ID)
}

func (s *quizService) Delete(ctx context.Context, id uint) error {
	if err := s.quizzes.Delete(ctx, id); err != nil {
		return notFound(err, apperrors.ErrQuizNotFound)
	}
	return nil
}

// buildQuestions validates the incoming questions. A missing order falls back
// to the position in the request, starting at 1.
func buildQuestions(in []dto.QuestionRequest) ([]model.Question, error) {
	out := make([]model.Question, 0, len(in))
	for i, q := range in {
		text := strings.TrimSpace(q.QuestionText)
		if text == "" {
			return nil, apperrors.Validationf("questions[%d].questionText is required", i)
		}
		answer := strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
		switch answer {
		case "A", "B", "C", "D":
		default:
			return nil, apperrors.Validationf("questions[%d].correctAnswer must be one of A, B, C, D", i)
		}
		order := i + 1
		if q.QuestionOrder != nil {
			order = *q.QuestionOrder
		}
		out = append(out, model.Question{
			QuestionText:  text,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectAnswer: answer,
			QuestionOrder: order,
		})
	}
	return out, nil
}
