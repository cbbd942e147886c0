// Package dto holds the flattened JSON projections returned by the API and
// the request bodies it accepts.
package dto

import (
	"time"

	"codemingle/internal/model"
)

// Date layouts used by projections.
const (
	CommentTimeLayout    = "2006-01-02 15:04:05"
	EnrollmentDateLayout = "2006-01-02"
)

type CourseDTO struct {
	CourseID    uint      `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromCourse(c *model.Course) CourseDTO {
	return CourseDTO{
		CourseID:    c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		CreatedAt:   c.CreatedAt,
	}
}

type LessonDTO struct {
	LessonID    uint      `json:"lessonId"`
	Title       string    `json:"title"`
	Topic       string    `json:"topic"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	CourseID    uint      `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
}

func FromLesson(l *model.Lesson) LessonDTO {
	return LessonDTO{
		LessonID:    l.ID,
		Title:       l.Title,
		Topic:       l.Topic,
		Content:     l.Content,
		CreatedAt:   l.CreatedAt,
		CourseID:    l.CourseID,
		CourseTitle: l.Course.Title,
	}
}

type QuestionDTO struct {
	QuestionID    uint   `json:"questionId"`
	QuizID        uint   `json:"quizId"`
	QuestionText  string `json:"questionText"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
	QuestionOrder int    `json:"questionOrder"`
}

type QuizDTO struct {
	QuizID           uint          `json:"quizId"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	LessonID         uint          `json:"lessonId"`
	ShuffleQuestions bool          `json:"shuffleQuestions"`
	TimeLimitMinutes int           `json:"timeLimitMinutes"`
	CreatedAt        time.Time     `json:"createdAt"`
	Questions        []QuestionDTO `json:"questions"`
}

// FromQuiz keeps the question order the repository loaded.
func FromQuiz(q *model.Quiz) QuizDTO {
	questions := make([]QuestionDTO, 0, len(q.Questions))
	for _, qu := range q.Questions {
		questions = append(questions, QuestionDTO{
			QuestionID:    qu.ID,
			QuizID:        qu.QuizID,
			QuestionText:  qu.QuestionText,
			OptionA:       qu.OptionA,
			OptionB:       qu.OptionB,
			OptionC:       qu.OptionC,
			OptionD:       qu.OptionD,
			CorrectAnswer: qu.CorrectAnswer,
			QuestionOrder: qu.QuestionOrder,
		})
	}
	return QuizDTO{
		QuizID:           q.ID,
		Title:            q.Title,
		Description:      q.Description,
		LessonID:         q.LessonID,
		ShuffleQuestions: q.ShuffleQuestions,
		TimeLimitMinutes: q.TimeLimitMinutes,
		CreatedAt:        q.CreatedAt,
		Questions:        questions,
	}
}

type CommentDTO struct {
	CommentID   uint   `json:"commentId"`
	UserID      uint   `json:"userId"`
	UserName    string `json:"userName"`
	LessonID    uint   `json:"lessonId"`
	LessonTitle string `json:"lessonTitle"`
	CourseID    uint   `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
	Content     string `json:"content"`
	CreatedAt   string `json:"createdAt"`
}

// FromComment expects User and Lesson.Course to be loaded.
func FromComment(c *model.Comment) CommentDTO {
	return CommentDTO{
		CommentID:   c.ID,
		UserID:      c.UserID,
		UserName:    c.User.Username,
		LessonID:    c.LessonID,
		LessonTitle: c.Lesson.Title,
		CourseID:    c.Lesson.CourseID,
		CourseTitle: c.Lesson.Course.Title,
		Content:     c.Content,
		CreatedAt:   c.CreatedAt.Format(CommentTimeLayout),
	}
}

type EnrollmentDTO struct {
	EnrollmentID   uint   `json:"enrollmentId"`
	UserID         uint   `json:"userId"`
	UserName       string `json:"userName"`
	CourseID       uint   `json:"courseId"`
	CourseName     string `json:"courseName"`
	LessonID       *uint  `json:"lessonId"`
	EnrollmentDate string `json:"enrollmentDate"`
}

// FromEnrollment expects User and Course to be loaded.
func FromEnrollment(e *model.Enrollment) EnrollmentDTO {
	return EnrollmentDTO{
		EnrollmentID:   e.ID,
		UserID:         e.UserID,
		UserName:       e.User.Username,
		CourseID:       e.CourseID,
		CourseName:     e.Course.Title,
		LessonID:       e.LessonID,
		EnrollmentDate: e.EnrollmentDate.Format(EnrollmentDateLayout),
	}
}

type UserDTO struct {
	UserID       uint      `json:"userId"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	ProfileViews int       `json:"profileViews"`
	Rating       float64   `json:"rating"`
}

func FromUser(u *model.User) UserDTO {
	return UserDTO{
		UserID:       u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		ProfileViews: u.ProfileViews,
		Rating:       u.Rating,
	}
}

// Map projects every element of in with fn.
func Map[M any, D any](in []M, fn func(*M) D) []D {
	out := make([]D, 0, len(in))
	for i := range in {
		out = append(out, fn(&in[i]))
	}
	return out
}
