package dto

import "time"

// Request bodies use pointer fields so an omitted field can be told apart
// from a zero value. On update an omitted field keeps its stored value.

type CourseRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	CreatedAt   *time.Time `json:"createdAt"`
}

type LessonRequest struct {
	CourseID  *uint      `json:"courseId"`
	Title     *string    `json:"title"`
	Topic     *string    `json:"topic"`
	Content   *string    `json:"content"`
	CreatedAt *time.Time `json:"createdAt"`
}

type QuestionRequest struct {
	QuestionText  string `json:"questionText"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
	QuestionOrder *int   `json:"questionOrder"`
}

type QuizRequest struct {
	LessonID         *uint      `json:"lessonId"`
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	ShuffleQuestions *bool      `json:"shuffleQuestions"`
	TimeLimitMinutes *int       `json:"timeLimitMinutes" validate:"omitempty,min=1"`
	CreatedAt        *time.Time `json:"createdAt"`
	// Questions replaces the whole question set when present, even if empty.
	Questions *[]QuestionRequest `json:"questions"`
}

type CommentRequest struct {
	UserID    *uint      `json:"userId"`
	LessonID  *uint      `json:"lessonId"`
	Content   *string    `json:"content"`
	CreatedAt *time.Time `json:"createdAt"`
}

type EnrollmentRequest struct {
	UserID   *uint `json:"userId"`
	CourseID *uint `json:"courseId"`
	LessonID *uint `json:"lessonId"`
	// ClearLesson removes the lesson on update; LessonID is ignored then.
	ClearLesson bool `json:"clearLesson"`
	// EnrollmentDate in yyyy-MM-dd form; defaults to today on create.
	EnrollmentDate *string `json:"enrollmentDate"`
}

type UserRequest struct {
	Username  *string    `json:"username"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Password  *string    `json:"password"`
	Role      *string    `json:"role"`
	CreatedAt *time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type DemoLoginRequest struct {
	AccountType string `json:"accountType" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	Email        string `json:"email"`
	Message      string `json:"message"`
}
