package model

import "time"

// DefaultTimeLimitMinutes applies when a quiz is created without a time limit.
const DefaultTimeLimitMinutes = 30

// Quiz is attached to a lesson and owns an ordered set of questions.
// ShuffleQuestions is a display hint for clients; the server never reorders.
type Quiz struct {
	ID               uint      `json:"quizId" gorm:"primaryKey"`
	LessonID         uint      `json:"lessonId" gorm:"not null;index"`
	Title            string    `json:"title" gorm:"size:255;not null"`
	Description      string    `json:"description" gorm:"type:text"`
	ShuffleQuestions bool      `json:"shuffleQuestions" gorm:"not null;default:false"`
	TimeLimitMinutes int       `json:"timeLimitMinutes" gorm:"not null;default:30"`
	CreatedAt        time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt        time.Time `json:"-"`

	// Relations
	Lesson    Lesson     `json:"-" gorm:"foreignKey:LessonID"`
	Questions []Question `json:"questions" gorm:"foreignKey:QuizID"`
}

// TableName pins the table name so it does not depend on pluralisation rules.
func (Quiz) TableName() string { return "quizzes" }

// Question is a four-option multiple-choice item of a quiz.
type Question struct {
	ID            uint   `json:"questionId" gorm:"primaryKey"`
	QuizID        uint   `json:"quizId" gorm:"not null;index"`
	QuestionText  string `json:"questionText" gorm:"type:text;not null"`
	OptionA       string `json:"optionA" gorm:"size:500"`
	OptionB       string `json:"optionB" gorm:"size:500"`
	OptionC       string `json:"optionC" gorm:"size:500"`
	OptionD       string `json:"optionD" gorm:"size:500"`
	CorrectAnswer string `json:"correctAnswer" gorm:"size:1;not null"` // A, B, C or D
	QuestionOrder int    `json:"questionOrder" gorm:"not null;default:0"`
}
