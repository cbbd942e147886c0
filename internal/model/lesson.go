package model

import "time"

// Lesson belongs to exactly one course.
type Lesson struct {
	ID        uint      `json:"lessonId" gorm:"primaryKey"`
	CourseID  uint      `json:"courseId" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Topic     string    `json:"topic" gorm:"size:255"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	Course   Course    `json:"-" gorm:"foreignKey:CourseID"`
	Comments []Comment `json:"-" gorm:"foreignKey:LessonID"`
	Quizzes  []Quiz    `json:"-" gorm:"foreignKey:LessonID"`
}
