package model

import "time"

// Comment is a user's remark on a lesson.
type Comment struct {
	ID        uint      `json:"commentId" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	LessonID  uint      `json:"lessonId" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Lesson Lesson `json:"-" gorm:"foreignKey:LessonID"`
}
