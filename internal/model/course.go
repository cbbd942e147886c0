package model

import "time"

// Course groups lessons and is the unit users enroll in.
type Course struct {
	ID          uint      `json:"courseId" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"size:100;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time `json:"-"`

	// Relations
	Lessons     []Lesson     `json:"-" gorm:"foreignKey:CourseID"`
	Enrollments []Enrollment `json:"-" gorm:"foreignKey:CourseID"`
}
