package model

import "time"

// Enrollment links a user to a course, optionally pinned to a lesson.
// The (user_id, course_id) pair is unique at the storage level.
type Enrollment struct {
	ID             uint      `json:"enrollmentId" gorm:"primaryKey"`
	UserID         uint      `json:"userId" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID       uint      `json:"courseId" gorm:"not null;uniqueIndex:idx_enrollment_user_course;index"`
	LessonID       *uint     `json:"lessonId,omitempty" gorm:"index"`
	EnrollmentDate time.Time `json:"enrollmentDate" gorm:"not null"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`

	// Relations
	User   User    `json:"-" gorm:"foreignKey:UserID"`
	Course Course  `json:"-" gorm:"foreignKey:CourseID"`
	Lesson *Lesson `json:"-" gorm:"foreignKey:LessonID"`
}
