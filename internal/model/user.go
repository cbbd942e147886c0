package model

import "time"

// Role values stored on User.Role.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a learner or administrator of the platform.
type User struct {
	ID           uint      `json:"userId" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:100;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null;default:'USER'"`
	ProfileViews int       `json:"profileViews" gorm:"not null;default:0"`
	Rating       float64   `json:"rating" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt    time.Time `json:"-"`

	// Relations
	Enrollments []Enrollment `json:"-" gorm:"foreignKey:UserID"`
	Comments    []Comment    `json:"-" gorm:"foreignKey:UserID"`
}
