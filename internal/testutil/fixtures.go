package testutil

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"codemingle/internal/model"
)

func SeedUser(tb testing.TB, tx *gorm.DB, username string) *model.User {
	tb.Helper()
	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "pw",
		Role:         model.RoleUser,
		CreatedAt:    time.Now(),
	}
	if err := tx.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, tx *gorm.DB, title string) *model.Course {
	tb.Helper()
	c := &model.Course{
		Title:       title,
		Description: "about " + title,
		Category:    "programming",
		CreatedAt:   time.Now(),
	}
	if err := tx.Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedLesson(tb testing.TB, tx *gorm.DB, courseID uint, title string) *model.Lesson {
	tb.Helper()
	l := &model.Lesson{
		CourseID:  courseID,
		Title:     title,
		Topic:     "basics",
		Content:   "lesson body",
		CreatedAt: time.Now(),
	}
	if err := tx.Omit("Course").Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedQuiz(tb testing.TB, tx *gorm.DB, lessonID uint, questions int) *model.Quiz {
	tb.Helper()
	q := &model.Quiz{
		LessonID:         lessonID,
		Title:            "quiz",
		TimeLimitMinutes: model.DefaultTimeLimitMinutes,
		CreatedAt:        time.Now(),
	}
	if err := tx.Omit("Lesson").Create(q).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	for i := 0; i < questions; i++ {
		question := &model.Question{
			QuizID:        q.ID,
			QuestionText:  "question",
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectAnswer: "A",
			QuestionOrder: i + 1,
		}
		if err := tx.Create(question).Error; err != nil {
			tb.Fatalf("seed question: %v", err)
		}
	}
	return q
}

func SeedComment(tb testing.TB, tx *gorm.DB, userID, lessonID uint, content string) *model.Comment {
	tb.Helper()
	c := &model.Comment{
		UserID:    userID,
		LessonID:  lessonID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := tx.Omit("User", "Lesson").Create(c).Error; err != nil {
		tb.Fatalf("seed comment: %v", err)
	}
	return c
}

func SeedEnrollment(tb testing.TB, tx *gorm.DB, userID, courseID uint, lessonID *uint) *model.Enrollment {
	tb.Helper()
	e := &model.Enrollment{
		UserID:         userID,
		CourseID:       courseID,
		LessonID:       lessonID,
		EnrollmentDate: time.Now(),
	}
	if err := tx.Omit("User", "Course", "Lesson").Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}
