package main

import (
	"context"
	"os"

	"codemingle/internal/config"
	"codemingle/internal/db"
	"codemingle/internal/dto"
	apperrors "codemingle/internal/errors"
	"codemingle/internal/logger"
	"codemingle/internal/model"
	"codemingle/internal/repository"
	"codemingle/internal/service"
)

// demoUser is an account the demo-login endpoint signs in as.
type demoUser struct {
	username string
	email    string
	password string
	role     string
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatal("database init", "error", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("migrate database", "error", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)
	lessonRepo := repository.NewLessonRepository(gormDB)
	users := service.NewUserService(userRepo, nil)
	courses := service.NewCourseService(courseRepo, nil)
	lessons := service.NewLessonService(lessonRepo, courseRepo)
	quizzes := service.NewQuizService(repository.NewQuizRepository(gormDB), lessonRepo)

	accounts := []demoUser{
		{"admin", "admin@codemingle.dev", getEnv("SEED_ADMIN_PASSWORD", "admin123"), model.RoleAdmin},
		{"demo", "demo@codemingle.dev", getEnv("SEED_DEMO_PASSWORD", "demo123"), model.RoleUser},
	}
	for _, a := range accounts {
		if _, err := users.GetByUsername(ctx, a.username); err == nil {
			log.Info("account exists, skipping", "username", a.username)
			continue
		} else if !apperrors.IsNotFound(err) {
			log.Fatal("look up account", "username", a.username, "error", err)
		}
		if _, err := users.Create(ctx, dto.UserRequest{
			Username: &a.username,
			Email:    &a.email,
			Password: &a.password,
			Role:     &a.role,
		}); err != nil {
			log.Fatal("create account", "username", a.username, "error", err)
		}
		log.Info("account created", "username", a.username, "role", a.role)
	}

	existing, err := courses.List(ctx)
	if err != nil {
		log.Fatal("list courses", "error", err)
	}
	if len(existing) > 0 {
		log.Info("courses present, skipping sample content", "count", len(existing))
		return
	}
	if err := seedSampleCourse(ctx, courses, lessons, quizzes); err != nil {
		log.Fatal("seed sample course", "error", err)
	}
	log.Info("sample course created")
}

func seedSampleCourse(ctx context.Context, courses service.CourseService, lessons service.LessonService, quizzes service.QuizService) error {
	course, err := courses.Create(ctx, dto.CourseRequest{
		Title:       ptr("Go Fundamentals"),
		Description: ptr("Types, functions, interfaces and concurrency in Go."),
		Category:    ptr("Programming"),
	})
	if err != nil {
		return err
	}
	lesson, err := lessons.Create(ctx, dto.LessonRequest{
		CourseID: &course.CourseID,
		Title:    ptr("Goroutines and channels"),
		Topic:    ptr("Concurrency"),
		Content:  ptr("A goroutine is a function running concurrently with other goroutines in the same address space."),
	})
	if err != nil {
		return err
	}
	_, err = quizzes.Create(ctx, dto.QuizRequest{
		LessonID:    &lesson.LessonID,
		Title:       ptr("Concurrency check"),
		Description: ptr("Three questions on goroutines and channels."),
		Questions: &[]dto.QuestionRequest{
			{QuestionText: "Which keyword starts a goroutine?", OptionA: "go", OptionB: "async", OptionC: "spawn", OptionD: "thread", CorrectAnswer: "A"},
			{QuestionText: "What happens when sending on a closed channel?", OptionA: "Nothing", OptionB: "It blocks", OptionC: "It panics", OptionD: "It returns false", CorrectAnswer: "C"},
			{QuestionText: "Which statement waits on several channel operations?", OptionA: "switch", OptionB: "select", OptionC: "for", OptionD: "defer", CorrectAnswer: "B"},
		},
	})
	return err
}

func ptr(s string) *string { return &s }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
