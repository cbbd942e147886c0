package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"codemingle/internal/auth"
	"codemingle/internal/cache"
	"codemingle/internal/config"
	"codemingle/internal/db"
	"codemingle/internal/handler"
	"codemingle/internal/logger"
	"codemingle/internal/repository"
	"codemingle/internal/router"
	"codemingle/internal/service"
)

// @title CodeMingle API
// @version 1.0
// @description Courses, lessons, quizzes, comments, enrollments and users of the CodeMingle learning platform.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Debug("config loaded", "port", cfg.ServerPort, "db_driver", cfg.DBDriver, "redis_addr", cfg.RedisAddr)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatal("database init", "driver", cfg.DBDriver, "error", err)
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal("reset database", "error", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("migrate database", "error", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable, caching and token revocation disabled", "addr", cfg.RedisAddr, "error", err)
	}
	cancelPing()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)
	lessonRepo := repository.NewLessonRepository(gormDB)
	quizRepo := repository.NewQuizRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	enrollmentRepo := repository.NewEnrollmentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	courseService := service.NewCourseService(courseRepo, cacheClient)
	lessonService := service.NewLessonService(lessonRepo, courseRepo)
	quizService := service.NewQuizService(quizRepo, lessonRepo)
	commentService := service.NewCommentService(commentRepo, userRepo, lessonRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, userRepo, courseRepo, lessonRepo)
	userService := service.NewUserService(userRepo, cacheClient)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, log, router.Handlers{
		Course:     handler.NewCourseHandler(courseService, log),
		Lesson:     handler.NewLessonHandler(lessonService, log),
		Quiz:       handler.NewQuizHandler(quizService, log),
		Comment:    handler.NewCommentHandler(commentService, log),
		Enrollment: handler.NewEnrollmentHandler(enrollmentService, log),
		User:       handler.NewUserHandler(userService, log),
		Auth:       handler.NewAuthHandler(authService, log),
	}, jwtService, authService, func() error { return db.Ping(gormDB) })

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server starting", "addr", addr, "driver", cfg.DBDriver, "require_auth", cfg.RequireAuth)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	log.Info("server stopped")
}
