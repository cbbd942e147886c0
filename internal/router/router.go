package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gonanoid "github.com/matoous/go-nanoid/v2"
	echoSwagger "github.com/swaggo/echo-swagger"

	"codemingle/docs"
	"codemingle/internal/auth"
	"codemingle/internal/config"
	"codemingle/internal/errors"
	"codemingle/internal/handler"
	"codemingle/internal/logger"
	"codemingle/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Course     *handler.CourseHandler
	Lesson     *handler.LessonHandler
	Quiz       *handler.QuizHandler
	Comment    *handler.CommentHandler
	Enrollment *handler.EnrollmentHandler
	User       *handler.UserHandler
	Auth       *handler.AuthHandler
}

// Register wires routes and middleware. health backs GET /healthz.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *logger.Logger,
	h Handlers,
	jwtService *auth.JWTService,
	authService service.AuthService,
	health func() error,
) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: requestID,
	}))
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(log)))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
	}))
	e.Use(middleware.BodyLimit("2M"))

	e.Validator = &CustomValidator{validator: validator.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		if err := health(); err != nil {
			log.Warn("health check failed", "error", err)
			return c.String(http.StatusServiceUnavailable, "unavailable")
		}
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	requireToken := []echo.MiddlewareFunc{
		echojwt.WithConfig(echojwt.Config{
			SigningKey: jwtService.Secret(),
			ContextKey: auth.ContextKey,
			NewClaimsFunc: func(echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "missing or invalid token",
					Code:  "UNAUTHORIZED",
				}).SetInternal(err)
			},
		}),
		requireAccessToken(authService),
	}

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/demo-login", h.Auth.DemoLogin)
	api.POST("/auth/refresh", h.Auth.Refresh)

	// Secured routes (require JWT authentication)
	secured := api.Group("", requireToken...)
	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/me", h.Auth.Me)

	// Mutating routes are public unless REQUIRE_AUTH is set.
	write := api
	if cfg.RequireAuth {
		write = secured
	}

	api.GET("/courses", h.Course.List)
	api.GET("/courses/:id", h.Course.Get)
	write.POST("/courses", h.Course.Create)
	write.PUT("/courses/:id", h.Course.Update)
	write.DELETE("/courses/:id", h.Course.Delete)

	api.GET("/lessons", h.Lesson.List)
	api.GET("/lessons/course/:courseId", h.Lesson.ListByCourse)
	api.GET("/lessons/:id", h.Lesson.Get)
	write.POST("/lessons", h.Lesson.Create)
	write.PUT("/lessons/:id", h.Lesson.Update)
	write.DELETE("/lessons/:id", h.Lesson.Delete)

	api.GET("/quizzes", h.Quiz.List)
	api.GET("/quizzes/lesson/:lessonId", h.Quiz.ListByLesson)
	api.GET("/quizzes/:id", h.Quiz.Get)
	write.POST("/quizzes", h.Quiz.Create)
	write.PUT("/quizzes/:id", h.Quiz.Update)
	write.DELETE("/quizzes/:id", h.Quiz.Delete)

	api.GET("/comments", h.Comment.List)
	api.GET("/comments/lesson/:lessonId", h.Comment.ListByLesson)
	api.GET("/comments/:id", h.Comment.Get)
	write.POST("/comments", h.Comment.Create)
	write.PUT("/comments/:id", h.Comment.Update)
	write.DELETE("/comments/:id", h.Comment.Delete)

	api.GET("/enrollments", h.Enrollment.List)
	api.GET("/enrollments/check/:userId/:courseId", h.Enrollment.Check)
	api.GET("/enrollments/user/:userId", h.Enrollment.ListByUser)
	api.GET("/enrollments/:id", h.Enrollment.Get)
	write.POST("/enrollments", h.Enrollment.Create)
	write.PUT("/enrollments/:id", h.Enrollment.Update)
	write.DELETE("/enrollments/:id", h.Enrollment.Delete)

	api.GET("/users", h.User.ListUsers)
	api.GET("/users/username/:username", h.User.GetByUsername)
	api.GET("/users/:id", h.User.GetUser)
	write.POST("/users", h.User.CreateUser)
	write.PUT("/users/:id", h.User.UpdateUser)
	write.DELETE("/users/:id", h.User.DeleteUser)
	write.PUT("/users/:id/increment-views", h.User.IncrementViews)
	write.PUT("/users/:id/calculate-rating", h.User.CalculateRating)
}

func requestID() string {
	if id, err := gonanoid.New(); err == nil {
		return id
	}
	return uuid.NewString()
}

func requestLoggerConfig(log *logger.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			kvs := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond).String(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				log.Warn("request", append(kvs, "error", v.Error)...)
				return nil
			}
			log.Info("request", kvs...)
			return nil
		},
	}
}

// requireAccessToken refuses refresh tokens presented as bearer tokens and
// access tokens revoked by logout.
func requireAccessToken(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := auth.ClaimsFromContext(c)
			if !ok || !claims.IsAccess() {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "missing or invalid token",
					Code:  "UNAUTHORIZED",
				})
			}
			if authService.IsRevoked(c.Request().Context(), claims.ID) {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "token has been revoked",
					Code:  "TOKEN_REVOKED",
				})
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
