package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"codemingle/internal/dto"
	apperrors "codemingle/internal/errors"
	"codemingle/internal/model"
	"codemingle/internal/repository"
)

// EnrollmentService keeps (user, course) enrollments unique. Uniqueness is
// enforced by the storage index; a violation surfaces as ErrDuplicateEnrollment.
type EnrollmentService interface {
	List(ctx context.Context) ([]dto.EnrollmentDTO, error)
	ListByUser(ctx context.Context, userID uint) ([]dto.EnrollmentDTO, error)
	Get(ctx context.Context, id uint) (*dto.EnrollmentDTO, error)
	IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error)
	Create(ctx context.Context, req dto.EnrollmentRequest) (*dto.EnrollmentDTO, error)
	Update(ctx context.Context, id uint, req dto.EnrollmentRequest) (*dto.EnrollmentDTO, error)
	Delete(ctx context.Context, id uint) error
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	users       repository.UserRepository
	courses     repository.CourseRepository
	lessons     repository.LessonRepository
	now         func() time.Time
}

func NewEnrollmentService(
	enrollments repository.EnrollmentRepository,
	users repository.UserRepository,
	courses repository.CourseRepository,
	lessons repository.LessonRepository,
) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		users:       users,
		courses:     courses,
		lessons:     lessons,
		now:         time.Now,
	}
}

func (s *enrollmentService) List(ctx context.Context) ([]dto.EnrollmentDTO, error) {
	enrollments, err := s.enrollments.ListWithDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return dto.Map(enrollments, dto.FromEnrollment), nil
}

func (s *enrollmentService) ListByUser(ctx context.Context, userID uint) ([]dto.EnrollmentDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	enrollments, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments of user %d: %w", userID, err)
	}
	return dto.Map(enrollments, dto.FromEnrollment), nil
}

func (s *enrollmentService) Get(ctx context.Context, id uint) (*dto.EnrollmentDTO, error) {
	enrollment, err := s.enrollments.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrEnrollmentNotFound)
	}
	out := dto.FromEnrollment(enrollment)
	return &out, nil
}

// IsEnrolled fails with NotFound when the user or the course does not exist.
func (s *enrollmentService) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return false, notFound(err, apperrors.ErrUserNotFound)
	}
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return false, notFound(err, apperrors.ErrCourseNotFound)
	}
	return s.enrollments.Exists(ctx, userID, courseID)
}

func (s *enrollmentService) Create(ctx context.Context, req dto.EnrollmentRequest) (*dto.EnrollmentDTO, error) {
	userID, err := requiredID(req.UserID, "userId")
	if err != nil {
		return nil, err
	}
	courseID, err := requiredID(req.CourseID, "courseId")
	if err != nil {
		return nil, err
	}
	enrollment := &model.Enrollment{UserID: userID, CourseID: courseID}

	enrollment.EnrollmentDate = s.now()
	if req.EnrollmentDate != nil {
		if enrollment.EnrollmentDate, err = parseDate(*req.EnrollmentDate, s.now().Location()); err != nil {
			return nil, err
		}
	}
	if err := s.resolve(ctx, enrollment, true, true); err != nil {
		return nil, err
	}
	if req.LessonID != nil {
		if err := s.resolveLesson(ctx, enrollment, *req.LessonID); err != nil {
			return nil, err
		}
	}
	if err := lessonInCourse(enrollment); err != nil {
		return nil, err
	}

	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, translateEnrollmentErr("create enrollment", err)
	}
	return s.Get(ctx, enrollment.ID)
}

// Update falls back to the stored user and course when the request omits
// them. An omitted lessonId keeps the current lesson; clearLesson removes it.
func (s *enrollmentService) Update(ctx context.Context, id uint, req dto.EnrollmentRequest) (*dto.EnrollmentDTO, error) {
	enrollment, err := s.enrollments.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrEnrollmentNotFound)
	}

	userChanged := req.UserID != nil && *req.UserID != enrollment.UserID
	courseChanged := req.CourseID != nil && *req.CourseID != enrollment.CourseID
	if userChanged {
		enrollment.UserID = *req.UserID
	}
	if courseChanged {
		enrollment.CourseID = *req.CourseID
	}
	if err := s.resolve(ctx, enrollment, userChanged, courseChanged); err != nil {
		return nil, err
	}

	switch {
	case req.ClearLesson:
		enrollment.LessonID = nil
		enrollment.Lesson = nil
	case req.LessonID != nil:
		if err := s.resolveLesson(ctx, enrollment, *req.LessonID); err != nil {
			return nil, err
		}
	}
	if err := lessonInCourse(enrollment); err != nil {
		return nil, err
	}
	if req.EnrollmentDate != nil {
		if enrollment.EnrollmentDate, err = parseDate(*req.EnrollmentDate, s.now().Location()); err != nil {
			return nil, err
		}
	}

	if err := s.enrollments.Update(ctx, enrollment); err != nil {
		return nil, translateEnrollmentErr("update enrollment", err)
	}
	out := dto.FromEnrollment(enrollment)
	return &out, nil
}

func (s *enrollmentService) Delete(ctx context.Context, id uint) error {
	if err := s.enrollments.Delete(ctx, id); err != nil {
		return notFound(err, apperrors.ErrEnrollmentNotFound)
	}
	return nil
}

// resolve loads the referenced user and course so the projection can carry their names.
func (s *enrollmentService) resolve(ctx context.Context, e *model.Enrollment, user, course bool) error {
	if user {
		u, err := s.users.FindByID(ctx, e.UserID)
		if err != nil {
			return notFound(err, apperrors.ErrUserNotFound)
		}
		e.User = *u
	}
	if course {
		c, err := s.courses.FindByID(ctx, e.CourseID)
		if err != nil {
			return notFound(err, apperrors.ErrCourseNotFound)
		}
		e.Course = *c
	}
	return nil
}

func (s *enrollmentService) resolveLesson(ctx context.Context, e *model.Enrollment, lessonID uint) error {
	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return notFound(err, apperrors.ErrLessonNotFound)
	}
	e.LessonID = &lesson.ID
	e.Lesson = lesson
	return nil
}

// lessonInCourse rejects a current lesson that belongs to another course.
func lessonInCourse(e *model.Enrollment) error {
	if e.LessonID == nil || e.Lesson == nil {
		return nil
	}
	if e.Lesson.CourseID != e.CourseID {
		return apperrors.Validationf("lesson %d does not belong to course %d", *e.LessonID, e.CourseID)
	}
	return nil
}

func translateEnrollmentErr(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrDuplicateEnrollment
	}
	return fmt.Errorf("%s: %w", op, err)
}
