package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"codemingle/internal/dto"
	apperrors "codemingle/internal/errors"
	"codemingle/internal/model"
	"codemingle/internal/repository"
	"codemingle/internal/testutil"
)

type services struct {
	db          *gorm.DB
	courses     CourseService
	lessons     LessonService
	quizzes     QuizService
	comments    CommentService
	enrollments EnrollmentService
	users       UserService
}

func newServices(t *testing.T) services {
	t.Helper()
	db := testutil.DB(t)
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	return services{
		db:          db,
		courses:     NewCourseService(courseRepo, nil),
		lessons:     NewLessonService(lessonRepo, courseRepo),
		quizzes:     NewQuizService(repository.NewQuizRepository(db), lessonRepo),
		comments:    NewCommentService(repository.NewCommentRepository(db), userRepo, lessonRepo),
		enrollments: NewEnrollmentService(repository.NewEnrollmentRepository(db), userRepo, courseRepo, lessonRepo),
		users:       NewUserService(userRepo, nil),
	}
}

func ptr[T any](v T) *T { return &v }

func TestGetMissingIDIsNotFound(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.courses.Get(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = s.lessons.Get(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)
	_, err = s.quizzes.Get(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrQuizNotFound)
	_, err = s.comments.Get(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
	_, err = s.enrollments.Get(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
	_, err = s.users.Get(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	_, err = s.users.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestEnrollmentCreate(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, "alice")
	course := testutil.SeedCourse(t, s.db, "Go")
	lesson := testutil.SeedLesson(t, s.db, course.ID, "intro")

	got, err := s.enrollments.Create(ctx, dto.EnrollmentRequest{
		UserID:         &user.ID,
		CourseID:       &course.ID,
		LessonID:       &lesson.ID,
		EnrollmentDate: ptr("2024-03-15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserName)
	assert.Equal(t, "Go", got.CourseName)
	assert.Equal(t, "2024-03-15", got.EnrollmentDate)
	require.NotNil(t, got.LessonID)
	assert.Equal(t, lesson.ID, *got.LessonID)

	_, err = s.enrollments.Create(ctx, dto.EnrollmentRequest{UserID: &user.ID, CourseID: &course.ID})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEnrollment)

	enrolled, err := s.enrollments.IsEnrolled(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestEnrollmentCreate_Failures(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, "alice")
	course := testutil.SeedCourse(t, s.db, "Go")

	tests := []struct {
		name string
		req  dto.EnrollmentRequest
		want error
	}{
		{"unknown user", dto.EnrollmentRequest{UserID: ptr(uint(99)), CourseID: &course.ID}, apperrors.ErrUserNotFound},
		{"unknown course", dto.EnrollmentRequest{UserID: &user.ID, CourseID: ptr(uint(99))}, apperrors.ErrCourseNotFound},
		{"unknown lesson", dto.EnrollmentRequest{UserID: &user.ID, CourseID: &course.ID, LessonID: ptr(uint(99))}, apperrors.ErrLessonNotFound},
		{"bad date", dto.EnrollmentRequest{UserID: &user.ID, CourseID: &course.ID, EnrollmentDate: ptr("15/03/2024")}, apperrors.ErrInvalidDate},
		{"missing course", dto.EnrollmentRequest{UserID: &user.ID}, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.enrollments.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var n int64
	require.NoError(t, s.db.Model(&model.Enrollment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestEnrollmentUpdate(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := testutil.SeedUser(t, s.db, "alice")
	goCourse := testutil.SeedCourse(t, s.db, "Go")
	rust := testutil.SeedCourse(t, s.db, "Rust")
	lesson := testutil.SeedLesson(t, s.db, goCourse.ID, "intro")
	first := testutil.SeedEnrollment(t, s.db, alice.ID, goCourse.ID, &lesson.ID)
	second := testutil.SeedEnrollment(t, s.db, alice.ID, rust.ID, nil)

	// same pair as its own stored value is not a conflict
	got, err := s.enrollments.Update(ctx, first.ID, dto.EnrollmentRequest{UserID: &alice.ID, CourseID: &goCourse.ID})
	require.NoError(t, err)
	require.NotNil(t, got.LessonID, "omitted lessonId keeps the lesson")

	_, err = s.enrollments.Update(ctx, second.ID, dto.EnrollmentRequest{CourseID: &goCourse.ID})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEnrollment)

	got, err = s.enrollments.Update(ctx, first.ID, dto.EnrollmentRequest{ClearLesson: true, EnrollmentDate: ptr("2023-01-02")})
	require.NoError(t, err)
	assert.Nil(t, got.LessonID)
	assert.Equal(t, "2023-01-02", got.EnrollmentDate)

	reloaded, err := s.enrollments.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.LessonID)
	assert.Equal(t, goCourse.ID, reloaded.CourseID)

	_, err = s.enrollments.Update(ctx, 999, dto.EnrollmentRequest{})
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestEnrollment_LessonMustBelongToCourse(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := testutil.SeedUser(t, s.db, "alice")
	goCourse := testutil.SeedCourse(t, s.db, "Go")
	rust := testutil.SeedCourse(t, s.db, "Rust")
	rustLesson := testutil.SeedLesson(t, s.db, rust.ID, "ownership")
	goLesson := testutil.SeedLesson(t, s.db, goCourse.ID, "intro")

	_, err := s.enrollments.Create(ctx, dto.EnrollmentRequest{UserID: &alice.ID, CourseID: &goCourse.ID, LessonID: &rustLesson.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	got, err := s.enrollments.Create(ctx, dto.EnrollmentRequest{UserID: &alice.ID, CourseID: &goCourse.ID, LessonID: &goLesson.ID})
	require.NoError(t, err)

	// moving to another course while keeping the old lesson is rejected
	_, err = s.enrollments.Update(ctx, got.EnrollmentID, dto.EnrollmentRequest{CourseID: &rust.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	got, err = s.enrollments.Update(ctx, got.EnrollmentID, dto.EnrollmentRequest{CourseID: &rust.ID, LessonID: &rustLesson.ID})
	require.NoError(t, err)
	assert.Equal(t, rust.ID, got.CourseID)
	require.NotNil(t, got.LessonID)
	assert.Equal(t, rustLesson.ID, *got.LessonID)
}

func TestIsEnrolled_RequiresBothSides(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, "alice")
	course := testutil.SeedCourse(t, s.db, "Go")

	enrolled, err := s.enrollments.IsEnrolled(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	_, err = s.enrollments.IsEnrolled(ctx, 99, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	_, err = s.enrollments.IsEnrolled(ctx, user.ID, 99)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestQuizCreateAndReplaceQuestions(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, s.db, "Go")
	lesson := testutil.SeedLesson(t, s.db, course.ID, "intro")

	created, err := s.quizzes.Create(ctx, dto.QuizRequest{
		LessonID: &lesson.ID,
		Title:    ptr("Basics"),
		Questions: &[]dto.QuestionRequest{
			{QuestionText: "Q2", CorrectAnswer: "b", QuestionOrder: ptr(2)},
			{QuestionText: "Q1", CorrectAnswer: "A", QuestionOrder: ptr(1)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTimeLimitMinutes, created.TimeLimitMinutes)
	require.Len(t, created.Questions, 2)
	assert.Equal(t, "Q1", created.Questions[0].QuestionText)
	assert.Equal(t, "B", created.Questions[1].CorrectAnswer)

	// header-only update keeps the questions
	updated, err := s.quizzes.Update(ctx, created.QuizID, dto.QuizRequest{Title: ptr("Renamed"), TimeLimitMinutes: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 10, updated.TimeLimitMinutes)
	assert.Len(t, updated.Questions, 2)

	updated, err = s.quizzes.Update(ctx, created.QuizID, dto.QuizRequest{
		Questions: &[]dto.QuestionRequest{{QuestionText: "Only", CorrectAnswer: "D"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "Only", updated.Questions[0].QuestionText)
	assert.Equal(t, 1, updated.Questions[0].QuestionOrder)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())

	var n int64
	require.NoError(t, s.db.Model(&model.Question{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	byLesson, err := s.quizzes.ListByLesson(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Len(t, byLesson, 1)
	_, err = s.quizzes.ListByLesson(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)
}

func TestQuizCreate_RejectsBadAnswer(t *testing.T) {
	s := newServices(t)
	course := testutil.SeedCourse(t, s.db, "Go")
	lesson := testutil.SeedLesson(t, s.db, course.ID, "intro")

	_, err := s.quizzes.Create(context.Background(), dto.QuizRequest{
		LessonID:  &lesson.ID,
		Title:     ptr("Basics"),
		Questions: &[]dto.QuestionRequest{{QuestionText: "Q", CorrectAnswer: "E"}},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

type failingQuestions struct {
	repository.QuizRepository
}

func (f failingQuestions) ReplaceQuestions(context.Context, uint, []model.Question) error {
	return errors.New("insert failed")
}

func (f failingQuestions) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.QuizRepository) error) error {
	return f.QuizRepository.WithTransaction(ctx, func(ctx context.Context, repo repository.QuizRepository) error {
		return fn(ctx, failingQuestions{repo})
	})
}

func TestQuizCreate_RollsBackHeaderOnQuestionFailure(t *testing.T) {
	db := testutil.DB(t)
	course := testutil.SeedCourse(t, db, "Go")
	lesson := testutil.SeedLesson(t, db, course.ID, "intro")
	svc := NewQuizService(failingQuestions{repository.NewQuizRepository(db)}, repository.NewLessonRepository(db))

	_, err := svc.Create(context.Background(), dto.QuizRequest{
		LessonID:  &lesson.ID,
		Title:     ptr("Basics"),
		Questions: &[]dto.QuestionRequest{{QuestionText: "Q", CorrectAnswer: "A"}},
	})
	require.Error(t, err)

	var n int64
	require.NoError(t, db.Model(&model.Quiz{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPartialUpdate_KeepsOmittedAndBlankFields(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	created, err := s.courses.Create(ctx, dto.CourseRequest{
		Title:       ptr("  Go  "),
		Description: ptr("desc"),
		Category:    ptr("lang"),
		CreatedAt:   ptr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Equal(t, "Go", created.Title)

	updated, err := s.courses.Update(ctx, created.CourseID, dto.CourseRequest{
		Title:     ptr("   "),
		Category:  ptr("systems"),
		CreatedAt: ptr(time.Now()),
	})
	require.NoError(t, err)
	assert.Equal(t, "Go", updated.Title)
	assert.Equal(t, "desc", updated.Description)
	assert.Equal(t, "systems", updated.Category)
	assert.Equal(t, 2020, updated.CreatedAt.Year())

	_, err = s.courses.Update(ctx, 404, dto.CourseRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = s.courses.Create(ctx, dto.CourseRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLessonCreate_RequiresCourse(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.lessons.Create(ctx, dto.LessonRequest{CourseID: ptr(uint(7)), Title: ptr("intro")})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	course := testutil.SeedCourse(t, s.db, "Go")
	got, err := s.lessons.Create(ctx, dto.LessonRequest{CourseID: &course.ID, Title: ptr("intro")})
	require.NoError(t, err)
	assert.Equal(t, "Go", got.CourseTitle)

	list, err := s.lessons.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCommentCreate(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, "alice")
	course := testutil.SeedCourse(t, s.db, "Go")
	lesson := testutil.SeedLesson(t, s.db, course.ID, "intro")
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)

	got, err := s.comments.Create(ctx, dto.CommentRequest{
		UserID: &user.ID, LessonID: &lesson.ID, Content: ptr("  great  "), CreatedAt: &at,
	})
	require.NoError(t, err)
	assert.Equal(t, "great", got.Content)
	assert.Equal(t, "alice", got.UserName)
	assert.Equal(t, "intro", got.LessonTitle)
	assert.Equal(t, "Go", got.CourseTitle)
	assert.Equal(t, "2024-05-06 07:08:09", got.CreatedAt)

	_, err = s.comments.Create(ctx, dto.CommentRequest{UserID: &user.ID, LessonID: &lesson.ID, Content: ptr("   ")})
	assert.ErrorIs(t, err, apperrors.ErrBlankContent)

	byLesson, err := s.comments.ListByLesson(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Len(t, byLesson, 1)
}

func TestUserCreate_UniqueFields(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	created, err := s.users.Create(ctx, dto.UserRequest{Username: ptr("alice"), Email: ptr("a@example.com"), Password: ptr("pw")})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, created.Role)

	_, err = s.users.Create(ctx, dto.UserRequest{Username: ptr("alice"), Email: ptr("b@example.com"), Password: ptr("pw")})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
	_, err = s.users.Create(ctx, dto.UserRequest{Username: ptr("bob"), Email: ptr("a@example.com"), Password: ptr("pw")})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	_, err = s.users.Create(ctx, dto.UserRequest{Username: ptr("carol"), Email: ptr("c@example.com")})
	assert.ErrorIs(t, err, apperrors.ErrMissingRegistrationField)

	var stored model.User
	require.NoError(t, s.db.First(&stored, created.UserID).Error)
	assert.NotEqual(t, "pw", stored.PasswordHash)
}

func TestUserRole_RestrictedToKnownRoles(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.users.Create(ctx, dto.UserRequest{Username: ptr("mallory"), Email: ptr("m@example.com"), Password: ptr("pw"), Role: ptr("SUPERUSER")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	created, err := s.users.Create(ctx, dto.UserRequest{Username: ptr("ann"), Email: ptr("ann@example.com"), Password: ptr("pw"), Role: ptr(" admin ")})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, created.Role)

	_, err = s.users.Update(ctx, created.UserID, dto.UserRequest{Role: ptr("root")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	updated, err := s.users.Update(ctx, created.UserID, dto.UserRequest{Role: ptr("  ")})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role, "blank role keeps the stored value")

	updated, err = s.users.Update(ctx, created.UserID, dto.UserRequest{Role: ptr("user")})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, updated.Role)
}

func TestUserRatingAndViews(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, "alice")
	course := testutil.SeedCourse(t, s.db, "Go")
	lesson := testutil.SeedLesson(t, s.db, course.ID, "intro")

	got, err := s.users.RecalculateRating(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.Rating)

	testutil.SeedEnrollment(t, s.db, user.ID, course.ID, nil)
	for i := 0; i < 4; i++ {
		testutil.SeedComment(t, s.db, user.ID, lesson.ID, "c")
	}
	got, err = s.users.RecalculateRating(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, got.Rating)

	got, err = s.users.IncrementViews(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ProfileViews)

	_, err = s.users.RecalculateRating(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	_, err = s.users.IncrementViews(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
