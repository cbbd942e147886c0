package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"codemingle/internal/model"
	"codemingle/internal/testutil"
)

func count(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(value).Count(&n).Error)
	return n
}

func TestCourseDelete_Cascades(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "alice")
	course := testutil.SeedCourse(t, db, "Go")
	other := testutil.SeedCourse(t, db, "Rust")
	lesson := testutil.SeedLesson(t, db, course.ID, "intro")
	keep := testutil.SeedLesson(t, db, other.ID, "ownership")
	testutil.SeedQuiz(t, db, lesson.ID, 3)
	testutil.SeedComment(t, db, user.ID, lesson.ID, "nice")
	testutil.SeedEnrollment(t, db, user.ID, course.ID, &lesson.ID)
	testutil.SeedEnrollment(t, db, user.ID, other.ID, &keep.ID)

	require.NoError(t, NewCourseRepository(db).Delete(ctx, course.ID))

	assert.Equal(t, int64(1), count(t, db, &model.Course{}))
	assert.Equal(t, int64(1), count(t, db, &model.Lesson{}))
	assert.Equal(t, int64(0), count(t, db, &model.Quiz{}))
	assert.Equal(t, int64(0), count(t, db, &model.Question{}))
	assert.Equal(t, int64(0), count(t, db, &model.Comment{}))
	assert.Equal(t, int64(1), count(t, db, &model.Enrollment{}))
}

func TestCourseDelete_Missing(t *testing.T) {
	db := testutil.DB(t)
	err := NewCourseRepository(db).Delete(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLessonDelete_DetachesEnrollments(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "bob")
	course := testutil.SeedCourse(t, db, "Go")
	lesson := testutil.SeedLesson(t, db, course.ID, "intro")
	testutil.SeedQuiz(t, db, lesson.ID, 2)
	testutil.SeedComment(t, db, user.ID, lesson.ID, "hello")
	enrollment := testutil.SeedEnrollment(t, db, user.ID, course.ID, &lesson.ID)

	require.NoError(t, NewLessonRepository(db).Delete(ctx, lesson.ID))

	got, err := NewEnrollmentRepository(db).FindByIDWithDetails(ctx, enrollment.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LessonID)
	assert.Nil(t, got.Lesson)
	assert.Equal(t, int64(0), count(t, db, &model.Quiz{}))
	assert.Equal(t, int64(0), count(t, db, &model.Question{}))
	assert.Equal(t, int64(0), count(t, db, &model.Comment{}))

	assert.ErrorIs(t, NewLessonRepository(db).Delete(ctx, lesson.ID), gorm.ErrRecordNotFound)
}

func TestUserDelete_Cascades(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, db, "alice")
	bob := testutil.SeedUser(t, db, "bob")
	course := testutil.SeedCourse(t, db, "Go")
	lesson := testutil.SeedLesson(t, db, course.ID, "intro")
	testutil.SeedComment(t, db, alice.ID, lesson.ID, "mine")
	testutil.SeedComment(t, db, bob.ID, lesson.ID, "theirs")
	testutil.SeedEnrollment(t, db, alice.ID, course.ID, nil)

	require.NoError(t, NewUserRepository(db).Delete(ctx, alice.ID))

	assert.Equal(t, int64(1), count(t, db, &model.User{}))
	assert.Equal(t, int64(1), count(t, db, &model.Comment{}))
	assert.Equal(t, int64(0), count(t, db, &model.Enrollment{}))
}

func TestQuizReplaceQuestions_OrdersAndReplaces(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, db, "Go")
	lesson := testutil.SeedLesson(t, db, course.ID, "intro")
	quiz := testutil.SeedQuiz(t, db, lesson.ID, 3)
	repo := NewQuizRepository(db)

	err := repo.ReplaceQuestions(ctx, quiz.ID, []model.Question{
		{QuestionText: "second", CorrectAnswer: "B", QuestionOrder: 2},
		{QuestionText: "first", CorrectAnswer: "A", QuestionOrder: 1},
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "first", got.Questions[0].QuestionText)
	assert.Equal(t, "second", got.Questions[1].QuestionText)
	assert.Equal(t, int64(2), count(t, db, &model.Question{}))
}

func TestEnrollmentCreate_DuplicatePair(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, db, "alice")
	course := testutil.SeedCourse(t, db, "Go")
	repo := NewEnrollmentRepository(db)

	first := &model.Enrollment{UserID: user.ID, CourseID: course.ID, EnrollmentDate: course.CreatedAt}
	require.NoError(t, repo.Create(ctx, first))

	dup := &model.Enrollment{UserID: user.ID, CourseID: course.ID, EnrollmentDate: course.CreatedAt}
	assert.ErrorIs(t, repo.Create(ctx, dup), gorm.ErrDuplicatedKey)

	exists, err := repo.Exists(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserIncrementViews(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, db, "alice")
	repo := NewUserRepository(db)

	require.NoError(t, repo.IncrementViews(ctx, user.ID))
	require.NoError(t, repo.IncrementViews(ctx, user.ID))
	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ProfileViews)

	assert.ErrorIs(t, repo.IncrementViews(ctx, 404), gorm.ErrRecordNotFound)
}
