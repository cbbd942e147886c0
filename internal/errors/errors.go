package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user id or username does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrCourseNotFound is returned when a course id does not resolve.
	ErrCourseNotFound = errors.New("course not found")
	// ErrLessonNotFound is returned when a lesson id does not resolve.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrQuizNotFound is returned when a quiz id does not resolve.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrCommentNotFound is returned when a comment id does not resolve.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrEnrollmentNotFound is returned when an enrollment id does not resolve.
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	// ErrDuplicateEnrollment is returned when the user is already enrolled in the course.
	ErrDuplicateEnrollment = errors.New("user already enrolled in this course")
	// ErrUsernameTaken is returned when the username belongs to another user.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when the email belongs to another user.
	ErrEmailTaken = errors.New("email already exists")
	// ErrMissingRegistrationField is returned when username, email or password is absent.
	ErrMissingRegistrationField = errors.New("username, email, and password are required")
	// ErrInvalidDate is returned when a calendar date is not in yyyy-MM-dd form.
	ErrInvalidDate = errors.New("invalid date, expected yyyy-MM-dd")
	// ErrBlankContent is returned when a comment body is empty after trimming.
	ErrBlankContent = errors.New("content must not be blank")
	// ErrValidation is the base of request validation failures built with Validationf.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid, expired or revoked.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrInvalidDemoAccount is returned for an unknown demo account type.
	ErrInvalidDemoAccount = errors.New("invalid account type, use 'admin' or 'user'")
	// ErrDemoAccountNotFound is returned when the seeded demo account is missing.
	ErrDemoAccountNotFound = errors.New("demo account not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrCourseNotFound, http.StatusNotFound, "COURSE_NOT_FOUND"},
	{ErrLessonNotFound, http.StatusNotFound, "LESSON_NOT_FOUND"},
	{ErrQuizNotFound, http.StatusNotFound, "QUIZ_NOT_FOUND"},
	{ErrCommentNotFound, http.StatusNotFound, "COMMENT_NOT_FOUND"},
	{ErrEnrollmentNotFound, http.StatusNotFound, "ENROLLMENT_NOT_FOUND"},
	{ErrDemoAccountNotFound, http.StatusNotFound, "DEMO_ACCOUNT_NOT_FOUND"},
	{ErrDuplicateEnrollment, http.StatusBadRequest, "DUPLICATE_ENROLLMENT"},
	{ErrUsernameTaken, http.StatusBadRequest, "USERNAME_TAKEN"},
	{ErrEmailTaken, http.StatusBadRequest, "EMAIL_TAKEN"},
	{ErrMissingRegistrationField, http.StatusBadRequest, "MISSING_FIELD"},
	{ErrInvalidDate, http.StatusBadRequest, "INVALID_DATE"},
	{ErrBlankContent, http.StatusBadRequest, "BLANK_CONTENT"},
	{ErrInvalidDemoAccount, http.StatusBadRequest, "INVALID_ACCOUNT_TYPE"},
	{ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrInvalidRefreshToken, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN"},
}

// Validationf builds an ErrValidation whose message names the offending field.
func Validationf(format string, args ...interface{}) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so internal detail never reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *validationError
	if errors.As(err, &verr) {
		return NewHTTPError(http.StatusBadRequest, verr.msg, "VALIDATION_ERROR")
	}
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

// IsNotFound reports whether err is one of the entity lookup failures.
func IsNotFound(err error) bool {
	return MapErrorToHTTP(err).StatusCode == http.StatusNotFound
}
