package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "codemingle/internal/errors"
	"codemingle/internal/model"
)

// notFound maps a missing row onto the entity's sentinel and passes anything else through.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// applyString overwrites dst only when v is present and non-blank after trimming.
func applyString(dst *string, v *string) {
	if v == nil {
		return
	}
	if trimmed := strings.TrimSpace(*v); trimmed != "" {
		*dst = trimmed
	}
}

// applyRole overwrites dst with a known role, upper-cased. Blank keeps dst.
func applyRole(dst *string, v *string) error {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	switch role := strings.ToUpper(strings.TrimSpace(*v)); role {
	case model.RoleUser, model.RoleAdmin:
		*dst = role
		return nil
	default:
		return apperrors.Validationf("role must be %s or %s", model.RoleUser, model.RoleAdmin)
	}
}

// requiredString returns the trimmed value or a validation error naming field.
func requiredString(v *string, field string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", apperrors.Validationf("%s is required", field)
	}
	return strings.TrimSpace(*v), nil
}

// optionalString returns the trimmed value, or "" when v is absent.
func optionalString(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func requiredID(v *uint, field string) (uint, error) {
	if v == nil || *v == 0 {
		return 0, apperrors.Validationf("%s is required", field)
	}
	return *v, nil
}

// createdAtOrNow honours a caller supplied creation time on create only.
func createdAtOrNow(v *time.Time, now time.Time) time.Time {
	if v != nil && !v.IsZero() {
		return *v
	}
	return now
}

// parseDate parses a yyyy-MM-dd calendar date into the start of that day
// in the given location.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidDate
	}
	return d, nil
}
