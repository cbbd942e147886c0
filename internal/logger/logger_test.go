package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]interface{}{"user_id", 7, "refresh_token", "abc.def.ghi", "Password", "hunter2", "dangling"})

	assert.Equal(t, []interface{}{
		"user_id", 7,
		"refresh_token", "[REDACTED]",
		"Password", "[REDACTED]",
		"dangling",
	}, got)
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode)
		assert.NoError(t, err)
		assert.NotNil(t, l.With("component", "test"))
	}
}
