package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRating(t *testing.T) {
	tests := []struct {
		name        string
		enrollments int64
		comments    int64
		want        float64
	}{
		{"no activity", 0, 0, 3.0},
		{"five enrollments", 5, 0, 3.5},
		{"mixed", 2, 1, 3.3},
		{"exactly at cap", 15, 5, 5.0},
		{"beyond cap", 10, 10, 5.0},
		{"far beyond cap", 1000, 1000, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateRating(tt.enrollments, tt.comments))
		})
	}
}

func TestCalculateRating_MonotonicAndBounded(t *testing.T) {
	prev := CalculateRating(0, 0)
	for n := int64(1); n <= 40; n++ {
		got := CalculateRating(n, 0)
		assert.GreaterOrEqual(t, got, prev)
		assert.GreaterOrEqual(t, got, 3.0)
		assert.LessOrEqual(t, got, 5.0)
		prev = got
	}
}
