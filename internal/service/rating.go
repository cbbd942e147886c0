package service

import "github.com/shopspring/decimal"

var (
	baseRating     = decimal.NewFromInt(3)
	ratingStep     = decimal.RequireFromString("0.1")
	maxRatingBonus = decimal.NewFromInt(2)
	maxRating      = decimal.NewFromInt(5)
)

// CalculateRating turns engagement counts into a rating in [3.0, 5.0]:
// 3.0 plus 0.1 per enrollment or comment, with the bonus capped at 2.0.
// Decimal arithmetic keeps the 0.1 steps exact.
func CalculateRating(enrollments, comments int64) float64 {
	activity := enrollments + comments
	if activity < 0 {
		activity = 0
	}
	bonus := decimal.Min(decimal.NewFromInt(activity).Mul(ratingStep), maxRatingBonus)
	rating := decimal.Min(baseRating.Add(bonus), maxRating)
	f, _ := rating.Float64()
	return f
}
