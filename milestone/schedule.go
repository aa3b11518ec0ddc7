package milestone

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DueDates spreads count milestones evenly over a work period starting at start.
// Milestone i falls periodMonths*(i+1)/count months after start, so the last one
// always lands on the end of the period.
func DueDates(start time.Time, periodMonths, count int) []time.Time {
	if count < 1 || count > MaxMilestones || periodMonths <= 0 {
		return nil
	}
	dates := make([]time.Time, count)
	for i := range dates {
		dates[i] = start.AddDate(0, periodMonths*(i+1)/count, 0)
	}
	return dates
}

// Share returns q as a percentage of total, rounded to two places. A non-positive
// total gives zero.
func Share(q, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return q.Mul(hundred).DivRound(total, MaxDecimalPlaces)
}
