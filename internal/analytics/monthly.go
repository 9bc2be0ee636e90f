package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidWindow = errors.New("invalid monthly window")

const (
	Window6Months  = 6
	Window12Months = 12
)

// ParseWindow accepts "6months", "12months" or the bare month counts.
func ParseWindow(s string) (int, error) {
	switch s {
	case "", "6", "6months":
		return Window6Months, nil
	case "12", "12months":
		return Window12Months, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
}

type MonthPoint struct {
	Month   string          `json:"month"`
	Label   string          `json:"label"`
	Revenue decimal.Decimal `json:"revenue"`
}

// MonthlySeries returns one point per month for the n months ending at the
// month containing now, oldest first. Months without orders are zero.
func MonthlySeries(monthly map[string]decimal.Decimal, now time.Time, n int) []MonthPoint {
	if n <= 0 {
		return []MonthPoint{}
	}
	first := time.Date(now.Year(), now.Month()-time.Month(n-1), 1, 0, 0, 0, 0, time.UTC)

	points := make([]MonthPoint, 0, n)
	for i := range n {
		month := first.AddDate(0, i, 0)
		key := month.Format("2006-01")
		revenue, ok := monthly[key]
		if !ok {
			revenue = decimal.Zero
		}
		points = append(points, MonthPoint{
			Month:   key,
			Label:   month.Format("Jan 2006"),
			Revenue: revenue,
		})
	}
	return points
}

// MonthlyChange is the rounded percentage change from previous to current.
// A zero previous month reports 100 when there is any current revenue.
func MonthlyChange(current, previous decimal.Decimal) int64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
