package analytics

import (
	"math"
	"time"

	"github.com/adsc/report-system/internal/core/domain"
)

// Progress is how far the reports in a goal's window got towards its target.
type Progress struct {
	Achieved domain.Money `json:"achieved"`
	Percent  float64      `json:"progressPercent"`
}

// InWindow reports whether a report date falls inside the goal window ending at now.
//
//	daily:   the date equals now's UTC calendar day
//	weekly:  the date is on or after now minus seven days
//	monthly: the date is on or after the first day of now's month
func InWindow(goalType domain.GoalType, date string, now time.Time) bool {
	now = now.UTC()
	if goalType == domain.GoalDaily {
		return date == now.Format(domain.DateLayout)
	}
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return false
	}
	switch goalType {
	case domain.GoalWeekly:
		return !day.Before(now.Add(-7 * 24 * time.Hour))
	case domain.GoalMonthly:
		return !day.Before(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	}
	return false
}

// GoalProgress sums net profit inside the window. Progress is capped at 100
// and is 0 when the target is not positive; negative achievement is allowed.
func GoalProgress(goalType domain.GoalType, target domain.Money, reports []domain.Report, now time.Time) Progress {
	var p Progress
	for i := range reports {
		if InWindow(goalType, reports[i].Date, now) {
			p.Achieved += reports[i].NetProfit
		}
	}
	if target > 0 {
		p.Percent = round2(math.Min(p.Achieved.PercentOf(target), 100))
	}
	return p
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
