package analytics

import (
	"sort"
	"strings"

	"github.com/adsc/report-system/internal/core/domain"
)

// Outcome filters reports by the sign of their net profit.
type Outcome string

const (
	OutcomeAny    Outcome = ""
	OutcomeProfit Outcome = "profit"
	OutcomeLoss   Outcome = "loss"
)

// SortKey orders a report list.
type SortKey string

const (
	SortByDate    SortKey = "date"
	SortByProfit  SortKey = "profit"
	SortByRevenue SortKey = "revenue"
)

// Query narrows and orders a report list. Zero values do not filter.
type Query struct {
	DateFrom  string
	DateTo    string
	Outcome   Outcome
	Search    string
	SortBy    SortKey
	Ascending bool
}

// Apply returns a filtered, sorted copy of reports.
func (q Query) Apply(reports []domain.Report) []domain.Report {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Report, 0, len(reports))
	for _, r := range reports {
		if q.DateFrom != "" && r.Date < q.DateFrom {
			continue
		}
		if q.DateTo != "" && r.Date > q.DateTo {
			continue
		}
		if q.Outcome == OutcomeProfit && r.NetProfit < 0 {
			continue
		}
		if q.Outcome == OutcomeLoss && r.NetProfit >= 0 {
			continue
		}
		if needle != "" && !matches(r, needle) {
			continue
		}
		out = append(out, r)
	}

	key := q.SortBy
	if key == "" {
		key = SortByDate
	}
	return Sort(out, key, q.Ascending)
}

func matches(r domain.Report, needle string) bool {
	if strings.Contains(r.Date, needle) {
		return true
	}
	for _, items := range [][]domain.LineItem{r.Services, r.Expenses} {
		for _, it := range items {
			if strings.Contains(strings.ToLower(it.Name), needle) {
				return true
			}
		}
	}
	return false
}

// Sort returns a copy of reports ordered by key. Reports with equal keys keep
// their input order.
func Sort(reports []domain.Report, key SortKey, ascending bool) []domain.Report {
	out := make([]domain.Report, len(reports))
	copy(out, reports)
	less := func(a, b *domain.Report) bool {
		switch key {
		case SortByProfit:
			return a.NetProfit < b.NetProfit
		case SortByRevenue:
			return a.TotalServices < b.TotalServices
		default:
			return a.Date < b.Date
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return less(&out[i], &out[j])
		}
		return less(&out[j], &out[i])
	})
	return out
}
