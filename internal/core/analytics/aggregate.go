// Package analytics derives summary views over reports. Every function is
// pure: no I/O, no mutation of the input, and empty input yields a zero
// result. Ratios with a zero denominator are 0.
package analytics

import (
	"sort"
	"time"

	"github.com/adsc/report-system/internal/core/domain"
)

// Totals is the whole-collection rollup.
type Totals struct {
	Revenue       domain.Money `json:"revenue"`
	Expenses      domain.Money `json:"expenses"`
	Profit        domain.Money `json:"profit"`
	AverageProfit domain.Money `json:"averageProfit"`
	Count         int          `json:"count"`
}

// ComputeTotals sums revenue, expenses and profit and averages profit per report.
func ComputeTotals(reports []domain.Report) Totals {
	var t Totals
	for i := range reports {
		t.Revenue += reports[i].TotalServices
		t.Expenses += reports[i].TotalExpenses
		t.Profit += reports[i].NetProfit
	}
	t.Count = len(reports)
	t.AverageProfit = t.Profit.DivRound(t.Count)
	return t
}

// MonthSummary is one calendar month of reports.
type MonthSummary struct {
	Key       string       `json:"month"`
	Year      int          `json:"year"`
	Month     time.Month   `json:"-"`
	Revenue   domain.Money `json:"revenue"`
	Expenses  domain.Money `json:"expenses"`
	Profit    domain.Money `json:"profit"`
	AvgProfit domain.Money `json:"avgProfit"`
	Count     int          `json:"count"`
}

// MonthKey labels a month as "Jan 2024". The year is always part of the key.
func MonthKey(t time.Time) string {
	return t.Format("Jan 2006")
}

// GroupByMonth buckets reports by year and month in chronological order.
// Reports with an unparsable date are skipped.
func GroupByMonth(reports []domain.Report) []MonthSummary {
	type ym struct {
		year  int
		month time.Month
	}
	buckets := make(map[ym]*MonthSummary)
	for i := range reports {
		day, err := reports[i].Day()
		if err != nil {
			continue
		}
		k := ym{day.Year(), day.Month()}
		b, ok := buckets[k]
		if !ok {
			b = &MonthSummary{Key: MonthKey(day), Year: k.year, Month: k.month}
			buckets[k] = b
		}
		b.Revenue += reports[i].TotalServices
		b.Expenses += reports[i].TotalExpenses
		b.Profit += reports[i].NetProfit
		b.Count++
	}

	out := make([]MonthSummary, 0, len(buckets))
	for _, b := range buckets {
		b.AvgProfit = b.Profit.DivRound(b.Count)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// Field selects a line-item collection of a report.
type Field string

const (
	FieldServices Field = "services"
	FieldExpenses Field = "expenses"
)

func (f Field) Valid() bool { return f == FieldServices || f == FieldExpenses }

func (f Field) items(r *domain.Report) []domain.LineItem {
	if f == FieldExpenses {
		return r.Expenses
	}
	return r.Services
}

// ItemTotal is the summed amount of all line items sharing a name.
type ItemTotal struct {
	Name   string       `json:"name"`
	Amount domain.Money `json:"amount"`
}

// DefaultTopItems is the breakdown size used by the dashboard.
const DefaultTopItems = 8

// TopN groups the chosen line items by name, sums them and returns the n
// largest. Equal amounts are ordered by name.
func TopN(reports []domain.Report, field Field, n int) []ItemTotal {
	if n <= 0 {
		return []ItemTotal{}
	}
	sums := make(map[string]domain.Money)
	for i := range reports {
		for _, it := range field.items(&reports[i]) {
			sums[it.Name] += it.Amount
		}
	}

	out := make([]ItemTotal, 0, len(sums))
	for name, amount := range sums {
		out = append(out, ItemTotal{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ProfitMargin is profit as a percentage of revenue.
func ProfitMargin(t Totals) float64 {
	return round2(t.Profit.PercentOf(t.Revenue))
}

// DayCounts splits reports into profitable (net >= 0) and loss-making ones.
func DayCounts(reports []domain.Report) (profitable, loss int) {
	for i := range reports {
		if reports[i].NetProfit >= 0 {
			profitable++
		} else {
			loss++
		}
	}
	return profitable, loss
}

// TrendPoint is a single report on the timeline.
type TrendPoint struct {
	Date     string       `json:"date"`
	Revenue  domain.Money `json:"revenue"`
	Expenses domain.Money `json:"expenses"`
	Profit   domain.Money `json:"profit"`
}

// Trend orders reports by date and keeps the last n points. n <= 0 keeps all.
func Trend(reports []domain.Report, n int) []TrendPoint {
	sorted := Sort(reports, SortByDate, true)
	if n > 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	out := make([]TrendPoint, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, TrendPoint{Date: r.Date, Revenue: r.TotalServices, Expenses: r.TotalExpenses, Profit: r.NetProfit})
	}
	return out
}

// Delta compares one value against a baseline.
type Delta struct {
	Baseline      domain.Money `json:"baseline"`
	Value         domain.Money `json:"value"`
	Diff          domain.Money `json:"diff"`
	PercentChange float64      `json:"percentChange"`
}

func newDelta(value, baseline domain.Money) Delta {
	diff := value - baseline
	return Delta{Baseline: baseline, Value: value, Diff: diff, PercentChange: round2(diff.PercentOf(baseline))}
}

// Comparison is a field-by-field diff of two reports.
type Comparison struct {
	Baseline  string `json:"baseline"`
	Compared  string `json:"compared"`
	Services  Delta  `json:"totalServices"`
	Expenses  Delta  `json:"totalExpenses"`
	NetProfit Delta  `json:"netProfit"`
}

// Compare diffs report against baseline. Percent change is 0 when the
// baseline value is 0.
func Compare(report, baseline domain.Report) Comparison {
	return Comparison{
		Baseline:  baseline.ID,
		Compared:  report.ID,
		Services:  newDelta(report.TotalServices, baseline.TotalServices),
		Expenses:  newDelta(report.TotalExpenses, baseline.TotalExpenses),
		NetProfit: newDelta(report.NetProfit, baseline.NetProfit),
	}
}

// Summary bundles the analytics dashboard figures.
type Summary struct {
	Totals         Totals           `json:"totals"`
	ProfitMargin   float64          `json:"profitMargin"`
	ProfitableDays int              `json:"profitableDays"`
	LossDays       int              `json:"lossDays"`
	Monthly        []MonthSummary   `json:"monthly"`
	Categories     []CategoryAmount `json:"categories"`
	TopServices    []ItemTotal      `json:"topServices"`
	TopExpenses    []ItemTotal      `json:"topExpenses"`
	Trend          []TrendPoint     `json:"trend"`
}

// Summarize computes every dashboard figure. trendPoints bounds the timeline.
func Summarize(reports []domain.Report, trendPoints int) Summary {
	totals := ComputeTotals(reports)
	profitable, loss := DayCounts(reports)
	return Summary{
		Totals:         totals,
		ProfitMargin:   ProfitMargin(totals),
		ProfitableDays: profitable,
		LossDays:       loss,
		Monthly:        GroupByMonth(reports),
		Categories:     GroupByCategory(reports, DefaultCategories),
		TopServices:    TopN(reports, FieldServices, DefaultTopItems),
		TopExpenses:    TopN(reports, FieldExpenses, DefaultTopItems),
		Trend:          Trend(reports, trendPoints),
	}
}
