package analytics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adsc/report-system/internal/core/analytics"
	"github.com/adsc/report-system/internal/core/domain"
)

func report(id, date string, services, expenses []domain.LineItem) domain.Report {
	r := domain.Report{ID: id, Date: date, Services: services, Expenses: expenses}
	r.Recompute()
	return r
}

func item(name string, cents domain.Money) domain.LineItem {
	return domain.LineItem{Name: name, Amount: cents}
}

func withProfit(id, date string, profit domain.Money) domain.Report {
	if profit >= 0 {
		return report(id, date, []domain.LineItem{item("Sales", profit)}, nil)
	}
	return report(id, date, nil, []domain.LineItem{item("Loss", -profit)})
}

var _ = Describe("ComputeTotals", func() {
	It("returns zeros for no reports", func() {
		Expect(analytics.ComputeTotals(nil)).To(Equal(analytics.Totals{}))
	})

	It("keeps profit equal to revenue minus expenses", func() {
		reports := []domain.Report{
			report("a", "2024-01-05", []domain.LineItem{item("Cut", 10000)}, []domain.LineItem{item("Rent", 2500)}),
			report("b", "2024-01-06", []domain.LineItem{item("Color", 3333)}, []domain.LineItem{item("Fuel", 9999)}),
			report("c", "2024-01-07", nil, []domain.LineItem{item("Water bill", 101)}),
		}
		t := analytics.ComputeTotals(reports)
		Expect(t.Profit).To(Equal(t.Revenue - t.Expenses))
		Expect(t.Count).To(Equal(3))
		Expect(t.AverageProfit).To(Equal(t.Profit.DivRound(3)))
	})
})

var _ = Describe("GroupByMonth", func() {
	It("groups chronologically with year-qualified keys", func() {
		reports := []domain.Report{
			withProfit("3", "2024-02-01", 20000),
			withProfit("1", "2024-01-05", 10000),
			withProfit("2", "2024-01-20", -5000),
		}
		months := analytics.GroupByMonth(reports)
		Expect(months).To(HaveLen(2))

		Expect(months[0].Key).To(Equal("Jan 2024"))
		Expect(months[0].Profit).To(Equal(domain.Money(5000)))
		Expect(months[0].AvgProfit).To(Equal(domain.Money(2500)))
		Expect(months[0].Count).To(Equal(2))

		Expect(months[1].Key).To(Equal("Feb 2024"))
		Expect(months[1].Profit).To(Equal(domain.Money(20000)))
		Expect(months[1].AvgProfit).To(Equal(domain.Money(20000)))
	})

	It("does not merge the same month of different years", func() {
		months := analytics.GroupByMonth([]domain.Report{
			withProfit("a", "2025-01-10", 100),
			withProfit("b", "2024-01-10", 100),
		})
		Expect(months).To(HaveLen(2))
		Expect(months[0].Key).To(Equal("Jan 2024"))
		Expect(months[1].Key).To(Equal("Jan 2025"))
	})

	It("skips reports with unparsable dates", func() {
		Expect(analytics.GroupByMonth([]domain.Report{withProfit("x", "yesterday", 1)})).To(BeEmpty())
	})
})

var _ = Describe("GroupByCategory", func() {
	It("buckets by first matching keyword and sorts descending", func() {
		reports := []domain.Report{
			report("a", "2024-03-01", nil, []domain.LineItem{
				item("Shop Rent", 50000),
				item("Electricity bill", 3000),
				item("Staff wages", 20000),
				item("Coffee", 700),
				item("Vehicle repair", 4000),
			}),
		}
		Expect(analytics.GroupByCategory(reports, analytics.DefaultCategories)).To(Equal([]analytics.CategoryAmount{
			{Category: "Rent", Amount: 50000},
			{Category: "Salaries", Amount: 20000},
			{Category: "Maintenance", Amount: 4000},
			{Category: "Utilities", Amount: 3000},
			{Category: "Other", Amount: 700},
		}))
	})

	It("lets the earlier category win when several keywords match", func() {
		Expect(analytics.Categorize("Phone payment", analytics.DefaultCategories)).To(Equal("Utilities"))
		Expect(analytics.Categorize("Fuel for repair van", analytics.DefaultCategories)).To(Equal("Maintenance"))
	})

	It("omits categories summing to zero", func() {
		reports := []domain.Report{report("a", "2024-03-01", nil, []domain.LineItem{item("Rent", 0)})}
		Expect(analytics.GroupByCategory(reports, analytics.DefaultCategories)).To(BeEmpty())
	})
})

var _ = Describe("TopN", func() {
	reports := []domain.Report{
		report("a", "2024-03-01", []domain.LineItem{item("Cut", 500), item("Shave", 300)}, nil),
		report("b", "2024-03-02", []domain.LineItem{item("Cut", 500), item("Color", 900), item("Beard", 300)}, nil),
	}

	It("sums by name and truncates", func() {
		Expect(analytics.TopN(reports, analytics.FieldServices, 2)).To(Equal([]analytics.ItemTotal{
			{Name: "Cut", Amount: 1000},
			{Name: "Color", Amount: 900},
		}))
	})

	It("orders equal amounts by name", func() {
		top := analytics.TopN(reports, analytics.FieldServices, 10)
		Expect(top).To(HaveLen(4))
		Expect(top[2].Name).To(Equal("Beard"))
		Expect(top[3].Name).To(Equal("Shave"))
	})

	It("returns nothing for n <= 0 or an empty collection", func() {
		Expect(analytics.TopN(reports, analytics.FieldServices, 0)).To(BeEmpty())
		Expect(analytics.TopN(reports, analytics.FieldExpenses, 5)).To(BeEmpty())
	})
})

var _ = Describe("GoalProgress", func() {
	now := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

	It("caps progress at 100", func() {
		p := analytics.GoalProgress(domain.GoalDaily, 10000, []domain.Report{withProfit("a", "2024-03-15", 50000)}, now)
		Expect(p.Achieved).To(Equal(domain.Money(50000)))
		Expect(p.Percent).To(Equal(100.0))
	})

	It("is 0 when the target is not positive", func() {
		p := analytics.GoalProgress(domain.GoalDaily, 0, []domain.Report{withProfit("a", "2024-03-15", 500)}, now)
		Expect(p.Percent).To(BeZero())
	})

	It("allows negative achievement", func() {
		p := analytics.GoalProgress(domain.GoalMonthly, 10000, []domain.Report{withProfit("a", "2024-03-02", -2500)}, now)
		Expect(p.Achieved).To(Equal(domain.Money(-2500)))
		Expect(p.Percent).To(Equal(-25.0))
	})

	DescribeTable("windows",
		func(goalType domain.GoalType, date string, inside bool) {
			Expect(analytics.InWindow(goalType, date, now)).To(Equal(inside))
		},
		Entry("daily same day", domain.GoalDaily, "2024-03-15", true),
		Entry("daily previous day", domain.GoalDaily, "2024-03-14", false),
		Entry("weekly within seven days", domain.GoalWeekly, "2024-03-09", true),
		Entry("weekly boundary day starts before the cutoff", domain.GoalWeekly, "2024-03-08", false),
		Entry("monthly first of month", domain.GoalMonthly, "2024-03-01", true),
		Entry("monthly previous month", domain.GoalMonthly, "2024-02-29", false),
		Entry("malformed date", domain.GoalWeekly, "15/03/2024", false),
	)
})

var _ = Describe("Compare", func() {
	It("reports diff and percent change against the baseline", func() {
		base := withProfit("base", "2024-01-01", 10000)
		next := withProfit("next", "2024-01-02", 15000)
		c := analytics.Compare(next, base)
		Expect(c.NetProfit.Diff).To(Equal(domain.Money(5000)))
		Expect(c.NetProfit.PercentChange).To(Equal(50.0))
		Expect(c.Expenses.PercentChange).To(BeZero())
	})
})

var _ = Describe("Summarize", func() {
	It("is fully defined for no reports", func() {
		s := analytics.Summarize(nil, 30)
		Expect(s.ProfitMargin).To(BeZero())
		Expect(s.Monthly).To(BeEmpty())
		Expect(s.Trend).To(BeEmpty())
	})

	It("counts profitable and loss days and computes the margin", func() {
		reports := []domain.Report{
			report("a", "2024-01-01", []domain.LineItem{item("Cut", 20000)}, []domain.LineItem{item("Rent", 5000)}),
			report("b", "2024-01-02", []domain.LineItem{item("Cut", 0)}, []domain.LineItem{item("Fuel", 5000)}),
		}
		s := analytics.Summarize(reports, 1)
		Expect(s.ProfitableDays).To(Equal(1))
		Expect(s.LossDays).To(Equal(1))
		Expect(s.ProfitMargin).To(Equal(50.0))
		Expect(s.Trend).To(HaveLen(1))
		Expect(s.Trend[0].Date).To(Equal("2024-01-02"))
	})
})

var _ = Describe("Query", func() {
	reports := []domain.Report{
		withProfit("a", "2024-01-03", 300),
		withProfit("b", "2024-01-01", -100),
		withProfit("c", "2024-01-02", 200),
	}

	It("sorts by date descending by default", func() {
		out := analytics.Query{}.Apply(reports)
		Expect([]string{out[0].ID, out[1].ID, out[2].ID}).To(Equal([]string{"a", "c", "b"}))
	})

	It("filters by range and outcome", func() {
		out := analytics.Query{DateFrom: "2024-01-02", Outcome: analytics.OutcomeProfit, SortBy: analytics.SortByProfit, Ascending: true}.Apply(reports)
		Expect([]string{out[0].ID, out[1].ID}).To(Equal([]string{"c", "a"}))

		loss := analytics.Query{Outcome: analytics.OutcomeLoss}.Apply(reports)
		Expect(loss).To(HaveLen(1))
		Expect(loss[0].ID).To(Equal("b"))
	})

	It("searches line item names case-insensitively", func() {
		out := analytics.Query{Search: "LOSS"}.Apply(reports)
		Expect(out).To(HaveLen(1))
		Expect(out[0].ID).To(Equal("b"))
	})
})
