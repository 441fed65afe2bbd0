package analytics

import (
	"sort"
	"strings"

	"github.com/adsc/report-system/internal/core/domain"
)

// Category maps expense names to a bucket by keyword substring.
type Category struct {
	Name     string
	Keywords []string
}

// OtherCategory collects expenses no keyword matched.
const OtherCategory = "Other"

// DefaultCategories is checked in order; the first matching category wins.
var DefaultCategories = []Category{
	{Name: "Rent", Keywords: []string{"rent", "lease"}},
	{Name: "Utilities", Keywords: []string{"electricity", "water", "internet", "phone", "bill"}},
	{Name: "Salaries", Keywords: []string{"salary", "wages", "payment", "staff"}},
	{Name: "Supplies", Keywords: []string{"supplies", "materials", "inventory", "stock"}},
	{Name: "Maintenance", Keywords: []string{"maintenance", "repair", "fix"}},
	{Name: "Transport", Keywords: []string{"transport", "fuel", "vehicle", "petrol"}},
}

// CategoryAmount is the summed expense of one category.
type CategoryAmount struct {
	Category string       `json:"category"`
	Amount   domain.Money `json:"amount"`
}

// Categorize returns the category name for an expense item name.
func Categorize(name string, table []Category) string {
	lower := strings.ToLower(name)
	for _, c := range table {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				return c.Name
			}
		}
	}
	return OtherCategory
}

// GroupByCategory sums expense line items per category, descending by
// amount. Categories that sum to zero are omitted; ties keep table order.
func GroupByCategory(reports []domain.Report, table []Category) []CategoryAmount {
	sums := make(map[string]domain.Money, len(table)+1)
	for i := range reports {
		for _, it := range reports[i].Expenses {
			sums[Categorize(it.Name, table)] += it.Amount
		}
	}

	out := make([]CategoryAmount, 0, len(sums))
	appendNonZero := func(name string) {
		if amount := sums[name]; amount != 0 {
			out = append(out, CategoryAmount{Category: name, Amount: amount})
		}
	}
	for _, c := range table {
		appendNonZero(c.Name)
	}
	appendNonZero(OtherCategory)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}
