package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format of Report.Date.
const DateLayout = "2006-01-02"

// LineItem is one service revenue or expense entry.
type LineItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// Report is one dated record of revenue and expense line items. Several
// reports may share a date.
type Report struct {
	ID                string     `json:"id"`
	Date              string     `json:"date"`
	Services          []LineItem `json:"services"`
	Expenses          []LineItem `json:"expenses"`
	TotalServices     Money      `json:"totalServices"`
	TotalExpenses     Money      `json:"totalExpenses"`
	NetProfit         Money      `json:"netProfit"`
	OnlinePayment     Money      `json:"onlinePayment"`
	CashPayment       Money      `json:"cashPayment"`
	CreatedBy         string     `json:"createdBy"`
	CreatedByUsername string     `json:"createdByUsername"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Recompute derives the totals from the line items and reports whether the
// previous values disagreed with them.
func (r *Report) Recompute() (changed bool) {
	services := sumItems(r.Services)
	expenses := sumItems(r.Expenses)
	profit := services - expenses

	changed = r.TotalServices != services || r.TotalExpenses != expenses || r.NetProfit != profit
	r.TotalServices, r.TotalExpenses, r.NetProfit = services, expenses, profit
	return changed
}

// Day parses Date as a UTC calendar day.
func (r *Report) Day() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

// OwnedBy reports whether userID created the report.
func (r *Report) OwnedBy(userID string) bool {
	return r.CreatedBy != "" && r.CreatedBy == userID
}

func sumItems(items []LineItem) Money {
	var total Money
	for _, it := range items {
		total += it.Amount
	}
	return total
}

// Validate checks the report shape before persistence.
func (r *Report) Validate() error {
	verr := NewValidationError()
	if _, err := r.Day(); err != nil {
		verr.Add("date must be YYYY-MM-DD")
	}
	validateItems(verr, "services", r.Services)
	validateItems(verr, "expenses", r.Expenses)
	if r.OnlinePayment < 0 || r.CashPayment < 0 {
		verr.Add("payments must not be negative")
	}
	return verr.OrNil()
}

func validateItems(verr *ValidationError, field string, items []LineItem) {
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			verr.Add(fmt.Sprintf("%s[%d].name is required", field, i))
		}
		if it.Amount < 0 {
			verr.Add(fmt.Sprintf("%s[%d].amount must not be negative", field, i))
		}
	}
}

// ReportFilter narrows report queries. Empty fields do not filter.
type ReportFilter struct {
	CreatedBy string
	Date      string
	DateFrom  string
	DateTo    string
}
