package handler

import (
	"time"

	"github.com/adsc/report-system/internal/core/analytics"
	"github.com/adsc/report-system/internal/core/domain"
)

// --- Request → domain ---

func toLineItems(in []lineItemRequest) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, domain.LineItem{ID: it.ID, Name: it.Name, Amount: it.Amount})
	}
	return out
}

func toReportDraft(req reportRequest) domain.Report {
	return domain.Report{
		Date:          req.Date,
		Services:      toLineItems(req.Services),
		Expenses:      toLineItems(req.Expenses),
		OnlinePayment: req.OnlinePayment,
		CashPayment:   req.CashPayment,
		TotalServices: req.TotalServices,
		TotalExpenses: req.TotalExpenses,
		NetProfit:     req.NetProfit,
	}
}

func toReportDrafts(in []reportRequest) []domain.Report {
	out := make([]domain.Report, 0, len(in))
	for _, r := range in {
		out = append(out, toReportDraft(r))
	}
	return out
}

// toQuery applies the list defaults: newest date first.
func toQuery(req reportQueryRequest) analytics.Query {
	q := analytics.Query{
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		Outcome:   analytics.Outcome(req.Outcome),
		Search:    req.Search,
		SortBy:    analytics.SortKey(req.SortBy),
		Ascending: req.Order == "asc",
	}
	if q.SortBy == "" {
		q.SortBy = analytics.SortByDate
	}
	return q
}

// --- domain → HTTP response ---

func fromLineItems(in []domain.LineItem) []lineItemRequest {
	out := make([]lineItemRequest, 0, len(in))
	for _, it := range in {
		out = append(out, lineItemRequest{ID: it.ID, Name: it.Name, Amount: it.Amount})
	}
	return out
}

func toReportResponse(r *domain.Report) reportResponse {
	return reportResponse{
		ID:                r.ID,
		Date:              r.Date,
		Services:          fromLineItems(r.Services),
		Expenses:          fromLineItems(r.Expenses),
		TotalServices:     r.TotalServices,
		TotalExpenses:     r.TotalExpenses,
		NetProfit:         r.NetProfit,
		OnlinePayment:     r.OnlinePayment,
		CashPayment:       r.CashPayment,
		CreatedBy:         r.CreatedBy,
		CreatedByUsername: r.CreatedByUsername,
		CreatedAt:         r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toReportList(reports []domain.Report) reportListResponse {
	items := make([]reportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, toReportResponse(&reports[i]))
	}
	return reportListResponse{Items: items, Total: len(items)}
}
