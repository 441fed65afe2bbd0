package handler

import (
	"github.com/adsc/report-system/internal/core/domain"
)

// --- Request / Response types ---

type lineItemRequest struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Amount domain.Money `json:"amount" swaggertype:"string" example:"150.00"`
}

// reportRequest is the create and update body. Totals may be sent but are
// always recomputed from the line items.
type reportRequest struct {
	Date          string            `json:"date" validate:"required,datetime=2006-01-02"`
	Services      []lineItemRequest `json:"services"`
	Expenses      []lineItemRequest `json:"expenses"`
	OnlinePayment domain.Money      `json:"onlinePayment" swaggertype:"string"`
	CashPayment   domain.Money      `json:"cashPayment" swaggertype:"string"`
	TotalServices domain.Money      `json:"totalServices" swaggertype:"string"`
	TotalExpenses domain.Money      `json:"totalExpenses" swaggertype:"string"`
	NetProfit     domain.Money      `json:"netProfit" swaggertype:"string"`
}

// reportQueryRequest holds the list filters of GET /api/reports and the
// analytics summary.
type reportQueryRequest struct {
	DateFrom string `query:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `query:"dateTo" validate:"omitempty,datetime=2006-01-02"`
	Outcome  string `query:"outcome" validate:"omitempty,oneof=profit loss"`
	Search   string `query:"search" validate:"max=100"`
	SortBy   string `query:"sortBy" validate:"omitempty,oneof=date profit revenue"`
	Order    string `query:"order" validate:"omitempty,oneof=asc desc"`
}

type restoreRequest struct {
	Reports []reportRequest `json:"reports"`
}

type reportResponse struct {
	ID                string            `json:"id"`
	Date              string            `json:"date"`
	Services          []lineItemRequest `json:"services"`
	Expenses          []lineItemRequest `json:"expenses"`
	TotalServices     domain.Money      `json:"totalServices" swaggertype:"string"`
	TotalExpenses     domain.Money      `json:"totalExpenses" swaggertype:"string"`
	NetProfit         domain.Money      `json:"netProfit" swaggertype:"string"`
	OnlinePayment     domain.Money      `json:"onlinePayment" swaggertype:"string"`
	CashPayment       domain.Money      `json:"cashPayment" swaggertype:"string"`
	CreatedBy         string            `json:"createdBy"`
	CreatedByUsername string            `json:"createdByUsername"`
	CreatedAt         string            `json:"createdAt"`
	UpdatedAt         string            `json:"updatedAt"`
}

type reportListResponse struct {
	Items []reportResponse `json:"items"`
	Total int              `json:"total"`
}
