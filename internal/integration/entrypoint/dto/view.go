package dto

import (
	"time"

	"github.com/finance-tracker/frontend/internal/application/usecase/dashboard"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

// FilterValueRequest represents the request body for setting one filter.
// A null or blank value clears the filter.
type FilterValueRequest struct {
	Value *string `json:"value"`
}

// SortRequest represents the request body for changing the ordering.
type SortRequest struct {
	Ordering string `json:"ordering" binding:"required"`
}

// PageRequest represents the request body for moving to a page.
type PageRequest struct {
	Page int `json:"page" binding:"required"`
}

// PageSizeRequest represents the request body for changing the page size.
type PageSizeRequest struct {
	PageSize int `json:"page_size" binding:"required"`
}

// ViewResponse represents a view snapshot in API responses.
type ViewResponse struct {
	View       string              `json:"view"`
	Version    uint64              `json:"version"`
	Filters    FiltersResponse     `json:"filters"`
	Ordering   string              `json:"ordering"`
	Page       PageResponse        `json:"page"`
	Rows       []MovementResponse  `json:"rows"`
	Aggregates *AggregatesResponse `json:"aggregates"`
	Categories []CategoryResponse  `json:"categories"`
	LastError  *NoticeResponse     `json:"last_error"`
	Loading    bool                `json:"loading"`
	Empty      bool                `json:"empty"`
}

// FiltersResponse represents the active filters. Unconstrained fields are null.
type FiltersResponse struct {
	DateFrom *string `json:"date_from"`
	DateTo   *string `json:"date_to"`
	Type     *string `json:"type"`
	Category *string `json:"category"`
	Search   *string `json:"search"`
}

// PageResponse represents the page window.
type PageResponse struct {
	Number     int    `json:"number"`
	Size       int    `json:"size"`
	Count      *int64 `json:"count"`
	TotalPages int    `json:"total_pages"`
}

// MovementResponse represents a movement row.
type MovementResponse struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Description  string            `json:"description"`
	Amount       string            `json:"amount"`
	SignedAmount string            `json:"signed_amount"`
	Category     *CategoryResponse `json:"category"`
}

// AggregatesResponse represents the dashboard numbers.
type AggregatesResponse struct {
	KPI               KPIResponse              `json:"kpi"`
	MonthlySeries     []MonthlyBucketResponse  `json:"monthly_series"`
	CategoryBreakdown []CategoryBucketResponse `json:"category_breakdown"`
}

// KPIResponse represents the headline totals.
type KPIResponse struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	Balance      string `json:"balance"`
}

// MonthlyBucketResponse represents one month of the series.
type MonthlyBucketResponse struct {
	Month   string `json:"month"`
	Label   string `json:"label"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// CategoryBucketResponse represents one slice of the category breakdown.
type CategoryBucketResponse struct {
	CategoryName string  `json:"category_name"`
	CategoryType string  `json:"category_type"`
	Total        string  `json:"total"`
	Percentage   float64 `json:"percentage"`
}

// NoticeResponse represents the transient error notice.
type NoticeResponse struct {
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raised_at"`
}

// ToViewResponse converts a view snapshot to a ViewResponse DTO.
func ToViewResponse(view string, snap *entity.ViewSnapshot) ViewResponse {
	catalog := entity.NewCategoryCatalog(snap.Categories)

	rows := make([]MovementResponse, len(snap.Rows))
	for i, m := range snap.Rows {
		rows[i] = toMovementResponse(m, catalog)
	}

	page := PageResponse{
		Number:     snap.Page.Number,
		Size:       snap.Page.Size,
		TotalPages: snap.TotalPages,
	}
	if snap.Page.CountKnown {
		count := snap.Page.Count
		page.Count = &count
	}

	response := ViewResponse{
		View:       view,
		Version:    snap.Version,
		Filters:    toFiltersResponse(snap.Filters),
		Ordering:   snap.Sort.Ordering(),
		Page:       page,
		Rows:       rows,
		Categories: ToCategoryResponses(snap.Categories),
		Loading:    snap.Loading,
		Empty:      snap.Empty,
	}
	if snap.Aggregates != nil {
		aggregates := toAggregatesResponse(snap.Aggregates)
		response.Aggregates = &aggregates
	}
	if snap.LastError != nil {
		response.LastError = &NoticeResponse{
			Code:     snap.LastError.Code,
			Message:  snap.LastError.Message,
			RaisedAt: snap.LastError.RaisedAt,
		}
	}
	return response
}

func toMovementResponse(m *entity.Movement, catalog *entity.CategoryCatalog) MovementResponse {
	response := MovementResponse{
		ID:           m.ID,
		Date:         valueobject.FormatDate(m.Date),
		Description:  m.Description,
		Amount:       m.Amount.StringFixed(2),
		SignedAmount: m.SignedAmount(catalog).StringFixed(2),
	}
	if cat, ok := m.ResolveCategory(catalog); ok {
		c := ToCategoryResponse(cat)
		response.Category = &c
	}
	return response
}

func toFiltersResponse(f entity.Filters) FiltersResponse {
	var response FiltersResponse
	if d, ok := f.DateFrom.Get(); ok {
		s := valueobject.FormatDate(d)
		response.DateFrom = &s
	}
	if d, ok := f.DateTo.Get(); ok {
		s := valueobject.FormatDate(d)
		response.DateTo = &s
	}
	if t, ok := f.Type.Get(); ok {
		s := string(t)
		response.Type = &s
	}
	if c, ok := f.Category.Get(); ok {
		response.Category = &c
	}
	if q, ok := f.Search.Get(); ok {
		response.Search = &q
	}
	return response
}

func toAggregatesResponse(a *entity.AggregateSnapshot) AggregatesResponse {
	series := make([]MonthlyBucketResponse, len(a.MonthlySeries))
	for i, b := range a.MonthlySeries {
		series[i] = MonthlyBucketResponse{
			Month:   b.Month,
			Label:   dashboard.MonthLabel(b.Month),
			Income:  b.Income.StringFixed(2),
			Expense: b.Expense.StringFixed(2),
		}
	}

	breakdown := make([]CategoryBucketResponse, len(a.CategoryBreakdown))
	for i, b := range a.CategoryBreakdown {
		breakdown[i] = CategoryBucketResponse{
			CategoryName: b.CategoryName,
			CategoryType: string(b.CategoryType),
			Total:        b.Total.StringFixed(2),
			Percentage:   b.Percentage,
		}
	}

	return AggregatesResponse{
		KPI: KPIResponse{
			TotalIncome:  a.KPI.TotalIncome.StringFixed(2),
			TotalExpense: a.KPI.TotalExpense.StringFixed(2),
			Balance:      a.KPI.Balance.StringFixed(2),
		},
		MonthlySeries:     series,
		CategoryBreakdown: breakdown,
	}
}
