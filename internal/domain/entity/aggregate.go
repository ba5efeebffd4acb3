package entity

import "github.com/shopspring/decimal"

// KPI holds the headline totals of the filtered population.
type KPI struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// NewKPI builds a KPI whose balance is derived from income and expense.
func NewKPI(income, expense decimal.Decimal) KPI {
	return KPI{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}
}

// MonthlyBucket holds the income and expense of one calendar month.
type MonthlyBucket struct {
	Month   string // YYYY-MM
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// CategoryBucket holds the total of one (name, type) category group.
type CategoryBucket struct {
	CategoryName string
	CategoryType CategoryType
	Total        decimal.Decimal
	Percentage   float64 // Share of the total for CategoryType, 0 when that total is zero
}

// AggregateSnapshot is the set of derived numbers for one filter generation.
type AggregateSnapshot struct {
	KPI               KPI
	MonthlySeries     []MonthlyBucket
	CategoryBreakdown []CategoryBucket
	FilterKey         string
	// Catalog is the catalog categories were resolved against.
	Catalog *CategoryCatalog
}
