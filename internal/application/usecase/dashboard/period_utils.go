// Package dashboard contains the aggregate derivations behind the dashboard view.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// MonthLabel renders a YYYY-MM key as a chart label such as "Mar 2025".
// Keys that do not parse are returned unchanged.
func MonthLabel(key string) string {
	t, err := time.Parse(valueobject.MonthLayout, key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d", monthAbbreviations[t.Month()], t.Year())
}

// NormalizeMonthlySeries merges buckets sharing a month and orders them chronologically.
// YYYY-MM keys sort lexically in calendar order.
func NormalizeMonthlySeries(buckets []entity.MonthlyBucket) []entity.MonthlyBucket {
	byMonth := make(map[string]*entity.MonthlyBucket, len(buckets))
	for _, b := range buckets {
		if existing, ok := byMonth[b.Month]; ok {
			existing.Income = existing.Income.Add(b.Income)
			existing.Expense = existing.Expense.Add(b.Expense)
			continue
		}
		bucket := b
		byMonth[b.Month] = &bucket
	}

	series := make([]entity.MonthlyBucket, 0, len(byMonth))
	for _, b := range byMonth {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month < series[j].Month
	})
	return series
}

// BucketMonthly groups categorized movements by calendar month of their date.
// The result is chronological whatever order the rows came in.
func BucketMonthly(rows []*entity.Movement, catalog *entity.CategoryCatalog) []entity.MonthlyBucket {
	buckets := make([]entity.MonthlyBucket, 0)
	for _, m := range rows {
		cat, ok := m.ResolveCategory(catalog)
		if !ok {
			continue
		}
		b := entity.MonthlyBucket{
			Month:   valueobject.MonthKey(m.Date),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		switch cat.Type {
		case entity.CategoryTypeIncome:
			b.Income = m.Amount
		case entity.CategoryTypeExpense:
			b.Expense = m.Amount
		default:
			continue
		}
		buckets = append(buckets, b)
	}
	return NormalizeMonthlySeries(buckets)
}

// SummarizeKPI sums income and expense over the given movements.
// Movements without a known category count toward neither.
func SummarizeKPI(rows []*entity.Movement, catalog *entity.CategoryCatalog) entity.KPI {
	income := decimal.Zero
	expense := decimal.Zero
	for _, m := range rows {
		cat, ok := m.ResolveCategory(catalog)
		if !ok {
			continue
		}
		switch cat.Type {
		case entity.CategoryTypeIncome:
			income = income.Add(m.Amount)
		case entity.CategoryTypeExpense:
			expense = expense.Add(m.Amount)
		}
	}
	return entity.NewKPI(income, expense)
}
