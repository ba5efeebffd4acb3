package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/frontend/internal/domain/entity"
)

type breakdownKey struct {
	name string
	kind entity.CategoryType
}

// BuildCategoryBreakdown groups movements by (category name, category type) and sums their amounts.
// Groups with no rows never appear. Percentages are relative to the total of the same type
// and are 0 when that total is zero.
func BuildCategoryBreakdown(rows []*entity.Movement, catalog *entity.CategoryCatalog) []entity.CategoryBucket {
	totals := make(map[breakdownKey]decimal.Decimal)
	typeTotals := make(map[entity.CategoryType]decimal.Decimal)

	for _, m := range rows {
		cat, ok := m.ResolveCategory(catalog)
		if !ok {
			continue
		}
		key := breakdownKey{name: cat.Name, kind: cat.Type}
		totals[key] = totals[key].Add(m.Amount)
		typeTotals[cat.Type] = typeTotals[cat.Type].Add(m.Amount)
	}

	buckets := make([]entity.CategoryBucket, 0, len(totals))
	for key, total := range totals {
		buckets = append(buckets, entity.CategoryBucket{
			CategoryName: key.name,
			CategoryType: key.kind,
			Total:        total,
			Percentage:   percentageOf(total, typeTotals[key.kind]),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].CategoryType != buckets[j].CategoryType {
			return buckets[i].CategoryType < buckets[j].CategoryType
		}
		if !buckets[i].Total.Equal(buckets[j].Total) {
			return buckets[i].Total.GreaterThan(buckets[j].Total)
		}
		return buckets[i].CategoryName < buckets[j].CategoryName
	})
	return buckets
}

func percentageOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	pct, _ := part.Mul(decimal.NewFromInt(100)).Div(total).Round(2).Float64()
	return pct
}
