package movement

import (
	"strconv"
	"strings"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

// BuildQuery turns filters, sort and page cursor into the canonical request
// for the movement collection. Unconstrained and blank filters are omitted.
func BuildQuery(filters entity.Filters, sort entity.SortKey, page entity.PageWindow) entity.QueryDescriptor {
	params := filterParams(filters)
	params[entity.ParamOrdering] = sort.Ordering()
	params[entity.ParamPage] = strconv.Itoa(page.Number)
	params[entity.ParamPageSize] = strconv.Itoa(page.Size)
	return entity.NewQueryDescriptor(params)
}

// BuildFilterQuery returns only the filter parameters, as used for aggregate queries.
func BuildFilterQuery(filters entity.Filters) entity.QueryDescriptor {
	return entity.NewQueryDescriptor(filterParams(filters))
}

func filterParams(filters entity.Filters) map[string]string {
	params := make(map[string]string, 8)

	if d, ok := filters.DateFrom.Get(); ok {
		params[string(entity.FilterDateFrom)] = valueobject.FormatDate(d)
	}
	if d, ok := filters.DateTo.Get(); ok {
		params[string(entity.FilterDateTo)] = valueobject.FormatDate(d)
	}
	if t, ok := filters.Type.Get(); ok && t != "" {
		params[string(entity.FilterType)] = string(t)
	}
	if c, ok := filters.Category.Get(); ok && strings.TrimSpace(c) != "" {
		params[string(entity.FilterCategory)] = strings.TrimSpace(c)
	}
	if q, ok := filters.Search.Get(); ok && strings.TrimSpace(q) != "" {
		params[string(entity.FilterSearch)] = strings.TrimSpace(q)
	}

	return params
}
