package entity

import (
	"time"

	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

// FilterField names a single filter axis.
type FilterField string

const (
	FilterDateFrom FilterField = "date_from"
	FilterDateTo   FilterField = "date_to"
	FilterType     FilterField = "type"
	FilterCategory FilterField = "category"
	FilterSearch   FilterField = "search"
)

// Filters holds the user-chosen constraints narrowing the movement population.
// The zero value has every field unconstrained.
type Filters struct {
	DateFrom valueobject.Optional[time.Time]
	DateTo   valueobject.Optional[time.Time]
	Type     valueobject.Optional[CategoryType]
	Category valueobject.Optional[string]
	Search   valueobject.Optional[string]
}
