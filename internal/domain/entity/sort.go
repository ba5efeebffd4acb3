package entity

import (
	"fmt"
	"strings"
)

// SortField is a sortable movement column.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByDescription SortField = "description"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortKey is a single (field, direction) pair.
type SortKey struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSortKey orders movements newest first.
var DefaultSortKey = SortKey{Field: SortByDate, Direction: SortDesc}

// SortKeys lists every supported sort key.
var SortKeys = []SortKey{
	{SortByDate, SortDesc},
	{SortByDate, SortAsc},
	{SortByAmount, SortDesc},
	{SortByAmount, SortAsc},
	{SortByDescription, SortAsc},
	{SortByDescription, SortDesc},
}

// IsValid reports whether k is one of SortKeys.
func (k SortKey) IsValid() bool {
	for _, known := range SortKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Ordering renders the key as a single ordering parameter, "-" marking descending.
func (k SortKey) Ordering() string {
	if k.Direction == SortDesc {
		return "-" + string(k.Field)
	}
	return string(k.Field)
}

// ParseOrdering parses an ordering parameter such as "-date" or "amount".
func ParseOrdering(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	key := SortKey{Field: SortField(s), Direction: SortAsc}
	if strings.HasPrefix(s, "-") {
		key = SortKey{Field: SortField(s[1:]), Direction: SortDesc}
	}
	if !key.IsValid() {
		return SortKey{}, fmt.Errorf("unsupported ordering %q", s)
	}
	return key, nil
}
