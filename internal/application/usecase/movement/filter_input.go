package movement

import (
	"strings"
	"time"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

// ApplyFilter parses a raw filter value and applies it to the view.
// A nil or blank value clears the field.
func (v *ViewModel) ApplyFilter(field entity.FilterField, raw *string) error {
	value := ""
	if raw != nil {
		value = strings.TrimSpace(*raw)
	}

	switch field {
	case entity.FilterDateFrom, entity.FilterDateTo:
		d, err := parseDateFilter(value)
		if err != nil {
			return err
		}
		if field == entity.FilterDateFrom {
			v.SetDateFrom(d)
		} else {
			v.SetDateTo(d)
		}
	case entity.FilterType:
		if value == "" {
			v.SetType(valueobject.All[entity.CategoryType]())
			return nil
		}
		t := entity.CategoryType(strings.ToLower(value))
		if !t.IsValid() {
			return domainerror.NewQueryError(domainerror.ErrCodeInvalidFilterValue, "Type must be income or expense", domainerror.ErrInvalidFilterValue)
		}
		v.SetType(valueobject.Only(t))
	case entity.FilterCategory:
		v.SetCategory(optionalString(value))
	case entity.FilterSearch:
		v.SetSearch(optionalString(value))
	default:
		return domainerror.NewQueryError(domainerror.ErrCodeInvalidFilterField, "Unknown filter field "+string(field), domainerror.ErrInvalidFilterField)
	}
	return nil
}

// ApplyRangePreset sets both date bounds from a named preset relative to now.
func (v *ViewModel) ApplyRangePreset(preset string, now time.Time) error {
	r, err := valueobject.ResolvePreset(valueobject.RangePreset(preset), now)
	if err != nil {
		return domainerror.NewQueryError(domainerror.ErrCodeUnknownRangePreset, "Unknown date range preset", domainerror.ErrUnknownRangePreset)
	}
	v.SetRange(r)
	return nil
}

// ApplyOrdering parses an ordering parameter such as "-amount" and sorts by it.
func (v *ViewModel) ApplyOrdering(ordering string) error {
	key, err := entity.ParseOrdering(ordering)
	if err != nil {
		return domainerror.NewQueryError(domainerror.ErrCodeInvalidOrdering, "Unsupported ordering", domainerror.ErrInvalidOrdering)
	}
	return v.SetSort(key)
}

func parseDateFilter(value string) (valueobject.Optional[time.Time], error) {
	if value == "" {
		return valueobject.All[time.Time](), nil
	}
	d, err := valueobject.ParseDate(value)
	if err != nil {
		return valueobject.Optional[time.Time]{}, domainerror.NewQueryError(domainerror.ErrCodeInvalidDateFormat, "Date must be YYYY-MM-DD", domainerror.ErrInvalidDateFormat)
	}
	return valueobject.Only(d), nil
}

func optionalString(value string) valueobject.Optional[string] {
	if value == "" {
		return valueobject.All[string]()
	}
	return valueobject.Only(value)
}
