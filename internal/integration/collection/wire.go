package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

// flexID accepts identifiers sent as JSON numbers or strings.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

type movementPayload struct {
	ID          flexID          `json:"id"`
	Category    *flexID         `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
}

func (p movementPayload) toEntity() (*entity.Movement, error) {
	date, err := valueobject.ParseDate(p.Date)
	if err != nil {
		return nil, fmt.Errorf("movement %s has invalid date %q: %w", p.ID, p.Date, err)
	}

	m := &entity.Movement{
		ID:          string(p.ID),
		Date:        date,
		Amount:      p.Amount.Abs(),
		Description: p.Description,
	}
	if p.Category != nil && *p.Category != "" {
		categoryID := string(*p.Category)
		m.CategoryID = &categoryID
	}
	return m, nil
}

type categoryPayload struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (p categoryPayload) toEntity() *entity.Category {
	return &entity.Category{
		ID:   string(p.ID),
		Name: p.Name,
		Type: entity.CategoryType(strings.ToLower(p.Type)),
	}
}

type summaryPayload struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

type monthlyPayload struct {
	Series []struct {
		Month   string          `json:"month"`
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
	} `json:"series"`
}

type tokenPayload struct {
	Token string `json:"token"`
}

// listEnvelope is a decoded list response in either of its two shapes:
// a paginated object with results and count, or a bare array.
type listEnvelope[T any] struct {
	Results   []T
	Count     int64
	Next      string
	Paginated bool
}

func decodeList[T any](body []byte) (*listEnvelope[T], error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var rows []T
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, err
		}
		return &listEnvelope[T]{Results: rows, Count: int64(len(rows))}, nil
	}

	var page struct {
		Results []T     `json:"results"`
		Count   *int64  `json:"count"`
		Next    *string `json:"next"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	env := &listEnvelope[T]{Results: page.Results, Paginated: true}
	if page.Count != nil {
		env.Count = *page.Count
	} else {
		env.Count = int64(len(page.Results))
	}
	if page.Next != nil {
		env.Next = *page.Next
	}
	return env, nil
}
