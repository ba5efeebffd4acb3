package movement

import (
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
	"github.com/finance-tracker/frontend/internal/domain/entity"
)

// PaginationState tells whether the page cursor awaits a fetch.
type PaginationState string

const (
	PaginationIdle  PaginationState = "idle"
	PaginationDirty PaginationState = "dirty"
)

// PaginationController owns the page cursor of one view.
type PaginationController struct {
	window    entity.PageWindow
	state     PaginationState
	filterKey string
	sort      entity.SortKey
}

// NewPaginationController starts on page 1 with the given size.
func NewPaginationController(size int) *PaginationController {
	if !entity.IsValidPageSize(size) {
		size = entity.DefaultPageSize
	}
	return &PaginationController{
		window: entity.PageWindow{Number: 1, Size: size},
		state:  PaginationDirty,
		sort:   entity.DefaultSortKey,
	}
}

// Window returns the current page window.
func (p *PaginationController) Window() entity.PageWindow {
	return p.window
}

// State returns idle or dirty.
func (p *PaginationController) State() PaginationState {
	return p.state
}

// Track records the effective filter key and sort key, requesting page 1 when either changed.
// Returns whether the cursor was reset.
func (p *PaginationController) Track(filterKey string, sort entity.SortKey) bool {
	if filterKey == p.filterKey && sort == p.sort {
		return false
	}
	p.filterKey = filterKey
	p.sort = sort
	p.reset()
	return true
}

// SetPageSize changes the page size and requests page 1.
func (p *PaginationController) SetPageSize(size int) error {
	if !entity.IsValidPageSize(size) {
		return domainerror.NewQueryError(domainerror.ErrCodeInvalidPageSize, "Invalid page size", domainerror.ErrInvalidPageSize)
	}
	if size == p.window.Size {
		return nil
	}
	p.window.Size = size
	p.reset()
	return nil
}

// SetPage moves the cursor to n, clamped to [1, totalPages] once the count is known.
// Returns the page actually selected and whether it changed.
func (p *PaginationController) SetPage(n int) (int, bool) {
	if n < 1 {
		n = 1
	}
	if p.window.CountKnown {
		if last := p.window.TotalPages(); n > last {
			n = last
		}
	}
	if n == p.window.Number {
		return n, false
	}
	p.window.Number = n
	p.state = PaginationDirty
	return n, true
}

// Commit records the count a fetch reported and returns to idle.
func (p *PaginationController) Commit(count int64) {
	p.window.Count = count
	p.window.CountKnown = true
	p.state = PaginationIdle
}

// MarkFailed returns to idle without learning a count.
func (p *PaginationController) MarkFailed() {
	p.state = PaginationIdle
}

func (p *PaginationController) reset() {
	p.window.Number = 1
	p.state = PaginationDirty
}
