package entity

import "time"

// Notice is a transient, user-displayable error.
type Notice struct {
	Code     string
	Message  string
	RaisedAt time.Time
}

// ViewSnapshot is an immutable, internally consistent picture of a view.
type ViewSnapshot struct {
	Version    uint64
	Filters    Filters
	Sort       SortKey
	Page       PageWindow
	TotalPages int
	Rows       []*Movement
	Aggregates *AggregateSnapshot
	Categories []*Category
	LastError  *Notice
	Loading    bool
	Empty      bool // A fetch succeeded with zero matching rows
}
