package entity

import (
	"net/url"
	"sort"
	"strings"
)

// Query parameter names understood by the collection service.
const (
	ParamOrdering = "ordering"
	ParamPage     = "page"
	ParamPageSize = "page_size"
)

// QueryDescriptor is the canonical, collapsed request for the movement collection.
type QueryDescriptor struct {
	params map[string]string
}

// NewQueryDescriptor copies params into a descriptor.
func NewQueryDescriptor(params map[string]string) QueryDescriptor {
	cp := make(map[string]string, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return QueryDescriptor{params: cp}
}

// Get returns a parameter value and whether it is present.
func (q QueryDescriptor) Get(name string) (string, bool) {
	v, ok := q.params[name]
	return v, ok
}

// Has reports whether a parameter is present.
func (q QueryDescriptor) Has(name string) bool {
	_, ok := q.params[name]
	return ok
}

// Len returns the number of parameters.
func (q QueryDescriptor) Len() int {
	return len(q.params)
}

// With returns a copy with name set to value.
func (q QueryDescriptor) With(name, value string) QueryDescriptor {
	next := NewQueryDescriptor(q.params)
	next.params[name] = value
	return next
}

// FilterParams returns the descriptor without ordering and paging.
func (q QueryDescriptor) FilterParams() QueryDescriptor {
	next := NewQueryDescriptor(q.params)
	delete(next.params, ParamOrdering)
	delete(next.params, ParamPage)
	delete(next.params, ParamPageSize)
	return next
}

// Values renders the descriptor as URL query values.
func (q QueryDescriptor) Values() url.Values {
	values := make(url.Values, len(q.params))
	for k, v := range q.params {
		values.Set(k, v)
	}
	return values
}

// Key returns a canonical string; equal descriptors have equal keys.
func (q QueryDescriptor) Key() string {
	names := make([]string, 0, len(q.params))
	for k := range q.params {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, k := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.params[k]))
	}
	return b.String()
}
