package movement

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

// DefaultNoticeTTL is how long a fetch error stays on the snapshot.
const DefaultNoticeTTL = 4 * time.Second

// ViewModelConfig holds view-model settings.
type ViewModelConfig struct {
	PageSize  int
	NoticeTTL time.Duration

	// InitialRange, when set, is the date range a new view starts with.
	InitialRange *valueobject.DateRange
}

// DefaultViewModelConfig returns the default view-model configuration.
func DefaultViewModelConfig() ViewModelConfig {
	return ViewModelConfig{
		PageSize:  entity.DefaultPageSize,
		NoticeTTL: DefaultNoticeTTL,
	}
}

// ViewModel composes filters, sort, pagination, fetching and aggregation into
// a single snapshot. Mutators update state synchronously and trigger at most
// one asynchronous fetch; the snapshot is only ever replaced wholesale.
type ViewModel struct {
	mu sync.Mutex

	session    *entity.Session
	fetcher    *Fetcher
	config     ViewModelConfig
	filters    *FilterSet
	sort       entity.SortKey
	pagination *PaginationController
	catalog    *entity.CategoryCatalog

	rows            []*entity.Movement
	aggregates      *entity.AggregateSnapshot
	aggregatesStale bool
	lastError       *entity.Notice
	noticeGen       uint64
	loading         bool
	empty           bool
	issuedKey       string

	version  uint64
	snapshot atomic.Pointer[entity.ViewSnapshot]
	changed  chan struct{}

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

// NewViewModel creates a view-model for the session. No fetch happens until a mutator or Refresh runs.
func NewViewModel(session *entity.Session, fetcher *Fetcher, config ViewModelConfig) *ViewModel {
	ctx, cancel := context.WithCancel(context.Background())
	v := &ViewModel{
		session:    session,
		fetcher:    fetcher,
		config:     config,
		filters:    NewFilterSet(),
		sort:       entity.DefaultSortKey,
		pagination: NewPaginationController(config.PageSize),
		changed:    make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
	if config.InitialRange != nil {
		v.filters.SetRange(*config.InitialRange)
	}
	v.publish()
	return v
}

// Snapshot returns the latest published snapshot.
func (v *ViewModel) Snapshot() *entity.ViewSnapshot {
	return v.snapshot.Load()
}

// Changed returns a channel closed on the next publication.
func (v *ViewModel) Changed() <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.changed
}

// Await blocks until a snapshot newer than version is published or ctx ends,
// then returns the latest snapshot.
func (v *ViewModel) Await(ctx context.Context, version uint64) *entity.ViewSnapshot {
	for {
		changed := v.Changed()
		snap := v.Snapshot()
		if snap.Version > version {
			return snap
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return v.Snapshot()
		}
	}
}

// SetDateFrom replaces the lower date bound.
func (v *ViewModel) SetDateFrom(d valueobject.Optional[time.Time]) {
	v.mutate(func() { v.filters.SetDateFrom(d) })
}

// SetDateTo replaces the upper date bound.
func (v *ViewModel) SetDateTo(d valueobject.Optional[time.Time]) {
	v.mutate(func() { v.filters.SetDateTo(d) })
}

// SetRange replaces both date bounds.
func (v *ViewModel) SetRange(r valueobject.DateRange) {
	v.mutate(func() { v.filters.SetRange(r) })
}

// SetType replaces the category type filter.
func (v *ViewModel) SetType(t valueobject.Optional[entity.CategoryType]) {
	v.mutate(func() { v.filters.SetType(t) })
}

// SetCategory replaces the category filter.
func (v *ViewModel) SetCategory(c valueobject.Optional[string]) {
	v.mutate(func() { v.filters.SetCategory(c) })
}

// SetSearch replaces the free-text search.
func (v *ViewModel) SetSearch(q valueobject.Optional[string]) {
	v.mutate(func() { v.filters.SetSearch(q) })
}

// ClearFilters resets every filter.
func (v *ViewModel) ClearFilters() {
	v.mutate(func() { v.filters.ClearAll() })
}

// SetSort replaces the sort key.
func (v *ViewModel) SetSort(key entity.SortKey) error {
	if !key.IsValid() {
		return domainerror.NewQueryError(domainerror.ErrCodeInvalidOrdering, "Unsupported ordering", domainerror.ErrInvalidOrdering)
	}
	v.mutate(func() { v.sort = key })
	return nil
}

// SetPage moves to page n, clamped to the known page range. Returns the page selected.
func (v *ViewModel) SetPage(n int) int {
	var selected int
	v.mutate(func() { selected, _ = v.pagination.SetPage(n) })
	return selected
}

// SetPageSize changes the page size.
func (v *ViewModel) SetPageSize(size int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.pagination.SetPageSize(size); err != nil {
		return err
	}
	v.recompute(false)
	return nil
}

// SetCatalog replaces the category catalog and recomputes everything derived from it.
func (v *ViewModel) SetCatalog(catalog *entity.CategoryCatalog) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.catalog = catalog
	v.filters.SetCatalog(catalog)
	v.aggregatesStale = true
	v.recompute(true)
}

// Refresh re-issues the current query, aggregates included. Aggregates stay
// stale until a fetch carrying them is applied, so a page change racing the
// refresh still reloads them.
func (v *ViewModel) Refresh() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.aggregatesStale = true
	v.recompute(true)
}

// Wait blocks until every fetch issued so far has finished.
func (v *ViewModel) Wait() {
	v.inflight.Wait()
}

// Close stops in-flight fetches from being applied and waits for them.
func (v *ViewModel) Close() {
	v.cancel()
	v.inflight.Wait()
}

func (v *ViewModel) mutate(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fn()
	v.recompute(false)
}

// recompute derives the query from current inputs and issues a fetch when it
// differs from the last one issued, or always when forced. Callers hold mu.
func (v *ViewModel) recompute(force bool) {
	filters := v.filters.Filters()
	filterKey := BuildFilterQuery(filters).Key()
	v.pagination.Track(filterKey, v.sort)

	query := BuildQuery(filters, v.sort, v.pagination.Window())
	if !force && query.Key() == v.issuedKey {
		v.publish()
		return
	}
	v.issuedKey = query.Key()

	withAggregates := force || v.aggregatesStale || v.aggregates == nil || v.aggregates.FilterKey != filterKey
	req := FetchRequest{
		Seq:            v.fetcher.Issue(),
		Session:        v.session,
		Query:          query,
		Page:           v.pagination.Window(),
		Catalog:        v.catalog,
		WithAggregates: withAggregates,
	}

	slog.Debug("Movement fetch issued",
		"seq", req.Seq,
		"query", query.Key(),
		"aggregates", withAggregates,
	)

	v.loading = true
	v.publish()

	v.inflight.Add(1)
	go v.run(req)
}

func (v *ViewModel) run(req FetchRequest) {
	defer v.inflight.Done()

	res := v.fetcher.Fetch(v.ctx, req)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.ctx.Err() != nil {
		return
	}
	if !v.fetcher.IsLatest(res.Seq) {
		slog.Debug("Discarding stale movement response", "seq", res.Seq)
		return
	}
	v.apply(res)
}

// apply commits a fetch result. Callers hold mu.
func (v *ViewModel) apply(res FetchResult) {
	if res.Err != nil {
		v.issuedKey = ""
		if res.Err.Code == domainerror.ErrCodePageOutOfRange && v.pagination.Window().Number > 1 {
			v.pagination.SetPage(1)
			v.recompute(false)
			return
		}
		v.loading = false
		v.pagination.MarkFailed()
		v.raise(res.Err)
		v.publish()
		return
	}

	v.rows = res.Page.Rows
	reconciled := false
	if res.Aggregates != nil {
		v.aggregates = res.Aggregates
		v.aggregatesStale = false
		if c := res.Aggregates.Catalog; c != nil && c != v.catalog {
			v.catalog = c
			v.filters.SetCatalog(c)
			reconciled = BuildFilterQuery(v.filters.Filters()).Key() != res.Aggregates.FilterKey
		}
	}
	v.pagination.Commit(res.Page.Count)
	v.empty = res.Page.Count == 0 && len(res.Page.Rows) == 0
	v.loading = false
	v.dismiss()
	v.publish()

	// A reloaded catalog can retire a category filter.
	if reconciled {
		v.recompute(false)
	}
}

// raise puts a notice on the snapshot and schedules its dismissal. Callers hold mu.
func (v *ViewModel) raise(err *domainerror.FetchError) {
	v.noticeGen++
	gen := v.noticeGen
	v.lastError = &entity.Notice{
		Code:     string(err.Code),
		Message:  err.Message,
		RaisedAt: time.Now().UTC(),
	}

	if v.config.NoticeTTL <= 0 {
		return
	}
	time.AfterFunc(v.config.NoticeTTL, func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		if v.noticeGen == gen && v.lastError != nil {
			v.lastError = nil
			v.publish()
		}
	})
}

func (v *ViewModel) dismiss() {
	v.noticeGen++
	v.lastError = nil
}

// publish replaces the snapshot and wakes waiters. Callers hold mu.
func (v *ViewModel) publish() {
	v.version++
	window := v.pagination.Window()

	v.snapshot.Store(&entity.ViewSnapshot{
		Version:    v.version,
		Filters:    v.filters.Filters(),
		Sort:       v.sort,
		Page:       window,
		TotalPages: window.TotalPages(),
		Rows:       v.rows,
		Aggregates: v.aggregates,
		Categories: v.catalog.Categories(),
		LastError:  v.lastError,
		Loading:    v.loading,
		Empty:      v.empty,
	})

	close(v.changed)
	v.changed = make(chan struct{})
}
