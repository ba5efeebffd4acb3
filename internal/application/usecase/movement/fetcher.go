package movement

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/frontend/internal/application/adapter"
	"github.com/finance-tracker/frontend/internal/application/usecase/dashboard"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
)

// FetchRequest describes one round trip for a view: a page and, optionally, its aggregates.
type FetchRequest struct {
	Seq            uint64
	Session        *entity.Session
	Query          entity.QueryDescriptor
	Page           entity.PageWindow
	Catalog        *entity.CategoryCatalog
	WithAggregates bool
}

// FetchResult is the outcome of a FetchRequest. Exactly one of Page or Err is set.
type FetchResult struct {
	Seq        uint64
	Page       *adapter.MovementPage
	Aggregates *entity.AggregateSnapshot
	Err        *domainerror.FetchError
}

// Fetcher issues collection requests and numbers them so that only the most
// recently issued one may update visible state.
type Fetcher struct {
	collection adapter.MovementCollection
	aggregator *dashboard.Aggregator
	latest     atomic.Uint64
}

// NewFetcher creates a new Fetcher instance.
func NewFetcher(collection adapter.MovementCollection, aggregator *dashboard.Aggregator) *Fetcher {
	return &Fetcher{
		collection: collection,
		aggregator: aggregator,
	}
}

// Issue returns the next sequence number.
func (f *Fetcher) Issue() uint64 {
	return f.latest.Add(1)
}

// IsLatest reports whether seq is the most recently issued sequence number.
func (f *Fetcher) IsLatest(seq uint64) bool {
	return f.latest.Load() == seq
}

// Fetch performs the request. The page and aggregate queries run concurrently and
// succeed or fail together. Errors are returned as FetchError inside the result.
func (f *Fetcher) Fetch(ctx context.Context, req FetchRequest) FetchResult {
	res := FetchResult{Seq: req.Seq}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page, err := f.fetchPage(gctx, req)
		res.Page = page
		return err
	})

	if req.WithAggregates {
		filters := req.Query.FilterParams()
		g.Go(func() error {
			agg, err := f.aggregator.Execute(gctx, dashboard.AggregateInput{
				Session:   req.Session,
				Filters:   filters,
				DatesOnly: datesOnly(filters),
				Catalog:   req.Catalog,
			})
			res.Aggregates = agg
			return err
		})
	}

	if err := g.Wait(); err != nil {
		fetchErr := domainerror.AsFetchError(err)
		slog.Warn("Movement fetch failed",
			"seq", req.Seq,
			"code", fetchErr.Code,
			"error", err,
		)
		return FetchResult{Seq: req.Seq, Err: fetchErr}
	}

	slog.Debug("Movement fetch completed",
		"seq", req.Seq,
		"rows", len(res.Page.Rows),
		"count", res.Page.Count,
		"aggregates", res.Aggregates != nil,
	)
	return res
}

// fetchPage loads the requested page. A bare list response is cut to the page window locally.
func (f *Fetcher) fetchPage(ctx context.Context, req FetchRequest) (*adapter.MovementPage, error) {
	page, err := f.collection.ListMovements(ctx, req.Session, req.Query)
	if err != nil {
		return nil, err
	}
	if page.Paginated {
		return page, nil
	}

	all := page.Rows
	start := (req.Page.Number - 1) * req.Page.Size
	if start > len(all) {
		start = len(all)
	}
	end := start + req.Page.Size
	if end > len(all) {
		end = len(all)
	}
	return &adapter.MovementPage{
		Rows:      all[start:end],
		Count:     int64(len(all)),
		Paginated: false,
	}, nil
}

func datesOnly(filters entity.QueryDescriptor) bool {
	n := 0
	if filters.Has(string(entity.FilterDateFrom)) {
		n++
	}
	if filters.Has(string(entity.FilterDateTo)) {
		n++
	}
	return n == filters.Len()
}
