package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/frontend/internal/application/adapter"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
)

// AggregatorConfig holds aggregation settings.
type AggregatorConfig struct {
	// UseSummaryEndpoint enables the movements summary endpoints. When false, or when the
	// service reports them missing, totals and series are computed from every filtered row.
	UseSummaryEndpoint bool

	// PopulationPageSize is the page size used to walk the filtered population.
	PopulationPageSize int

	// MaxConcurrentPages bounds parallel page requests while walking the population.
	MaxConcurrentPages int
}

// DefaultAggregatorConfig returns the default aggregation configuration.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		UseSummaryEndpoint: true,
		PopulationPageSize: entity.MaxRemotePageSize,
		MaxConcurrentPages: 4,
	}
}

// AggregateInput represents the input for aggregating a filtered population.
type AggregateInput struct {
	Session *entity.Session
	// Filters holds the filter parameters only, exactly as sent for the visible page.
	Filters entity.QueryDescriptor
	// DatesOnly is true when no filter other than the date bounds is active.
	DatesOnly bool
	Catalog   *entity.CategoryCatalog
}

// populationOrdering walks the population by date with the movement ID as
// tiebreak, so offset pages neither overlap nor skip rows sharing a day.
const populationOrdering = "date,id"

// CatalogLoader loads the category catalog for a session. Fresh bypasses any cache.
type CatalogLoader func(ctx context.Context, session *entity.Session, fresh bool) (*entity.CategoryCatalog, error)

// Aggregator derives KPI totals, the monthly series and the category breakdown
// of a filtered movement population.
type Aggregator struct {
	collection  adapter.MovementCollection
	config      AggregatorConfig
	loadCatalog CatalogLoader
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(collection adapter.MovementCollection, config AggregatorConfig) *Aggregator {
	if config.PopulationPageSize < 1 || config.PopulationPageSize > entity.MaxRemotePageSize {
		config.PopulationPageSize = entity.MaxRemotePageSize
	}
	if config.MaxConcurrentPages < 1 {
		config.MaxConcurrentPages = 1
	}
	return &Aggregator{
		collection: collection,
		config:     config,
	}
}

// WithCatalogLoader lets the aggregator reload the catalog when the population
// references categories the caller's catalog does not know.
func (a *Aggregator) WithCatalogLoader(load CatalogLoader) *Aggregator {
	a.loadCatalog = load
	return a
}

// Execute computes the aggregate snapshot for the input's filter parameters.
func (a *Aggregator) Execute(ctx context.Context, input AggregateInput) (*entity.AggregateSnapshot, error) {
	var (
		rows       []*entity.Movement
		summary    *entity.KPI
		series     []entity.MonthlyBucket
		summaryErr error
		seriesErr  error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		rows, err = a.FetchPopulation(gctx, input.Session, input.Filters)
		return err
	})

	if a.config.UseSummaryEndpoint {
		g.Go(func() error {
			summary, summaryErr = a.collection.Summary(gctx, input.Session, input.Filters)
			return optional(summaryErr)
		})

		if input.DatesOnly {
			g.Go(func() error {
				series, seriesErr = a.collection.MonthlySummary(gctx, input.Session, input.Filters)
				return optional(seriesErr)
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := a.resolveCatalog(ctx, input.Session, input.Catalog, rows)

	snapshot := &entity.AggregateSnapshot{
		CategoryBreakdown: BuildCategoryBreakdown(rows, catalog),
		FilterKey:         input.Filters.Key(),
		Catalog:           catalog,
	}

	if summary != nil && summaryErr == nil {
		snapshot.KPI = entity.NewKPI(summary.TotalIncome, summary.TotalExpense)
	} else {
		if summaryErr != nil {
			slog.Debug("Summary endpoint unavailable, summing filtered rows", "rows", len(rows))
		}
		snapshot.KPI = SummarizeKPI(rows, catalog)
	}

	if series != nil && seriesErr == nil {
		snapshot.MonthlySeries = NormalizeMonthlySeries(series)
	} else {
		snapshot.MonthlySeries = BucketMonthly(rows, catalog)
	}

	return snapshot, nil
}

// resolveCatalog returns a catalog covering every category the rows reference,
// reloading it once when some are unknown. On reload failure the given catalog is kept.
func (a *Aggregator) resolveCatalog(ctx context.Context, session *entity.Session, catalog *entity.CategoryCatalog, rows []*entity.Movement) *entity.CategoryCatalog {
	if a.loadCatalog == nil || !hasUnknownCategory(rows, catalog) {
		return catalog
	}

	reloaded, err := a.loadCatalog(ctx, session, true)
	if err != nil {
		slog.Warn("Failed to reload categories for unknown movement categories", "error", err)
		return catalog
	}
	slog.Debug("Category catalog reloaded", "before", catalog.Len(), "after", reloaded.Len())
	return reloaded
}

func hasUnknownCategory(rows []*entity.Movement, catalog *entity.CategoryCatalog) bool {
	for _, m := range rows {
		if m.CategoryID == nil {
			continue
		}
		if _, ok := catalog.Lookup(*m.CategoryID); !ok {
			return true
		}
	}
	return false
}

// FetchPopulation returns every movement matching the filter parameters, walking
// the collection page by page. The first page tells how many pages follow.
func (a *Aggregator) FetchPopulation(ctx context.Context, session *entity.Session, filters entity.QueryDescriptor) ([]*entity.Movement, error) {
	size := a.config.PopulationPageSize

	first, err := a.collection.ListMovements(ctx, session, populationQuery(filters, 1, size))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movement population: %w", err)
	}
	if !first.Paginated {
		return first.Rows, nil
	}

	pages := entity.TotalPages(first.Count, size)
	if pages <= 1 {
		return first.Rows, nil
	}

	results := make([][]*entity.Movement, pages)
	results[0] = first.Rows

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.MaxConcurrentPages)
	for page := 2; page <= pages; page++ {
		page := page // per-iteration copy; go directive is below 1.22
		g.Go(func() error {
			res, err := a.collection.ListMovements(gctx, session, populationQuery(filters, page, size))
			if err != nil {
				return fmt.Errorf("failed to fetch movement population page %d: %w", page, err)
			}
			results[page-1] = res.Rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, first.Count)
	rows := make([]*entity.Movement, 0, first.Count)
	for _, pageRows := range results {
		for _, m := range pageRows {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			rows = append(rows, m)
		}
	}
	if int64(len(rows)) != first.Count {
		slog.Debug("Movement population changed while paging", "count", first.Count, "rows", len(rows))
	}
	return rows, nil
}

func populationQuery(filters entity.QueryDescriptor, page, size int) entity.QueryDescriptor {
	return filters.
		With(entity.ParamOrdering, populationOrdering).
		With(entity.ParamPage, strconv.Itoa(page)).
		With(entity.ParamPageSize, strconv.Itoa(size))
}

// optional swallows a missing endpoint so the caller can fall back to client-side sums.
func optional(err error) error {
	if errors.Is(err, domainerror.ErrEndpointNotFound) {
		return nil
	}
	return err
}
