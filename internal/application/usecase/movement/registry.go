package movement

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/frontend/internal/application/adapter"
	"github.com/finance-tracker/frontend/internal/application/usecase/dashboard"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

// ViewKind names a screen backed by a view-model.
type ViewKind string

const (
	ViewMovements ViewKind = "movements"
	ViewDashboard ViewKind = "dashboard"
)

// ParseViewKind validates a view name.
func ParseViewKind(s string) (ViewKind, error) {
	switch ViewKind(s) {
	case ViewMovements, ViewDashboard:
		return ViewKind(s), nil
	default:
		return "", domainerror.NewQueryError(domainerror.ErrCodeUnknownView, "unknown view "+s, domainerror.ErrUnknownView)
	}
}

// CatalogLoader loads the category catalog for a session. Fresh bypasses any cache.
type CatalogLoader = dashboard.CatalogLoader

// RegistryConfig holds configuration for the view registry.
type RegistryConfig struct {
	ViewModel     ViewModelConfig
	Aggregator    dashboard.AggregatorConfig
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

// DefaultRegistryConfig returns the default registry configuration.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		ViewModel:     DefaultViewModelConfig(),
		Aggregator:    dashboard.DefaultAggregatorConfig(),
		IdleTTL:       30 * time.Minute,
		SweepInterval: time.Minute,
	}
}

type viewKey struct {
	sessionID uuid.UUID
	kind      ViewKind
}

type registryEntry struct {
	vm       *ViewModel
	lastUsed time.Time
}

// Registry holds one view-model per session and view kind, and evicts idle ones.
type Registry struct {
	mu          sync.Mutex
	views       map[viewKey]*registryEntry
	collection  adapter.MovementCollection
	loadCatalog CatalogLoader
	config      RegistryConfig
	now         func() time.Time
}

// NewRegistry creates a new view registry.
func NewRegistry(collection adapter.MovementCollection, loadCatalog CatalogLoader, config RegistryConfig) *Registry {
	return &Registry{
		views:       make(map[viewKey]*registryEntry),
		collection:  collection,
		loadCatalog: loadCatalog,
		config:      config,
		now:         time.Now,
	}
}

// Get returns the session's view of the given kind, creating and loading it on first use.
func (r *Registry) Get(ctx context.Context, session *entity.Session, kind ViewKind) *ViewModel {
	key := viewKey{sessionID: session.ID, kind: kind}

	r.mu.Lock()
	if e, ok := r.views[key]; ok {
		e.lastUsed = r.now()
		r.mu.Unlock()
		return e.vm
	}

	cfg := r.config.ViewModel
	if kind == ViewDashboard {
		year := valueobject.CalendarYear(r.now())
		cfg.InitialRange = &year
	}
	aggregator := dashboard.NewAggregator(r.collection, r.config.Aggregator).WithCatalogLoader(r.loadCatalog)
	fetcher := NewFetcher(r.collection, aggregator)
	vm := NewViewModel(session, fetcher, cfg)
	r.views[key] = &registryEntry{vm: vm, lastUsed: r.now()}
	r.mu.Unlock()

	slog.Info("View opened", "session_id", session.ID, "view", kind)

	catalog, err := r.loadCatalog(ctx, session, false)
	if err != nil {
		slog.Warn("Failed to load categories for view", "session_id", session.ID, "view", kind, "error", err)
		vm.Refresh()
		return vm
	}
	vm.SetCatalog(catalog)
	return vm
}

// UpdateCatalog pushes a new catalog to every view of the session.
func (r *Registry) UpdateCatalog(sessionID uuid.UUID, catalog *entity.CategoryCatalog) {
	for _, vm := range r.sessionViews(sessionID) {
		vm.SetCatalog(catalog)
	}
}

// CloseSession closes and forgets every view of the session.
func (r *Registry) CloseSession(sessionID uuid.UUID) {
	r.mu.Lock()
	var closing []*ViewModel
	for key, e := range r.views {
		if key.sessionID == sessionID {
			closing = append(closing, e.vm)
			delete(r.views, key)
		}
	}
	r.mu.Unlock()

	for _, vm := range closing {
		vm.Close()
	}
}

// Sweep closes views unused for longer than the idle TTL. Returns how many were closed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.config.IdleTTL)

	r.mu.Lock()
	var idle []*ViewModel
	for key, e := range r.views {
		if e.lastUsed.Before(cutoff) {
			idle = append(idle, e.vm)
			delete(r.views, key)
		}
	}
	r.mu.Unlock()

	for _, vm := range idle {
		vm.Close()
	}
	return len(idle)
}

// Len returns the number of live views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Start runs the idle sweep loop. It blocks until the context is cancelled.
func (r *Registry) Start(ctx context.Context) {
	slog.Info("View sweeper started",
		"idle_ttl", r.config.IdleTTL,
		"sweep_interval", r.config.SweepInterval,
	)

	ticker := time.NewTicker(r.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("View sweeper shutting down")
			r.closeAll()
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				slog.Debug("Evicted idle views", "count", n)
			}
		}
	}
}

func (r *Registry) sessionViews(sessionID uuid.UUID) []*ViewModel {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*ViewModel
	for key, e := range r.views {
		if key.sessionID == sessionID {
			out = append(out, e.vm)
		}
	}
	return out
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	all := make([]*ViewModel, 0, len(r.views))
	for key, e := range r.views {
		all = append(all, e.vm)
		delete(r.views, key)
	}
	r.mu.Unlock()

	for _, vm := range all {
		vm.Close()
	}
}
