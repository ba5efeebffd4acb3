// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"

	"github.com/finance-tracker/frontend/config"
	"github.com/finance-tracker/frontend/internal/application/usecase/auth"
	"github.com/finance-tracker/frontend/internal/application/usecase/category"
	"github.com/finance-tracker/frontend/internal/application/usecase/dashboard"
	"github.com/finance-tracker/frontend/internal/application/usecase/movement"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	"github.com/finance-tracker/frontend/internal/infra/server/router"
	"github.com/finance-tracker/frontend/internal/infra/store"
	"github.com/finance-tracker/frontend/internal/integration/adapters"
	"github.com/finance-tracker/frontend/internal/integration/collection"
	"github.com/finance-tracker/frontend/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/frontend/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/frontend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	Store       *store.Store
	Registry    *movement.Registry
	RateLimiter *middleware.RateLimiter
	Router      *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, st *store.Store) (*Injector, error) {
	rdb := st.Client()

	// Create remote collection client
	collectionConfig := collection.DefaultConfig(cfg.Collection.BaseURL)
	collectionConfig.Timeout = cfg.Collection.Timeout
	collectionClient, err := collection.NewClient(collectionConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection client: %w", err)
	}

	// Create repositories
	sessionRepo := persistence.NewSessionRepository(rdb)
	categoryCache := persistence.NewCategoryCache(rdb, cfg.Cache.CategoryTTL)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(collectionClient, categoryCache)
	getCategoryUseCase := category.NewGetCategoryUseCase(listCategoriesUseCase)

	// Create view registry
	registry := movement.NewRegistry(
		collectionClient,
		func(ctx context.Context, session *entity.Session, fresh bool) (*entity.CategoryCatalog, error) {
			out, err := listCategoriesUseCase.Execute(ctx, category.ListCategoriesInput{Session: session, Fresh: fresh})
			if err != nil {
				return nil, err
			}
			return out.Catalog, nil
		},
		movement.RegistryConfig{
			ViewModel: movement.ViewModelConfig{
				PageSize:  cfg.View.DefaultPageSize,
				NoticeTTL: cfg.View.NoticeTTL,
			},
			Aggregator: dashboard.AggregatorConfig{
				UseSummaryEndpoint: cfg.Collection.UseSummaryEndpoint,
				PopulationPageSize: cfg.Collection.PopulationPageSize,
				MaxConcurrentPages: cfg.Collection.MaxConcurrentPages,
			},
			IdleTTL:       cfg.View.IdleTTL,
			SweepInterval: cfg.View.SweepInterval,
		},
	)

	// Create auth use cases
	loginUseCase := auth.NewLoginUserUseCase(collectionClient, sessionRepo, tokenService, cfg.JWT.SessionExpiry)
	logoutUseCase := auth.NewLogoutUserUseCase(sessionRepo, categoryCache, registry)
	resolveSessionUseCase := auth.NewResolveSessionUseCase(sessionRepo, tokenService)

	// Create controllers
	healthController := controller.NewHealthController(st.HealthCheck, registry.Len)
	authController := controller.NewAuthController(loginUseCase, logoutUseCase)
	viewController := controller.NewViewController(registry, cfg.View.LongPollTimeout)
	categoryController := controller.NewCategoryController(listCategoriesUseCase, getCategoryUseCase, registry)

	// Create middleware
	rateLimiterConfig := middleware.DefaultRateLimiterConfig()
	rateLimiterConfig.MaxAttempts = cfg.Server.LoginRateLimit
	rateLimiterConfig.Enabled = cfg.Server.LoginRateLimit > 0 && cfg.Server.Environment != "test"
	loginRateLimiter := middleware.NewRateLimiter(rateLimiterConfig)
	authMiddleware := middleware.NewAuthMiddleware(resolveSessionUseCase)

	r := router.NewRouter(healthController, authController, viewController, categoryController, loginRateLimiter, authMiddleware)

	return &Injector{
		Config:      cfg,
		Store:       st,
		Registry:    registry,
		RateLimiter: loginRateLimiter,
		Router:      r,
	}, nil
}
