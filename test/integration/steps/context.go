//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/frontend/config"
	"github.com/finance-tracker/frontend/internal/infra/dependency"
	"github.com/finance-tracker/frontend/internal/infra/store"
	"github.com/finance-tracker/frontend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// suite holds the process-wide servers shared by every scenario.
type suite struct {
	db         *mock.Db
	collection *mock.Collection
	store      *store.Store
	injector   *dependency.Injector
	server     *httptest.Server
	cancel     context.CancelFunc
}

var suiteInit sync.Once
var shared *suite

func startSuite() *suite {
	suiteInit.Do(func() {
		gin.SetMode(gin.TestMode)

		db := mock.NewDb(mock.Models...)
		collection := mock.NewCollection(db)
		st := store.NewStore(mock.NewRedis())

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Collection.BaseURL = collection.BaseURL()
		cfg.Collection.Timeout = 5 * time.Second
		cfg.Collection.UseSummaryEndpoint = true
		cfg.JWT.Secret = testJWTSecret
		cfg.View.DefaultPageSize = 10
		cfg.View.NoticeTTL = 30 * time.Second
		cfg.View.LongPollTimeout = 2 * time.Second

		injector, err := dependency.NewInjector(cfg, st)
		if err != nil {
			panic(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		go injector.Registry.Start(ctx)

		shared = &suite{
			db:         db,
			collection: collection,
			store:      st,
			injector:   injector,
			server:     httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
			cancel:     cancel,
		}
	})
	return shared
}

func (s *suite) close() {
	s.cancel()
	s.server.Close()
	s.collection.Close()
}

// testContext holds the per-scenario state.
type testContext struct {
	suite       *suite
	uri         string
	client      *http.Client
	headers     map[string]string
	response    *response
	accessToken string
	categoryIDs map[string]uint
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite starts the shared servers and tears them down at the end.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		startSuite()
	})

	ctx.AfterSuite(func() {
		if shared != nil {
			shared.close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	s := startSuite()
	test := &testContext{
		suite:  s,
		uri:    s.server.URL,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Collection setup steps
	ctx.Given(`^the following categories exist:$`, test.theFollowingCategoriesExist)
	ctx.Given(`^the following movements exist:$`, test.theFollowingMovementsExist)
	ctx.Given(`^(\d+) movements of "([^"]*)" in category "([^"]*)" exist from "([^"]*)"$`, test.movementsExistFrom)
	ctx.Given(`^the collection summary endpoints are unavailable$`, test.theCollectionSummaryEndpointsAreUnavailable)
	ctx.Given(`^the collection fails the next (\d+) requests with status (\d+)$`, test.theCollectionFailsTheNextRequests)

	// Auth steps
	ctx.Given(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, test.iAmLoggedInAs)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.Step(`^the view "([^"]*)" has settled$`, test.theViewHasSettled)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Collection assertion steps
	ctx.Then(`^the collection should have received (\d+) requests to "([^"]*)"$`, test.theCollectionShouldHaveReceivedRequests)
	ctx.Then(`^the collection should have received requests to "([^"]*)"$`, test.theCollectionShouldHaveReceivedSomeRequests)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.categoryIDs = make(map[string]uint)

	t.suite.collection.Reset()
	if err := t.suite.db.ClearDB(); err != nil {
		return err
	}
	return mock.ClearRedis(t.suite.store.Client())
}
