// Package collection implements the remote movement and category collections over HTTP.
package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/frontend/internal/application/adapter"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
)

const maxResponseBytes = 8 << 20

// maxCategoryPages bounds how many "next" links ListCategories follows.
const maxCategoryPages = 50

// Config holds collection service settings.
type Config struct {
	BaseURL            string
	Timeout            time.Duration
	MovementsPath      string
	SummaryPath        string
	MonthlySummaryPath string
	CategoriesPath     string
	TokenPath          string
}

// DefaultConfig returns the default endpoint layout for baseURL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:            baseURL,
		Timeout:            10 * time.Second,
		MovementsPath:      "movements/",
		SummaryPath:        "movements/summary/",
		MonthlySummaryPath: "movements/monthly-summary/",
		CategoriesPath:     "categories/",
		TokenPath:          "api-token-auth/",
	}
}

// Client talks to the collection service on behalf of sessions.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	config     Config
}

var (
	_ adapter.MovementCollection  = (*Client)(nil)
	_ adapter.RemoteAuthenticator = (*Client)(nil)
)

// NewClient creates a new collection client.
func NewClient(config Config) (*Client, error) {
	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid collection base URL: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		baseURL:    base,
		config:     config,
	}, nil
}

// ListMovements fetches one page of movements.
func (c *Client) ListMovements(ctx context.Context, session *entity.Session, query entity.QueryDescriptor) (*adapter.MovementPage, error) {
	body, status, err := c.get(ctx, session, c.endpoint(c.config.MovementsPath, query.Values()))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		if page, _ := query.Get(entity.ParamPage); page != "" && page != "1" {
			return nil, domainerror.ErrPageOutOfRange
		}
		return nil, fmt.Errorf("%w: movements endpoint returned 404", domainerror.ErrCollectionRejected)
	}
	if err := statusError(status); err != nil {
		return nil, err
	}

	env, err := decodeList[movementPayload](body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidResponse, err)
	}

	rows := make([]*entity.Movement, 0, len(env.Results))
	for _, p := range env.Results {
		m, err := p.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidResponse, err)
		}
		rows = append(rows, m)
	}

	return &adapter.MovementPage{
		Rows:      rows,
		Count:     env.Count,
		Paginated: env.Paginated,
	}, nil
}

// Summary fetches KPI totals for the filter parameters.
func (c *Client) Summary(ctx context.Context, session *entity.Session, filters entity.QueryDescriptor) (*entity.KPI, error) {
	var payload summaryPayload
	if err := c.getOptional(ctx, session, c.config.SummaryPath, filters, &payload); err != nil {
		return nil, err
	}
	kpi := entity.NewKPI(payload.TotalIncome, payload.TotalExpense)
	if !payload.Balance.IsZero() && !payload.Balance.Equal(kpi.Balance) {
		slog.Warn("Summary balance disagrees with totals, using derived balance",
			"reported", payload.Balance.String(),
			"derived", kpi.Balance.String(),
		)
	}
	return &kpi, nil
}

// MonthlySummary fetches the per-month series for the date parameters.
func (c *Client) MonthlySummary(ctx context.Context, session *entity.Session, filters entity.QueryDescriptor) ([]entity.MonthlyBucket, error) {
	var payload monthlyPayload
	if err := c.getOptional(ctx, session, c.config.MonthlySummaryPath, filters, &payload); err != nil {
		return nil, err
	}
	series := make([]entity.MonthlyBucket, 0, len(payload.Series))
	for _, s := range payload.Series {
		series = append(series, entity.MonthlyBucket{
			Month:   s.Month,
			Income:  s.Income,
			Expense: s.Expense,
		})
	}
	return series, nil
}

// ListCategories fetches every category, following pagination links when present.
func (c *Client) ListCategories(ctx context.Context, session *entity.Session) ([]*entity.Category, error) {
	params := url.Values{}
	params.Set(entity.ParamOrdering, "name")
	params.Set(entity.ParamPageSize, strconv.Itoa(entity.MaxRemotePageSize))
	next := c.endpoint(c.config.CategoriesPath, params)

	var categories []*entity.Category
	for i := 0; next != "" && i < maxCategoryPages; i++ {
		body, status, err := c.get(ctx, session, next)
		if err != nil {
			return nil, err
		}
		if err := statusError(status); err != nil {
			return nil, err
		}

		env, err := decodeList[categoryPayload](body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidResponse, err)
		}
		for _, p := range env.Results {
			categories = append(categories, p.toEntity())
		}
		next = env.Next
	}
	return categories, nil
}

// ObtainToken exchanges credentials for a remote token.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(c.config.TokenPath, nil), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	body, status, err := c.do(req)
	if err != nil {
		return "", err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		return "", domainerror.ErrInvalidCredentials
	}
	if err := statusError(status); err != nil {
		return "", err
	}

	var token tokenPayload
	if err := json.Unmarshal(body, &token); err != nil || token.Token == "" {
		return "", fmt.Errorf("%w: missing token", domainerror.ErrInvalidResponse)
	}
	return token.Token, nil
}

// getOptional fetches an endpoint the service may not serve, mapping 404 to ErrEndpointNotFound.
func (c *Client) getOptional(ctx context.Context, session *entity.Session, path string, filters entity.QueryDescriptor, out any) error {
	body, status, err := c.get(ctx, session, c.endpoint(path, filters.Values()))
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return domainerror.ErrEndpointNotFound
	}
	if err := statusError(status); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", domainerror.ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, session *entity.Session, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	if session != nil && session.RemoteToken != "" {
		req.Header.Set("Authorization", "Token "+session.RemoteToken)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, 0, ctxErr
		}
		return nil, 0, fmt.Errorf("%w: %v", domainerror.ErrCollectionUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domainerror.ErrCollectionUnavailable, err)
	}

	slog.Debug("Collection request",
		"request_id", requestID,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return body, resp.StatusCode, nil
}

func (c *Client) endpoint(path string, params url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

func statusError(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domainerror.ErrRemoteUnauthorized
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", domainerror.ErrCollectionUnavailable, status)
	default:
		return fmt.Errorf("%w: status %d", domainerror.ErrCollectionRejected, status)
	}
}
