package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(DefaultConfig(server.URL + "/api"))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

var testSession = &entity.Session{Username: "ana", RemoteToken: "abc123"}

func TestClient_ListMovements(t *testing.T) {
	t.Run("paginated object", func(t *testing.T) {
		var gotAuth, gotQuery, gotPath string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotQuery = r.URL.RawQuery
			gotPath = r.URL.Path
			fmt.Fprint(w, `{"count": 25, "next": null, "results": [
				{"id": 7, "category": 3, "description": "Lunch", "date": "2024-02-12", "amount": "12.50"},
				{"id": "8", "category": null, "description": "", "date": "2024-02-13", "amount": 4}
			]}`)
		})

		query := entity.NewQueryDescriptor(map[string]string{"type": "expense", "page": "2", "page_size": "10"})
		page, err := client.ListMovements(context.Background(), testSession, query)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotAuth != "Token abc123" {
			t.Errorf("Authorization = %q", gotAuth)
		}
		if gotPath != "/api/movements/" {
			t.Errorf("path = %q", gotPath)
		}
		if gotQuery != "page=2&page_size=10&type=expense" {
			t.Errorf("query = %q", gotQuery)
		}
		if !page.Paginated || page.Count != 25 || len(page.Rows) != 2 {
			t.Fatalf("unexpected page %+v", page)
		}
		first := page.Rows[0]
		if first.ID != "7" || *first.CategoryID != "3" || !first.Amount.Equal(decimal.RequireFromString("12.5")) {
			t.Errorf("unexpected row %+v", first)
		}
		if page.Rows[1].CategoryID != nil {
			t.Error("null category should stay nil")
		}
	})

	t.Run("bare array", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"id": 1, "category": 1, "date": "2024-01-01", "amount": "10"}]`)
		})

		page, err := client.ListMovements(context.Background(), testSession, entity.NewQueryDescriptor(nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Paginated || page.Count != 1 || len(page.Rows) != 1 {
			t.Errorf("unexpected page %+v", page)
		}
	})

	errorCases := []struct {
		name    string
		status  int
		page    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, "1", domainerror.ErrRemoteUnauthorized},
		{"forbidden", http.StatusForbidden, "1", domainerror.ErrRemoteUnauthorized},
		{"invalid page", http.StatusNotFound, "4", domainerror.ErrPageOutOfRange},
		{"server error", http.StatusInternalServerError, "1", domainerror.ErrCollectionRejected},
		{"service unavailable", http.StatusServiceUnavailable, "1", domainerror.ErrCollectionUnavailable},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"detail": "nope"}`)
			})

			query := entity.NewQueryDescriptor(map[string]string{"page": tt.page})
			_, err := client.ListMovements(context.Background(), testSession, query)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"results": [{"id": 1, "date": "yesterday", "amount": "1"}]}`)
		})

		_, err := client.ListMovements(context.Background(), testSession, entity.NewQueryDescriptor(nil))
		if !errors.Is(err, domainerror.ErrInvalidResponse) {
			t.Errorf("expected ErrInvalidResponse, got %v", err)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		client, _ := NewClient(DefaultConfig(server.URL))

		_, err := client.ListMovements(context.Background(), testSession, entity.NewQueryDescriptor(nil))
		if !errors.Is(err, domainerror.ErrCollectionUnavailable) {
			t.Errorf("expected ErrCollectionUnavailable, got %v", err)
		}
	})
}

func TestClient_Summaries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/movements/summary/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("date_from") != "2024-01-01" {
			t.Errorf("summary did not receive the filters: %q", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"total_income": "3000.00", "total_expense": 200, "balance": "2800.00"}`)
	})
	client := newTestClient(t, mux.ServeHTTP)

	filters := entity.NewQueryDescriptor(map[string]string{"date_from": "2024-01-01"})

	kpi, err := client.Summary(context.Background(), testSession, filters)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !kpi.Balance.Equal(decimal.NewFromInt(2800)) {
		t.Errorf("balance = %s", kpi.Balance)
	}

	_, err = client.MonthlySummary(context.Background(), testSession, filters)
	if !errors.Is(err, domainerror.ErrEndpointNotFound) {
		t.Errorf("expected ErrEndpointNotFound for the missing monthly endpoint, got %v", err)
	}
}

func TestClient_ListCategoriesFollowsNext(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"count": 3, "next": null, "results": [{"id": 3, "name": "Rent", "type": "expense"}]}`)
			return
		}
		if r.URL.Query().Get("ordering") != "name" {
			t.Errorf("expected ordering=name, got %q", r.URL.RawQuery)
		}
		next := server.URL + "/api/categories/?page=2"
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count": 3,
			"next":  next,
			"results": []map[string]any{
				{"id": 1, "name": "Food", "type": "expense"},
				{"id": 2, "name": "Salary", "type": "income"},
			},
		})
	}))
	defer server.Close()

	client, _ := NewClient(DefaultConfig(server.URL + "/api/"))
	categories, err := client.ListCategories(context.Background(), testSession)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 3 || categories[2].Name != "Rent" || categories[1].Type != entity.CategoryTypeIncome {
		t.Errorf("unexpected categories %+v", categories)
	}
}

func TestClient_ObtainToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if r.Method != http.MethodPost || r.URL.Path != "/api/api-token-auth/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"non_field_errors": ["Unable to log in"]}`)
			return
		}
		fmt.Fprint(w, `{"token": "tok-1"}`)
	})

	token, err := client.ObtainToken(context.Background(), "ana", "secret")
	if err != nil || token != "tok-1" {
		t.Errorf("ObtainToken = %q, %v", token, err)
	}

	if _, err := client.ObtainToken(context.Background(), "ana", "wrong"); !errors.Is(err, domainerror.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
