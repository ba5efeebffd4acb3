//go:build integration

package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/frontend/internal/domain/valueobject"
	"github.com/finance-tracker/frontend/test/integration/mock"
)

const settleTimeout = 5 * time.Second

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned %d", resp.StatusCode)
	}
	return nil
}

// theFollowingCategoriesExist seeds categories from a | name | type | table.
func (t *testContext) theFollowingCategoriesExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		model := &mock.CategoryModel{Name: row["name"], Type: row["type"]}
		if err := t.suite.db.DbConn.Create(model).Error; err != nil {
			return err
		}
		t.categoryIDs[model.Name] = model.ID
	}
	return nil
}

// theFollowingMovementsExist seeds movements from a
// | date | amount | description | category | table. An empty category
// leaves the movement uncategorized.
func (t *testContext) theFollowingMovementsExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", row["amount"], err)
		}
		model := &mock.MovementModel{
			Date:        row["date"],
			Amount:      amount,
			Description: row["description"],
		}
		if name := row["category"]; name != "" {
			id, ok := t.categoryIDs[name]
			if !ok {
				return fmt.Errorf("unknown category %q", name)
			}
			model.CategoryID = &id
		}
		if err := t.suite.db.DbConn.Create(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// movementsExistFrom seeds n movements of one amount on consecutive days.
func (t *testContext) movementsExistFrom(n int, amount, categoryName, from string) error {
	id, ok := t.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("unknown category %q", categoryName)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	start, err := valueobject.ParseDate(from)
	if err != nil {
		return err
	}

	models := make([]*mock.MovementModel, n)
	for i := range models {
		models[i] = &mock.MovementModel{
			CategoryID:  &id,
			Date:        valueobject.FormatDate(start.AddDate(0, 0, i)),
			Amount:      value,
			Description: fmt.Sprintf("%s #%d", categoryName, i+1),
		}
	}
	return t.suite.db.DbConn.Create(&models).Error
}

func (t *testContext) theCollectionSummaryEndpointsAreUnavailable() error {
	t.suite.collection.SetSummaryEndpoints(false, false)
	return nil
}

func (t *testContext) theCollectionFailsTheNextRequests(n, status int) error {
	t.suite.collection.FailNext(n, status)
	return nil
}

func (t *testContext) iAmLoggedInAs(username, password string) error {
	payload, _ := json.Marshal(map[string]string{"username": username, "password": password})
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %v", t.response.status, t.response.body)
	}
	token, ok := getFieldValue(t.response.body, "token").(string)
	if !ok || token == "" {
		return fmt.Errorf("login response has no token: %v", t.response.body)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replaceCategoryPlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replaceCategoryPlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replaceCategoryPlaceholders(path), payload)
}

// replaceCategoryPlaceholders swaps {{category:Name}} for the seeded category's id.
func (t *testContext) replaceCategoryPlaceholders(content string) string {
	for name, id := range t.categoryIDs {
		content = strings.ReplaceAll(content, "{{category:"+name+"}}", strconv.FormatUint(uint64(id), 10))
	}
	return content
}

// theViewHasSettled polls the view until no fetch is in flight and keeps
// the settled snapshot as the current response.
func (t *testContext) theViewHasSettled(view string) error {
	deadline := time.Now().Add(settleTimeout)
	for {
		if err := t.executeRequest(http.MethodGet, "/api/v1/views/"+view, nil); err != nil {
			return err
		}
		if t.response.status != http.StatusOK {
			return fmt.Errorf("view %s returned %d: %v", view, t.response.status, t.response.body)
		}
		if loading, _ := getFieldValue(t.response.body, "loading").(bool); !loading {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("view %s did not settle within %s", view, settleTimeout)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if value := getFieldValue(body, field); value != nil {
		return fmt.Errorf("field '%s' expected null, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, n int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, getFieldValue(body, field))
	}
	if len(items) != n {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, n, len(items))
	}
	return nil
}

func (t *testContext) theCollectionShouldHaveReceivedRequests(n int, path string) error {
	if got := t.suite.collection.Requests(path); got != n {
		return fmt.Errorf("expected %d requests to %s, got %d", n, path, got)
	}
	return nil
}

func (t *testContext) theCollectionShouldHaveReceivedSomeRequests(path string) error {
	if t.suite.collection.Requests(path) == 0 {
		return fmt.Errorf("expected requests to %s, got none", path)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}

// tableRows maps every data row of table to its header names.
func tableRows(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 1 {
		return nil, errors.New("table has no header row")
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, r := range table.Rows[1:] {
		if len(r.Cells) != len(header) {
			return nil, fmt.Errorf("row has %d cells, header has %d", len(r.Cells), len(header))
		}
		row := make(map[string]string, len(header))
		for i, cell := range r.Cells {
			row[header[i].Value] = strings.TrimSpace(cell.Value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
