package mock

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryModel is a category row of the reference collection.
type CategoryModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	Type string `gorm:"not null"`
}

func (CategoryModel) TableName() string { return "categories" }

// MovementModel is a movement row of the reference collection.
type MovementModel struct {
	ID          uint            `gorm:"primaryKey"`
	CategoryID  *uint           `gorm:"index"`
	Date        string          `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:text;not null"`
	Description string
}

func (MovementModel) TableName() string { return "movements" }

// Models lists the tables the reference collection migrates.
var Models = []any{&CategoryModel{}, &MovementModel{}}

const (
	collectionUser     = "ana"
	collectionPassword = "secret"
	collectionToken    = "reference-token"
	defaultPageSize    = 10
	maxPageSize        = 100
)

// Collection is an in-process stand-in for the remote movement collection.
// It speaks the same wire format: token login, paginated list envelopes
// and the optional summary endpoints.
type Collection struct {
	Server *httptest.Server
	db     *Db

	mu             sync.Mutex
	failRemaining  int
	failStatus     int
	summaryEnabled bool
	monthlyEnabled bool
	requests       map[string]int
}

// NewCollection starts the reference server over db.
func NewCollection(db *Db) *Collection {
	gin.SetMode(gin.TestMode)
	c := &Collection{
		db:             db,
		summaryEnabled: true,
		monthlyEnabled: true,
		requests:       make(map[string]int),
	}

	engine := gin.New()
	api := engine.Group("/api")
	api.Use(c.count, c.injectFailure)
	api.POST("/api-token-auth/", c.obtainToken)

	authed := api.Group("", c.requireToken)
	authed.GET("/movements/", c.listMovements)
	authed.GET("/movements/summary/", c.summary)
	authed.GET("/movements/monthly-summary/", c.monthlySummary)
	authed.GET("/categories/", c.listCategories)

	c.Server = httptest.NewServer(engine)
	return c
}

// BaseURL returns the api root the client should be pointed at.
func (c *Collection) BaseURL() string {
	return c.Server.URL + "/api/"
}

// Close stops the server.
func (c *Collection) Close() {
	c.Server.Close()
}

// Reset clears injected failures, request counters and endpoint toggles.
func (c *Collection) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failRemaining = 0
	c.failStatus = 0
	c.summaryEnabled = true
	c.monthlyEnabled = true
	c.requests = make(map[string]int)
}

// FailNext makes the next n requests answer with status.
func (c *Collection) FailNext(n, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failRemaining = n
	c.failStatus = status
}

// SetSummaryEndpoints toggles the summary and monthly-summary endpoints.
// A disabled endpoint answers 404.
func (c *Collection) SetSummaryEndpoints(summary, monthly bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaryEnabled = summary
	c.monthlyEnabled = monthly
}

// Requests returns how many requests hit path, e.g. "/api/movements/".
func (c *Collection) Requests(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requests[path]
}

func (c *Collection) count(ctx *gin.Context) {
	c.mu.Lock()
	c.requests[ctx.Request.URL.Path]++
	c.mu.Unlock()
	ctx.Next()
}

func (c *Collection) injectFailure(ctx *gin.Context) {
	c.mu.Lock()
	status := 0
	if c.failRemaining > 0 {
		c.failRemaining--
		status = c.failStatus
	}
	c.mu.Unlock()

	if status != 0 {
		ctx.AbortWithStatusJSON(status, gin.H{"detail": "Injected failure."})
		return
	}
	ctx.Next()
}

func (c *Collection) requireToken(ctx *gin.Context) {
	if ctx.GetHeader("Authorization") != "Token "+collectionToken {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
		return
	}
	ctx.Next()
}

func (c *Collection) obtainToken(ctx *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Username != collectionUser || req.Password != collectionPassword {
		ctx.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{"Unable to log in with provided credentials."}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"token": collectionToken})
}

func (c *Collection) filteredMovements(ctx *gin.Context) *gorm.DB {
	q := c.db.DbConn.Model(&MovementModel{})

	if v := ctx.Query("category"); v != "" {
		q = q.Where("movements.category_id = ?", v)
	}
	if v := ctx.Query("type"); v != "" {
		q = q.Joins("JOIN categories ON categories.id = movements.category_id").
			Where("categories.type = ?", v)
	}
	if v := ctx.Query("date_from"); v != "" {
		q = q.Where("movements.date >= ?", v)
	}
	if v := ctx.Query("date_to"); v != "" {
		q = q.Where("movements.date <= ?", v)
	}
	if v := ctx.Query("search"); v != "" {
		q = q.Where("LOWER(movements.description) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	return q
}

// orderClause renders a comma-separated ordering such as "-date" or "date,id".
// Unknown fields are ignored and the id always breaks ties.
func orderClause(ordering string) string {
	var terms []string
	byID := false
	for _, field := range strings.Split(ordering, ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		column := strings.TrimPrefix(field, "-")
		switch column {
		case "id":
			column = "movements.id"
			byID = true
		case "date":
			column = "movements.date"
		case "amount":
			column = "CAST(movements.amount AS REAL)"
		case "description":
			column = "movements.description"
		default:
			continue
		}
		if desc {
			terms = append(terms, column+" DESC")
		} else {
			terms = append(terms, column+" ASC")
		}
	}
	if !byID {
		if len(terms) > 0 && strings.HasSuffix(terms[0], " DESC") {
			terms = append(terms, "movements.id DESC")
		} else {
			terms = append(terms, "movements.id ASC")
		}
	}
	return strings.Join(terms, ", ")
}

func pageParams(ctx *gin.Context) (page, size int, ok bool) {
	page, size = 1, defaultPageSize
	if v := ctx.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		page = n
	}
	if v := ctx.Query("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		size = min(n, maxPageSize)
	}
	return page, size, true
}

func (c *Collection) pageLink(ctx *gin.Context, page int) *string {
	values := ctx.Request.URL.Query()
	values.Set("page", strconv.Itoa(page))
	link := fmt.Sprintf("%s%s?%s", c.Server.URL, ctx.Request.URL.Path, values.Encode())
	return &link
}

// paginate renders the list envelope, answering 404 past the last page
// the way the real collection does.
func (c *Collection) paginate(ctx *gin.Context, q *gorm.DB, order string, results func(rows *gorm.DB) (any, error)) {
	page, size, ok := pageParams(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"detail": "Invalid page."})
		return
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if page > 1 && int64((page-1)*size) >= total {
		ctx.JSON(http.StatusNotFound, gin.H{"detail": "Invalid page."})
		return
	}

	body, err := results(q.Session(&gorm.Session{}).Order(order).Offset((page - 1) * size).Limit(size))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	var next, previous *string
	if int64(page*size) < total {
		next = c.pageLink(ctx, page+1)
	}
	if page > 1 {
		previous = c.pageLink(ctx, page-1)
	}
	ctx.JSON(http.StatusOK, gin.H{
		"count":    total,
		"next":     next,
		"previous": previous,
		"results":  body,
	})
}

func (c *Collection) listMovements(ctx *gin.Context) {
	c.paginate(ctx, c.filteredMovements(ctx), orderClause(ctx.DefaultQuery("ordering", "-date")), func(rows *gorm.DB) (any, error) {
		var models []MovementModel
		if err := rows.Select("movements.*").Find(&models).Error; err != nil {
			return nil, err
		}
		out := make([]gin.H, len(models))
		for i, m := range models {
			out[i] = gin.H{
				"id":          m.ID,
				"category":    m.CategoryID,
				"description": m.Description,
				"date":        m.Date,
				"amount":      m.Amount.StringFixed(2),
			}
		}
		return out, nil
	})
}

func (c *Collection) listCategories(ctx *gin.Context) {
	c.paginate(ctx, c.db.DbConn.Model(&CategoryModel{}), "name ASC, id ASC", func(rows *gorm.DB) (any, error) {
		var models []CategoryModel
		if err := rows.Find(&models).Error; err != nil {
			return nil, err
		}
		out := make([]gin.H, len(models))
		for i, m := range models {
			out[i] = gin.H{"id": m.ID, "name": m.Name, "type": m.Type}
		}
		return out, nil
	})
}

type typedMovement struct {
	Date   string
	Amount decimal.Decimal
	Type   string
}

func (c *Collection) typedMovements(ctx *gin.Context) ([]typedMovement, error) {
	var rows []typedMovement
	q := c.filteredMovements(ctx)
	if ctx.Query("type") == "" {
		q = q.Joins("JOIN categories ON categories.id = movements.category_id")
	}
	err := q.Select("movements.date AS date, movements.amount AS amount, categories.type AS type").Scan(&rows).Error
	return rows, err
}

func (c *Collection) summary(ctx *gin.Context) {
	c.mu.Lock()
	enabled := c.summaryEnabled
	c.mu.Unlock()
	if !enabled {
		ctx.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	rows, err := c.typedMovements(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	income, expense := decimal.Zero, decimal.Zero
	for _, r := range rows {
		if r.Type == "income" {
			income = income.Add(r.Amount)
		} else {
			expense = expense.Add(r.Amount)
		}
	}
	ctx.JSON(http.StatusOK, gin.H{
		"total_income":  income.StringFixed(2),
		"total_expense": expense.StringFixed(2),
		"balance":       income.Sub(expense).StringFixed(2),
	})
}

func (c *Collection) monthlySummary(ctx *gin.Context) {
	c.mu.Lock()
	enabled := c.monthlyEnabled
	c.mu.Unlock()
	if !enabled {
		ctx.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	rows, err := c.typedMovements(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	type bucket struct{ income, expense decimal.Decimal }
	buckets := make(map[string]*bucket)
	var months []string
	for _, r := range rows {
		month := r.Date[:7]
		b, ok := buckets[month]
		if !ok {
			b = &bucket{income: decimal.Zero, expense: decimal.Zero}
			buckets[month] = b
			months = append(months, month)
		}
		if r.Type == "income" {
			b.income = b.income.Add(r.Amount)
		} else {
			b.expense = b.expense.Add(r.Amount)
		}
	}

	series := make([]gin.H, 0, len(months))
	slices.Sort(months)
	for _, month := range months {
		b := buckets[month]
		series = append(series, gin.H{
			"month":   month,
			"income":  b.income.StringFixed(2),
			"expense": b.expense.StringFixed(2),
		})
	}
	ctx.JSON(http.StatusOK, gin.H{"series": series})
}
