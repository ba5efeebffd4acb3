package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/frontend/internal/application/usecase/movement"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
	"github.com/finance-tracker/frontend/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/frontend/internal/integration/entrypoint/middleware"
)

// ViewController exposes the per-session movements and dashboard views.
type ViewController struct {
	registry        *movement.Registry
	longPollTimeout time.Duration
	now             func() time.Time
}

// NewViewController creates a new view controller instance.
func NewViewController(registry *movement.Registry, longPollTimeout time.Duration) *ViewController {
	return &ViewController{
		registry:        registry,
		longPollTimeout: longPollTimeout,
		now:             time.Now,
	}
}

// Get handles GET /views/:view requests.
// With ?after=<version> the request blocks until a newer snapshot exists or
// the long-poll timeout elapses.
func (c *ViewController) Get(ctx *gin.Context) {
	vm, kind, ok := c.resolveView(ctx)
	if !ok {
		return
	}

	after := ctx.Query("after")
	if after == "" {
		ctx.JSON(http.StatusOK, dto.ToViewResponse(string(kind), vm.Snapshot()))
		return
	}

	version, err := strconv.ParseUint(after, 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "after must be a snapshot version",
			Code:  string(domainerror.ErrCodeInvalidFilterValue),
		})
		return
	}

	waitCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.longPollTimeout)
	defer cancel()

	ctx.JSON(http.StatusOK, dto.ToViewResponse(string(kind), vm.Await(waitCtx, version)))
}

// SetFilter handles PUT /views/:view/filters/:field requests.
func (c *ViewController) SetFilter(ctx *gin.Context) {
	vm, kind, ok := c.resolveView(ctx)
	if !ok {
		return
	}

	var req dto.FilterValueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, domainerror.ErrCodeInvalidFilterValue)
		return
	}

	if err := vm.ApplyFilter(entity.FilterField(ctx.Param("field")), req.Value); err != nil {
		c.handleViewError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToViewResponse(string(kind), vm.Snapshot()))
}

// ClearFilters handles DELETE /views/:view/filters requests.
func (c *ViewController) ClearFilters(ctx *gin.Context) {
	vm, kind, ok := c.resolveView(ctx)
	if !ok {
		return
	}

	vm.ClearFilters()
	ctx.JSON(http.StatusOK, dto.ToViewResponse(string(kind), vm.Snapshot()))
}

// SetRange handles PUT /views/:view/range/:preset requests.
func (c *ViewController) SetRange(ctx *gin.Context) {
	vm, kind, ok := c.resolveView(ctx)
	if !ok {
		return
	}

	if err := vm.ApplyRangePreset(ctx.Param("preset"), c.now()); err != nil {
		c.handleViewError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToViewResponse(string(kind), vm.Snapshot()))
}

// SetSort handles PUT /views/:view/sort requests.
func (c *ViewController) SetSort(ctx *gin.Context) {
	vm, kind, ok := c.resolveView(ctx)
	if !ok {
		return
	}

	var req dto.SortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, domainerror.ErrCodeInvalidOrdering)
		return
	}

	if err := vm.ApplyOrdering(req.Ordering); err != nil {
		c.handleViewError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToViewResponse(string(kind), vm.Snapshot()))
}

// SetPage handles PUT /views/:view/page requests.
// Out-of-range pages are clamped; the response shows the page selected.
func (c *ViewController) SetPage(ctx *gin.Context) {
	vm, kind, ok := c.resolveView(ctx)
	if !ok {
		return
	}

	var req dto.PageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, domainerror.ErrCodeInvalidPage)
		return
	}

	vm.SetPage(req.Page)
	ctx.JSON(http.StatusOK, dto.ToViewResponse(string(kind), vm.Snapshot()))
}

// SetPageSize handles PUT /views/:view/page-size requests.
func (c *ViewController) SetPageSize(ctx *gin.Context) {
	vm, kind, ok := c.resolveView(ctx)
	if !ok {
		return
	}

	var req dto.PageSizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, domainerror.ErrCodeInvalidPageSize)
		return
	}

	if err := vm.SetPageSize(req.PageSize); err != nil {
		c.handleViewError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToViewResponse(string(kind), vm.Snapshot()))
}

// Refresh handles POST /views/:view/refresh requests.
func (c *ViewController) Refresh(ctx *gin.Context) {
	vm, kind, ok := c.resolveView(ctx)
	if !ok {
		return
	}

	vm.Refresh()
	ctx.JSON(http.StatusAccepted, dto.ToViewResponse(string(kind), vm.Snapshot()))
}

// resolveView loads the caller's view named by the :view path parameter.
// It writes the error response itself when it returns false.
func (c *ViewController) resolveView(ctx *gin.Context) (*movement.ViewModel, movement.ViewKind, bool) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return nil, "", false
	}

	kind, err := movement.ParseViewKind(ctx.Param("view"))
	if err != nil {
		c.handleViewError(ctx, err)
		return nil, "", false
	}

	return c.registry.Get(ctx.Request.Context(), session, kind), kind, true
}

func (c *ViewController) badRequest(ctx *gin.Context, code domainerror.QueryErrorCode) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request body",
		Code:  string(code),
	})
}

// handleViewError handles view errors and returns appropriate HTTP responses.
func (c *ViewController) handleViewError(ctx *gin.Context, err error) {
	var queryErr *domainerror.QueryError
	if errors.As(err, &queryErr) {
		status := http.StatusBadRequest
		if queryErr.Code == domainerror.ErrCodeUnknownView {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: queryErr.Message,
			Code:  string(queryErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// handleFetchError maps a failed remote call to an HTTP response.
func handleFetchError(ctx *gin.Context, err error) {
	fetchErr := domainerror.AsFetchError(err)
	ctx.JSON(getStatusCodeForFetchError(fetchErr.Code), dto.ErrorResponse{
		Error: fetchErr.Message,
		Code:  string(fetchErr.Code),
	})
}

// getStatusCodeForFetchError maps fetch error codes to HTTP status codes.
func getStatusCodeForFetchError(code domainerror.FetchErrorCode) int {
	switch code {
	case domainerror.ErrCodeRemoteUnauthorized:
		return http.StatusUnauthorized
	case domainerror.ErrCodePageOutOfRange, domainerror.ErrCodeEndpointNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCollectionUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeCollectionRejected, domainerror.ErrCodeInvalidResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
