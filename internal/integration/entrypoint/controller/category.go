package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/frontend/internal/application/usecase/category"
	"github.com/finance-tracker/frontend/internal/application/usecase/movement"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
	"github.com/finance-tracker/frontend/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/frontend/internal/integration/entrypoint/middleware"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase *category.ListCategoriesUseCase
	getUseCase  *category.GetCategoryUseCase
	registry    *movement.Registry
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	getUseCase *category.GetCategoryUseCase,
	registry *movement.Registry,
) *CategoryController {
	return &CategoryController{
		listUseCase: listUseCase,
		getUseCase:  getUseCase,
		registry:    registry,
	}
}

// List handles GET /categories requests.
// With ?fresh=true the cache is bypassed and open views pick up the new catalog.
func (c *CategoryController) List(ctx *gin.Context) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	fresh, _ := strconv.ParseBool(ctx.Query("fresh"))

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		Session: session,
		Fresh:   fresh,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	if fresh && c.registry != nil {
		c.registry.UpdateCatalog(session.ID, output.Catalog)
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResponse{
		Categories: dto.ToCategoryResponses(output.Catalog.Categories()),
		Cached:     output.Cached,
	})
}

// Get handles GET /categories/:id requests.
func (c *CategoryController) Get(ctx *gin.Context) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	cat, err := c.getUseCase.Execute(ctx.Request.Context(), category.GetCategoryInput{
		Session:    session,
		CategoryID: ctx.Param("id"),
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// handleCategoryError handles category errors and returns appropriate HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Category not found",
			Code:    string(catErr.Code),
			Details: catErr.CategoryID,
		})
		return
	}

	handleFetchError(ctx, err)
}
