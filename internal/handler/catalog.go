package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/flicky/go-storefront/internal/dto"
	"github.com/flicky/go-storefront/internal/model"
	"github.com/flicky/go-storefront/internal/service"
)

type CatalogHandler struct {
	catalog  *service.CatalogService
	pageSize int
}

func NewCatalogHandler(catalog *service.CatalogService, pageSize int) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, pageSize: pageSize}
}

type catalogPageResponse struct {
	Success       bool            `json:"success"`
	Products      []model.Product `json:"products"`
	TotalPages    int             `json:"totalPages"`
	TotalElements int             `json:"totalElements"`
	CurrentPage   int             `json:"currentPage"`
	Message       string          `json:"message,omitempty"`
}

// Browse is the product-listing page: it fetches from the backend and runs
// the local filter/sort pipeline over the fetched slice. With a search
// term the backend search result is paginated locally; otherwise server
// pagination metadata passes through.
func (h *CatalogHandler) Browse(c *gin.Context) {
	var req dto.CatalogQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	minPrice := decimal.NewFromFloat(req.MinPrice)
	maxPrice := decimal.NewFromFloat(req.MaxPrice)
	category := req.Category
	if category == "" {
		category = service.AllCategories
	}

	query := service.NewQuery().
		WithCategory(category).
		WithPriceRange(minPrice, maxPrice).
		WithSort(req.Sort).
		WithPage(req.Page)
	query.PageSize = h.pageSize

	if keyword := strings.TrimSpace(req.Search); keyword != "" {
		result := h.catalog.Search(ctx, keyword, service.SearchFilters{
			MinPrice: &minPrice,
			MaxPrice: &maxPrice,
			Category: category,
		})
		if !result.Success {
			c.JSON(http.StatusOK, catalogPageResponse{Products: []model.Product{}, Message: result.Message})
			return
		}
		page := service.Apply(result.Data, query)
		c.JSON(http.StatusOK, catalogPageResponse{
			Success:       true,
			Products:      page.Items,
			TotalPages:    page.TotalPages,
			TotalElements: page.TotalItems,
			CurrentPage:   page.CurrentPage,
		})
		return
	}

	var result service.Result
	if category == service.AllCategories {
		result = h.catalog.List(ctx, req.Page, h.pageSize)
	} else {
		result = h.catalog.ListByCategory(ctx, category, req.Page, h.pageSize)
	}
	if !result.Success {
		c.JSON(http.StatusOK, catalogPageResponse{Products: []model.Product{}, Message: result.Message})
		return
	}

	// The backend already paginated; filter and sort the fetched page only.
	local := query.WithPage(1)
	local.PageSize = len(result.Data) + 1
	page := service.Apply(result.Data, local)

	resp := catalogPageResponse{
		Success:       true,
		Products:      page.Items,
		TotalPages:    1,
		TotalElements: len(page.Items),
		CurrentPage:   req.Page,
	}
	if result.Pagination != nil {
		resp.TotalPages = result.Pagination.TotalPages
		resp.TotalElements = result.Pagination.TotalElements
	}
	c.JSON(http.StatusOK, resp)
}

// Meta serves the filter sidebar constants.
func (h *CatalogHandler) Meta(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":  service.Categories,
		"priceRanges": service.PriceRanges,
		"sortOptions": service.SortOptions,
		"pageSize":    h.pageSize,
	})
}

func (h *CatalogHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	result := h.catalog.GetByID(c.Request.Context(), id)
	if !result.Success {
		c.JSON(http.StatusNotFound, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler) Recommendations(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}
	c.JSON(http.StatusOK, h.catalog.Recommendations(c.Request.Context(), id))
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.catalog.Create(c.Request.Context(), req)
	if !result.Success {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.catalog.Update(c.Request.Context(), id, req)
	if !result.Success {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	result := h.catalog.Delete(c.Request.Context(), id)
	if !result.Success {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
