package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/joeylife94/boram-safety/internal/metrics"
	"github.com/joeylife94/boram-safety/internal/models"
	"github.com/joeylife94/boram-safety/internal/repository"
)

// Date formats accepted for dateFrom/dateTo filter values.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

type ProductsHandler struct {
	repo            *repository.CatalogRepository
	defaultPageSize int
	maxPageSize     int
}

func NewProductsHandler(repo *repository.CatalogRepository, defaultPageSize, maxPageSize int) *ProductsHandler {
	return &ProductsHandler{
		repo:            repo,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// GetProducts lists products for public browsing
// @Summary List products
// @Tags products
// @Param categoryId query int false "Category ID"
// @Param featured query bool false "Featured products only"
// @Router /products [get]
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	skip, limit := parsePagination(c, h.defaultPageSize, h.maxPageSize)

	var categoryID *int64
	if v := c.Query("categoryId"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid categoryId parameter")
			return
		}
		categoryID = &parsed
	}
	featuredOnly := c.Query("featured") == "true"

	products, total, err := h.repo.ListProducts(c.Request.Context(), categoryID, featuredOnly, skip, limit)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data: gin.H{
			"items": products,
			"total": total,
		},
	})
}

// GetProduct retrieves a single product with its category
// @Summary Get product
// @Tags products
// @Param id path int true "Product ID"
// @Router /products/{id} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.repo.GetProductWithCategory(c.Request.Context(), productID)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: product})
}

// SearchProducts runs the catalog search with the full filter set
// @Summary Search products
// @Tags products
// @Param q query string false "Search term"
// @Router /products/search [get]
func (h *ProductsHandler) SearchProducts(c *gin.Context) {
	req, ignored := parseSearchRequest(c, h.defaultPageSize, h.maxPageSize)

	metrics.SearchQueriesTotal.Inc()

	result, err := h.repo.Search(c.Request.Context(), req)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SearchResponse{
		Success:        true,
		Data:           result,
		IgnoredFilters: ignored,
	})
}

// parseSearchRequest translates query parameters into a search request.
// Malformed filter values never fail the request: the filter is skipped
// and its parameter name reported back in ignoredFilters.
func parseSearchRequest(c *gin.Context, defaultLimit, maxLimit int) (*models.SearchProductsRequest, []string) {
	req := &models.SearchProductsRequest{
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	ignored := make([]string, 0)

	if v := c.Query("q"); v != "" {
		req.Query = &v
	}

	if v := c.Query("categoryId"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.CategoryID = &parsed
		} else {
			ignored = append(ignored, "categoryId")
		}
	}
	if codes := c.QueryArray("category"); len(codes) > 0 {
		// Also accept a single comma-separated value
		for _, code := range codes {
			for _, part := range strings.Split(code, ",") {
				if part = strings.TrimSpace(part); part != "" {
					req.CategoryCodes = append(req.CategoryCodes, part)
				}
			}
		}
	}

	if v := c.Query("minPrice"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			req.MinPrice = &parsed
		} else {
			ignored = append(ignored, "minPrice")
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			req.MaxPrice = &parsed
		} else {
			ignored = append(ignored, "maxPrice")
		}
	}

	if v := c.Query("stockStatus"); v != "" {
		if models.ValidStockStatus(v) {
			req.StockStatus = &v
		} else {
			ignored = append(ignored, "stockStatus")
		}
	}
	if v := c.Query("isFeatured"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			req.IsFeatured = &parsed
		} else {
			ignored = append(ignored, "isFeatured")
		}
	}

	if v := c.Query("dateFrom"); v != "" {
		if t, ok := parseDate(v); ok {
			req.DateFrom = &t
		} else {
			ignored = append(ignored, "dateFrom")
		}
	}
	if v := c.Query("dateTo"); v != "" {
		if t, ok := parseDate(v); ok {
			req.DateTo = &t
		} else {
			ignored = append(ignored, "dateTo")
		}
	}

	req.Skip, req.Limit = parsePagination(c, defaultLimit, maxLimit)
	return req, ignored
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// GetSuggestions returns autocomplete entries for the header search bar
// @Summary Search suggestions
// @Tags products
// @Param q query string true "Search term"
// @Router /products/suggestions [get]
func (h *ProductsHandler) GetSuggestions(c *gin.Context) {
	term := c.Query("q")

	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	suggestions, err := h.repo.Suggest(c.Request.Context(), term, limit)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: suggestions})
}

// CreateProduct creates a new product
// @Summary Create product
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if req.StockStatus != nil && !models.ValidStockStatus(*req.StockStatus) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "stockStatus must be one of in_stock, out_of_stock, backorder")
		return
	}

	product := &models.SafetyProduct{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		ModelNumber:    req.ModelNumber,
		Price:          req.Price,
		Description:    req.Description,
		Specifications: req.Specifications,
		StockStatus:    models.StockStatusInStock,
		FileName:       req.FileName,
		FilePath:       req.FilePath,
	}
	if req.StockStatus != nil {
		product.StockStatus = *req.StockStatus
	}
	if req.DisplayOrder != nil {
		product.DisplayOrder = *req.DisplayOrder
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := h.repo.CreateProduct(c.Request.Context(), product, provenanceFrom(c)); err != nil {
		respondRepoError(c, err)
		return
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(models.AuditActionCreate)).Inc()
	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product created")

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: product})
}

// UpdateProduct updates an existing product
// @Summary Update product
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/products/{id} [put]
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if req.StockStatus != nil && !models.ValidStockStatus(*req.StockStatus) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "stockStatus must be one of in_stock, out_of_stock, backorder")
		return
	}

	product, err := h.repo.UpdateProduct(c.Request.Context(), productID, &req, provenanceFrom(c))
	if err != nil {
		respondRepoError(c, err)
		return
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(models.AuditActionUpdate)).Inc()
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: product})
}

// DeleteProduct deletes a product
// @Summary Delete product
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/products/{id} [delete]
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.DeleteProduct(c.Request.Context(), productID, provenanceFrom(c)); err != nil {
		respondRepoError(c, err)
		return
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(models.AuditActionDelete)).Inc()
	logrus.WithField("product_id", productID).Info("Product deleted")

	message := "Product deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}

// BulkUpdateProducts applies stock status and/or featured flag to many products
// @Summary Bulk update products
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/products/bulk-update [post]
func (h *ProductsHandler) BulkUpdateProducts(c *gin.Context) {
	var req models.BulkUpdateProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if req.StockStatus != nil && !models.ValidStockStatus(*req.StockStatus) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "stockStatus must be one of in_stock, out_of_stock, backorder")
		return
	}

	result, err := h.repo.BulkUpdateProducts(c.Request.Context(), &req, provenanceFrom(c))
	if err != nil {
		respondRepoError(c, err)
		return
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(models.AuditActionBulkUpdate)).Inc()
	logrus.WithFields(logrus.Fields{
		"total":     result.Total,
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failed),
	}).Info("Bulk product update completed")

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: result})
}

// BulkDeleteProducts deletes many products in one request
// @Summary Bulk delete products
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/products/bulk-delete [post]
func (h *ProductsHandler) BulkDeleteProducts(c *gin.Context) {
	var req models.BulkDeleteProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.repo.BulkDeleteProducts(c.Request.Context(), req.IDs, provenanceFrom(c))
	if err != nil {
		respondRepoError(c, err)
		return
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(models.AuditActionBulkDelete)).Inc()
	logrus.WithFields(logrus.Fields{
		"total":     result.Total,
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failed),
	}).Info("Bulk product delete completed")

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: result})
}

// GetDashboard returns catalog counters for the admin dashboard
// @Summary Dashboard counters
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/dashboard [get]
func (h *ProductsHandler) GetDashboard(c *gin.Context) {
	overview, err := h.repo.Overview(c.Request.Context())
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: overview})
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "boram-safety-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
