package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/joeylife94/boram-safety/internal/metrics"
	"github.com/joeylife94/boram-safety/internal/models"
	"github.com/joeylife94/boram-safety/internal/repository"
)

type CategoriesHandler struct {
	repo            *repository.CatalogRepository
	defaultPageSize int
	maxPageSize     int
}

func NewCategoriesHandler(repo *repository.CatalogRepository, defaultPageSize, maxPageSize int) *CategoriesHandler {
	return &CategoriesHandler{
		repo:            repo,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// GetCategories lists categories with product counts
// @Summary List categories
// @Tags categories
// @Router /categories [get]
func (h *CategoriesHandler) GetCategories(c *gin.Context) {
	skip, limit := parsePagination(c, h.defaultPageSize, h.maxPageSize)

	categories, total, err := h.repo.GetCategories(c.Request.Context(), skip, limit)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	counts, err := h.repo.GetCategoryProductCounts(c.Request.Context())
	if err != nil {
		respondRepoError(c, err)
		return
	}

	items := make([]models.CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		items = append(items, models.CategoryWithCount{
			SafetyCategory: category,
			ProductCount:   counts[category.ID],
		})
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data: gin.H{
			"items": items,
			"total": total,
		},
	})
}

// GetCategory retrieves a category by its code or slug
// @Summary Get category
// @Tags categories
// @Param code path string true "Category code or slug"
// @Router /categories/{code} [get]
func (h *CategoriesHandler) GetCategory(c *gin.Context) {
	code := c.Param("code")

	category, err := h.repo.GetCategoryByCode(c.Request.Context(), code)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: category})
}

// GetCategoryProducts lists products belonging to a category
// @Summary List category products
// @Tags categories
// @Param code path string true "Category code or slug"
// @Router /categories/{code}/products [get]
func (h *CategoriesHandler) GetCategoryProducts(c *gin.Context) {
	code := c.Param("code")
	skip, limit := parsePagination(c, h.defaultPageSize, h.maxPageSize)
	featuredOnly := c.Query("featured") == "true"

	category, err := h.repo.GetCategoryByCode(c.Request.Context(), code)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	products, total, err := h.repo.ListProducts(c.Request.Context(), &category.ID, featuredOnly, skip, limit)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data: gin.H{
			"category": category,
			"items":    products,
			"total":    total,
		},
	})
}

// CreateCategory creates a category
// @Summary Create category
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/categories [post]
func (h *CategoriesHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	category := &models.SafetyCategory{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		ImagePath:   req.ImagePath,
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}

	if err := h.repo.CreateCategory(c.Request.Context(), category, provenanceFrom(c)); err != nil {
		respondRepoError(c, err)
		return
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(models.AuditActionCreate)).Inc()
	logrus.WithFields(logrus.Fields{
		"category_id": category.ID,
		"code":        category.Code,
	}).Info("Category created")

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: category})
}

// UpdateCategory updates a category
// @Summary Update category
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/categories/{id} [put]
func (h *CategoriesHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	category, err := h.repo.UpdateCategory(c.Request.Context(), categoryID, &req, provenanceFrom(c))
	if err != nil {
		respondRepoError(c, err)
		return
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(models.AuditActionUpdate)).Inc()
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: category})
}

// DeleteCategory deletes an empty category
// @Summary Delete category
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/categories/{id} [delete]
func (h *CategoriesHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.DeleteCategory(c.Request.Context(), categoryID, provenanceFrom(c)); err != nil {
		respondRepoError(c, err)
		return
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(models.AuditActionDelete)).Inc()
	logrus.WithField("category_id", categoryID).Info("Category deleted")

	message := "Category deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}
