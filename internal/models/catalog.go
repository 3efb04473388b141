package models

import (
	"time"
)

// StockStatus values stored on SafetyProduct.StockStatus.
const (
	StockStatusInStock    = "in_stock"
	StockStatusOutOfStock = "out_of_stock"
	StockStatusBackorder  = "backorder"
)

// ValidStockStatus reports whether v is a known stock status value.
func ValidStockStatus(v string) bool {
	switch v {
	case StockStatusInStock, StockStatusOutOfStock, StockStatusBackorder:
		return true
	}
	return false
}

// SafetyCategory represents a product category (safety helmets, gloves, ...).
type SafetyCategory struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Code         string    `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Slug         string    `json:"slug" gorm:"size:100"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	ImagePath    *string   `json:"imagePath,omitempty" gorm:"size:500"`
	DisplayOrder int       `json:"displayOrder" gorm:"not null;default:0;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SafetyProduct represents a catalog product.
// is_featured is canonically a bool; request boundaries convert any
// legacy 0/1 representation before it reaches this struct.
type SafetyProduct struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CategoryID     int64     `json:"categoryId" gorm:"not null;index"`
	Name           string    `json:"name" gorm:"size:200;not null;index"`
	ModelNumber    *string   `json:"modelNumber,omitempty" gorm:"size:100"`
	Price          *float64  `json:"price,omitempty" gorm:"index"`
	Description    *string   `json:"description,omitempty" gorm:"type:text"`
	Specifications *string   `json:"specifications,omitempty" gorm:"type:text"`
	StockStatus    string    `json:"stockStatus" gorm:"size:20;not null;default:'in_stock';index"`
	FileName       *string   `json:"fileName,omitempty" gorm:"size:255"`
	FilePath       *string   `json:"filePath,omitempty" gorm:"size:500"`
	DisplayOrder   int       `json:"displayOrder" gorm:"not null;default:0;index"`
	IsFeatured     bool      `json:"isFeatured" gorm:"not null;default:false;index"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"index"`
}

// TableName returns the table name for the SafetyCategory model
func (SafetyCategory) TableName() string {
	return "safety_categories"
}

// TableName returns the table name for the SafetyProduct model
func (SafetyProduct) TableName() string {
	return "safety_products"
}

// Snapshot captures the auditable fields of a product as a flat map.
func (p *SafetyProduct) Snapshot() Snapshot {
	return Snapshot{
		"category_id":    p.CategoryID,
		"name":           p.Name,
		"model_number":   derefString(p.ModelNumber),
		"price":          derefFloat(p.Price),
		"description":    derefString(p.Description),
		"specifications": derefString(p.Specifications),
		"stock_status":   p.StockStatus,
		"file_path":      derefString(p.FilePath),
		"display_order":  p.DisplayOrder,
		"is_featured":    p.IsFeatured,
	}
}

// Snapshot captures the auditable fields of a category as a flat map.
func (c *SafetyCategory) Snapshot() Snapshot {
	return Snapshot{
		"name":          c.Name,
		"code":          c.Code,
		"slug":          c.Slug,
		"description":   derefString(c.Description),
		"image_path":    derefString(c.ImagePath),
		"display_order": c.DisplayOrder,
	}
}

func derefString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func derefFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

// ProductWithCategory is a search-result row: a product joined with its
// owning category's code and name.
type ProductWithCategory struct {
	ID             int64     `json:"id"`
	CategoryID     int64     `json:"categoryId"`
	CategoryCode   string    `json:"categoryCode" gorm:"column:category_code"`
	CategoryName   string    `json:"categoryName" gorm:"column:category_name"`
	Name           string    `json:"name"`
	ModelNumber    *string   `json:"modelNumber,omitempty"`
	Price          *float64  `json:"price,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Specifications *string   `json:"specifications,omitempty"`
	StockStatus    string    `json:"stockStatus"`
	FileName       *string   `json:"fileName,omitempty"`
	FilePath       *string   `json:"filePath,omitempty"`
	DisplayOrder   int       `json:"displayOrder"`
	IsFeatured     bool      `json:"isFeatured"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Sort fields accepted by SearchProductsRequest.SortBy. Anything else
// falls back to name ascending.
const (
	SortByName         = "name"
	SortByPrice        = "price"
	SortByCreatedAt    = "created_at"
	SortByUpdatedAt    = "updated_at"
	SortByDisplayOrder = "display_order"
)

// SearchProductsRequest represents a product search request
type SearchProductsRequest struct {
	Query         *string    `json:"query,omitempty"`
	CategoryID    *int64     `json:"categoryId,omitempty"`
	CategoryCodes []string   `json:"categoryCodes,omitempty"`
	MinPrice      *float64   `json:"minPrice,omitempty"`
	MaxPrice      *float64   `json:"maxPrice,omitempty"`
	StockStatus   *string    `json:"stockStatus,omitempty"`
	IsFeatured    *bool      `json:"isFeatured,omitempty"`
	DateFrom      *time.Time `json:"dateFrom,omitempty"`
	DateTo        *time.Time `json:"dateTo,omitempty"`
	SortBy        string     `json:"sortBy,omitempty"`
	SortOrder     string     `json:"sortOrder,omitempty"`
	Skip          int        `json:"skip"`
	Limit         int        `json:"limit"`
}

// ProductSearchResult is the paginated outcome of a search.
type ProductSearchResult struct {
	Total      int64                 `json:"total"`
	Items      []ProductWithCategory `json:"items"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}

// PageNumber computes the 1-based page for an offset/window pair.
// limit <= 0 has no meaningful page; callers get page 1.
func PageNumber(skip, limit int) int {
	if limit <= 0 {
		return 1
	}
	return skip/limit + 1
}

// TotalPages computes ceil(total/limit), 0 when limit <= 0.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Suggestion is a lightweight autocomplete entry for the header search bar.
type Suggestion struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	CategoryCode string  `json:"categoryCode" gorm:"column:category_code"`
	ImagePath    *string `json:"imagePath,omitempty" gorm:"column:file_path"`
	URL          string  `json:"url" gorm:"-"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	CategoryID     int64    `json:"categoryId" binding:"required"`
	Name           string   `json:"name" binding:"required"`
	ModelNumber    *string  `json:"modelNumber,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Specifications *string  `json:"specifications,omitempty"`
	StockStatus    *string  `json:"stockStatus,omitempty"`
	FileName       *string  `json:"fileName,omitempty"`
	FilePath       *string  `json:"filePath,omitempty"`
	DisplayOrder   *int     `json:"displayOrder,omitempty"`
	IsFeatured     *bool    `json:"isFeatured,omitempty"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	CategoryID     *int64   `json:"categoryId,omitempty"`
	Name           *string  `json:"name,omitempty"`
	ModelNumber    *string  `json:"modelNumber,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Specifications *string  `json:"specifications,omitempty"`
	StockStatus    *string  `json:"stockStatus,omitempty"`
	FileName       *string  `json:"fileName,omitempty"`
	FilePath       *string  `json:"filePath,omitempty"`
	DisplayOrder   *int     `json:"displayOrder,omitempty"`
	IsFeatured     *bool    `json:"isFeatured,omitempty"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name         string  `json:"name" binding:"required"`
	Code         string  `json:"code" binding:"required"`
	Slug         *string `json:"slug,omitempty"`
	Description  *string `json:"description,omitempty"`
	ImagePath    *string `json:"imagePath,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty"`
	Code         *string `json:"code,omitempty"`
	Slug         *string `json:"slug,omitempty"`
	Description  *string `json:"description,omitempty"`
	ImagePath    *string `json:"imagePath,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
}

// BulkUpdateProductsRequest sets stock status and/or featured flag on a set
// of products. At least one of the two fields must be present.
type BulkUpdateProductsRequest struct {
	ProductIDs  []int64 `json:"productIds" binding:"required,min=1,max=500"`
	StockStatus *string `json:"stockStatus,omitempty"`
	IsFeatured  *bool   `json:"isFeatured,omitempty"`
}

// BulkDeleteProductsRequest represents bulk delete request for products
type BulkDeleteProductsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1,max=500"`
}

// BulkFailure reports why a single id in a bulk operation was not applied.
type BulkFailure struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult is the outcome of a bulk update/delete: which ids were
// applied and which were not, with reasons.
type BulkResult struct {
	Total     int           `json:"total"`
	Succeeded []int64       `json:"succeeded"`
	Failed    []BulkFailure `json:"failed,omitempty"`
}

// CategoryWithCount pairs a category with its product count for menu
// responses.
type CategoryWithCount struct {
	SafetyCategory
	ProductCount int64 `json:"productCount"`
}

// CatalogOverview holds admin dashboard counters.
type CatalogOverview struct {
	TotalProducts    int64 `json:"totalProducts"`
	TotalCategories  int64 `json:"totalCategories"`
	FeaturedProducts int64 `json:"featuredProducts"`
	OutOfStock       int64 `json:"outOfStock"`
}

// Response envelope types

type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// SearchResponse wraps a ProductSearchResult and reports any filter
// parameters that were supplied but could not be parsed and were ignored.
type SearchResponse struct {
	Success        bool                 `json:"success"`
	Data           *ProductSearchResult `json:"data"`
	IgnoredFilters []string             `json:"ignoredFilters,omitempty"`
}
