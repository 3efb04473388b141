package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/joeylife94/boram-safety/internal/models"
)

// Cache TTL constants
const (
	ProductCacheTTL  = 5 * time.Minute  // Single product cache
	CategoryCacheTTL = 30 * time.Minute // Categories rarely change
)

const defaultSuggestLimit = 5

// sortColumns whitelists the sortable columns. Anything outside this map
// falls back to name ascending rather than erroring.
var sortColumns = map[string]string{
	models.SortByName:         "safety_products.name",
	models.SortByPrice:        "safety_products.price",
	models.SortByCreatedAt:    "safety_products.created_at",
	models.SortByUpdatedAt:    "safety_products.updated_at",
	models.SortByDisplayOrder: "safety_products.display_order",
}

// CatalogRepository owns product and category persistence, the search
// engine, and writes every mutation's audit entry in the same
// transaction as the mutation itself.
type CatalogRepository struct {
	db    *gorm.DB
	redis *redis.Client
	audit *AuditRepository
}

func NewCatalogRepository(db *gorm.DB, redisClient *redis.Client) *CatalogRepository {
	return &CatalogRepository{
		db:    db,
		redis: redisClient,
		audit: NewAuditRepository(db),
	}
}

// Audit exposes the audit repository sharing this repository's handle.
func (r *CatalogRepository) Audit() *AuditRepository {
	return r.audit
}

// Cache helpers

func productCacheKey(id int64) string {
	return fmt.Sprintf("boram:product:%d", id)
}

func categoriesCacheKey(skip, limit int) string {
	return fmt.Sprintf("boram:categories:%d:%d", skip, limit)
}

func (r *CatalogRepository) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if r.redis == nil {
		return false
	}
	val, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (r *CatalogRepository) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if r.redis == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		r.redis.Set(ctx, key, data, ttl)
	}
}

func (r *CatalogRepository) invalidateProductCache(ctx context.Context, productID int64) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, productCacheKey(productID))
}

// invalidateAllProductCaches wipes every per-id product entry. Used when
// a batch operation touches products whose ids are not enumerated, such
// as a replace-all import.
func (r *CatalogRepository) invalidateAllProductCaches(ctx context.Context) {
	if r.redis == nil {
		return
	}
	iter := r.redis.Scan(ctx, 0, "boram:product:*", 100).Iterator()
	for iter.Next(ctx) {
		r.redis.Del(ctx, iter.Val())
	}
}

func (r *CatalogRepository) invalidateCategoryCaches(ctx context.Context) {
	if r.redis == nil {
		return
	}
	iter := r.redis.Scan(ctx, 0, "boram:categories:*", 100).Iterator()
	for iter.Next(ctx) {
		r.redis.Del(ctx, iter.Val())
	}
}

// Product CRUD Operations

// CreateProduct creates a product and its CREATE audit entry in one
// transaction.
func (r *CatalogRepository) CreateProduct(ctx context.Context, product *models.SafetyProduct, prov models.Provenance) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.SafetyCategory{}).Where("id = ?", product.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &ValidationError{Field: "categoryId", Message: fmt.Sprintf("category %d does not exist", product.CategoryID)}
		}

		if err := tx.Create(product).Error; err != nil {
			return err
		}

		_, err := r.audit.RecordChangeTx(tx, models.RecordChangeInput{
			EntityType: models.AuditEntityProduct,
			EntityID:   &product.ID,
			Action:     models.AuditActionCreate,
			NewValues:  product.Snapshot(),
			Provenance: prov,
		})
		return err
	})
}

// GetProductWithCategory retrieves a product joined with its category
// code and name for detail responses, read through the per-id cache.
func (r *CatalogRepository) GetProductWithCategory(ctx context.Context, productID int64) (*models.ProductWithCategory, error) {
	var cached models.ProductWithCategory
	if r.cacheGet(ctx, productCacheKey(productID), &cached) {
		return &cached, nil
	}

	var row models.ProductWithCategory
	err := r.db.WithContext(ctx).Model(&models.SafetyProduct{}).
		Select("safety_products.*, safety_categories.code AS category_code, safety_categories.name AS category_name").
		Joins("JOIN safety_categories ON safety_categories.id = safety_products.category_id").
		Where("safety_products.id = ?", productID).
		First(&row).Error
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, productCacheKey(productID), row, ProductCacheTTL)
	return &row, nil
}

// UpdateProduct applies the non-nil fields of req to a product and
// records the UPDATE with before/after snapshots, all in one
// transaction.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, productID int64, req *models.UpdateProductRequest, prov models.Provenance) (*models.SafetyProduct, error) {
	var updated models.SafetyProduct

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.SafetyProduct
		if err := tx.First(&product, productID).Error; err != nil {
			return err
		}
		oldValues := product.Snapshot()

		if req.CategoryID != nil {
			var count int64
			if err := tx.Model(&models.SafetyCategory{}).Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return &ValidationError{Field: "categoryId", Message: fmt.Sprintf("category %d does not exist", *req.CategoryID)}
			}
			product.CategoryID = *req.CategoryID
		}
		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.ModelNumber != nil {
			product.ModelNumber = req.ModelNumber
		}
		if req.Price != nil {
			product.Price = req.Price
		}
		if req.Description != nil {
			product.Description = req.Description
		}
		if req.Specifications != nil {
			product.Specifications = req.Specifications
		}
		if req.StockStatus != nil {
			product.StockStatus = *req.StockStatus
		}
		if req.FileName != nil {
			product.FileName = req.FileName
		}
		if req.FilePath != nil {
			product.FilePath = req.FilePath
		}
		if req.DisplayOrder != nil {
			product.DisplayOrder = *req.DisplayOrder
		}
		if req.IsFeatured != nil {
			product.IsFeatured = *req.IsFeatured
		}
		product.UpdatedAt = time.Now()

		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		if _, err := r.audit.RecordChangeTx(tx, models.RecordChangeInput{
			EntityType: models.AuditEntityProduct,
			EntityID:   &product.ID,
			Action:     models.AuditActionUpdate,
			OldValues:  oldValues,
			NewValues:  product.Snapshot(),
			Provenance: prov,
		}); err != nil {
			return err
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidateProductCache(ctx, productID)
	return &updated, nil
}

// DeleteProduct removes a product and records the DELETE with its final
// snapshot in one transaction.
func (r *CatalogRepository) DeleteProduct(ctx context.Context, productID int64, prov models.Provenance) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.SafetyProduct
		if err := tx.First(&product, productID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.SafetyProduct{}, productID).Error; err != nil {
			return err
		}

		_, err := r.audit.RecordChangeTx(tx, models.RecordChangeInput{
			EntityType: models.AuditEntityProduct,
			EntityID:   &productID,
			Action:     models.AuditActionDelete,
			OldValues:  product.Snapshot(),
			Provenance: prov,
		})
		return err
	})
	if err != nil {
		return err
	}

	r.invalidateProductCache(ctx, productID)
	return nil
}

// ListProducts retrieves products for public browsing, ordered by
// display order, optionally restricted to one category or featured only.
func (r *CatalogRepository) ListProducts(ctx context.Context, categoryID *int64, featuredOnly bool, skip, limit int) ([]models.SafetyProduct, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SafetyProduct{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if featuredOnly {
		query = query.Where("is_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.SafetyProduct
	if err := query.Order("display_order ASC, id ASC").Offset(skip).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Search translates a SearchProductsRequest into a paginated result set
// over products joined with their categories. The total is counted
// before sorting and pagination so callers can compute page counts.
func (r *CatalogRepository) Search(ctx context.Context, req *models.SearchProductsRequest) (*models.ProductSearchResult, error) {
	var total int64
	if err := r.searchQuery(ctx, req).Count(&total).Error; err != nil {
		return nil, err
	}

	result := &models.ProductSearchResult{
		Total:      total,
		Items:      []models.ProductWithCategory{},
		Page:       models.PageNumber(req.Skip, req.Limit),
		PageSize:   req.Limit,
		TotalPages: models.TotalPages(total, req.Limit),
	}

	if req.Limit <= 0 {
		return result, nil
	}

	err := r.searchQuery(ctx, req).
		Select("safety_products.*, safety_categories.code AS category_code, safety_categories.name AS category_name").
		Order(searchOrderClause(req.SortBy, req.SortOrder)).
		Offset(req.Skip).
		Limit(req.Limit).
		Scan(&result.Items).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// searchQuery builds the filtered (unsorted, unpaginated) search query.
// Built twice per search: once for the count, once for the page.
func (r *CatalogRepository) searchQuery(ctx context.Context, req *models.SearchProductsRequest) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.SafetyProduct{}).
		Joins("JOIN safety_categories ON safety_categories.id = safety_products.category_id")
	return applySearchFilters(query, req)
}

// applySearchFilters adds the request's predicates to the query. Filters
// are conjunctive across categories; the text match and the category
// code set are disjunctive within themselves.
func applySearchFilters(query *gorm.DB, req *models.SearchProductsRequest) *gorm.DB {
	if req.Query != nil {
		if term := strings.TrimSpace(*req.Query); term != "" {
			pattern := "%" + strings.ToLower(term) + "%"
			query = query.Where(
				"(LOWER(safety_products.name) LIKE ? OR LOWER(safety_products.description) LIKE ? OR LOWER(safety_products.model_number) LIKE ? OR LOWER(safety_products.specifications) LIKE ?)",
				pattern, pattern, pattern, pattern,
			)
		}
	}

	// Single category id and category code set are distinct mechanisms;
	// the id wins when both are supplied.
	if req.CategoryID != nil {
		query = query.Where("safety_products.category_id = ?", *req.CategoryID)
	} else if len(req.CategoryCodes) > 0 {
		query = query.Where("safety_categories.code IN ?", req.CategoryCodes)
	}

	if req.MinPrice != nil {
		query = query.Where("safety_products.price >= ?", *req.MinPrice)
	}
	if req.MaxPrice != nil {
		query = query.Where("safety_products.price <= ?", *req.MaxPrice)
	}
	if req.StockStatus != nil && *req.StockStatus != "" {
		query = query.Where("safety_products.stock_status = ?", *req.StockStatus)
	}
	if req.IsFeatured != nil {
		query = query.Where("safety_products.is_featured = ?", *req.IsFeatured)
	}
	if req.DateFrom != nil {
		query = query.Where("safety_products.created_at >= ?", *req.DateFrom)
	}
	if req.DateTo != nil {
		query = query.Where("safety_products.created_at <= ?", *req.DateTo)
	}

	return query
}

// searchOrderClause resolves the sort column and direction, appending the
// product id as a secondary key so result order is deterministic.
func searchOrderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[strings.ToLower(sortBy)]
	if !ok {
		return "safety_products.name ASC, safety_products.id ASC"
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s, safety_products.id ASC", column, direction)
}

// Suggest returns autocomplete entries matching the term against product
// name or model number only. Narrower than full search on purpose: the
// header search bar needs a fast, short answer.
func (r *CatalogRepository) Suggest(ctx context.Context, term string, limit int) ([]models.Suggestion, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Suggestion{}, nil
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}

	pattern := "%" + strings.ToLower(term) + "%"
	suggestions := []models.Suggestion{}
	err := r.db.WithContext(ctx).Model(&models.SafetyProduct{}).
		Select("safety_products.id, safety_products.name, safety_products.file_path, safety_categories.code AS category_code").
		Joins("JOIN safety_categories ON safety_categories.id = safety_products.category_id").
		Where("(LOWER(safety_products.name) LIKE ? OR LOWER(safety_products.model_number) LIKE ?)", pattern, pattern).
		Order("safety_products.name ASC, safety_products.id ASC").
		Limit(limit).
		Scan(&suggestions).Error
	if err != nil {
		return nil, err
	}

	for i := range suggestions {
		suggestions[i].URL = fmt.Sprintf("/products/%s/%d", suggestions[i].CategoryCode, suggestions[i].ID)
	}
	return suggestions, nil
}

// Bulk Operations

// BulkUpdateProducts applies stock status and/or featured flag to a set
// of products inside one transaction and records a single BULK_UPDATE
// audit entry. Missing ids are reported per-id, not as a batch failure.
func (r *CatalogRepository) BulkUpdateProducts(ctx context.Context, req *models.BulkUpdateProductsRequest, prov models.Provenance) (*models.BulkResult, error) {
	if req.StockStatus == nil && req.IsFeatured == nil {
		return nil, &ValidationError{Message: "at least one of stockStatus or isFeatured is required"}
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	newValues := models.Snapshot{}
	if req.StockStatus != nil {
		updates["stock_status"] = *req.StockStatus
		newValues["stock_status"] = *req.StockStatus
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
		newValues["is_featured"] = *req.IsFeatured
	}

	result := &models.BulkResult{
		Total:     len(req.ProductIDs),
		Succeeded: make([]int64, 0, len(req.ProductIDs)),
		Failed:    make([]models.BulkFailure, 0),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range req.ProductIDs {
			res := tx.Model(&models.SafetyProduct{}).Where("id = ?", id).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				result.Failed = append(result.Failed, models.BulkFailure{ID: id, Reason: "product not found"})
				continue
			}
			result.Succeeded = append(result.Succeeded, id)
		}

		summary := fmt.Sprintf("bulk update applied to %d of %d products: %s",
			len(result.Succeeded), result.Total, GenerateChangesSummary(nil, newValues))
		_, err := r.audit.RecordChangeTx(tx, models.RecordChangeInput{
			EntityType: models.AuditEntityProduct,
			Action:     models.AuditActionBulkUpdate,
			NewValues:  newValues,
			Summary:    &summary,
			Provenance: prov,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, id := range result.Succeeded {
		r.invalidateProductCache(ctx, id)
	}
	return result, nil
}

// BulkDeleteProducts deletes a set of products inside one transaction and
// records a single BULK_DELETE audit entry.
func (r *CatalogRepository) BulkDeleteProducts(ctx context.Context, ids []int64, prov models.Provenance) (*models.BulkResult, error) {
	result := &models.BulkResult{
		Total:     len(ids),
		Succeeded: make([]int64, 0, len(ids)),
		Failed:    make([]models.BulkFailure, 0),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			res := tx.Delete(&models.SafetyProduct{}, id)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				result.Failed = append(result.Failed, models.BulkFailure{ID: id, Reason: "product not found"})
				continue
			}
			result.Succeeded = append(result.Succeeded, id)
		}

		summary := fmt.Sprintf("bulk delete removed %d of %d products", len(result.Succeeded), result.Total)
		_, err := r.audit.RecordChangeTx(tx, models.RecordChangeInput{
			EntityType: models.AuditEntityProduct,
			Action:     models.AuditActionBulkDelete,
			Summary:    &summary,
			Provenance: prov,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, id := range result.Succeeded {
		r.invalidateProductCache(ctx, id)
	}
	return result, nil
}

// Category Operations

// GetCategories retrieves categories ordered for menu display, with
// caching. Total counts all categories regardless of pagination.
func (r *CatalogRepository) GetCategories(ctx context.Context, skip, limit int) ([]models.SafetyCategory, int64, error) {
	type categoriesResult struct {
		Categories []models.SafetyCategory `json:"categories"`
		Total      int64                   `json:"total"`
	}

	cacheKey := categoriesCacheKey(skip, limit)
	var cached categoriesResult
	if r.cacheGet(ctx, cacheKey, &cached) {
		return cached.Categories, cached.Total, nil
	}

	query := r.db.WithContext(ctx).Model(&models.SafetyCategory{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []models.SafetyCategory
	if err := query.Order("display_order ASC, name ASC").Offset(skip).Limit(limit).Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	r.cacheSet(ctx, cacheKey, categoriesResult{Categories: categories, Total: total}, CategoryCacheTTL)
	return categories, total, nil
}

// GetCategoryByID retrieves a category by ID
func (r *CatalogRepository) GetCategoryByID(ctx context.Context, categoryID int64) (*models.SafetyCategory, error) {
	var category models.SafetyCategory
	if err := r.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategoryByCode retrieves a category by its code or slug.
func (r *CatalogRepository) GetCategoryByCode(ctx context.Context, code string) (*models.SafetyCategory, error) {
	var category models.SafetyCategory
	err := r.db.WithContext(ctx).
		Where("code = ? OR slug = ?", code, code).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategoryProductCounts returns the number of products per category id.
func (r *CatalogRepository) GetCategoryProductCounts(ctx context.Context) (map[int64]int64, error) {
	type row struct {
		CategoryID int64
		Count      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.SafetyProduct{}).
		Select("category_id, COUNT(*) AS count").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}
	return counts, nil
}

// CreateCategory creates a category and its CREATE audit entry in one
// transaction. Category codes are unique.
func (r *CatalogRepository) CreateCategory(ctx context.Context, category *models.SafetyCategory, prov models.Provenance) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.SafetyCategory{}).Where("code = ?", category.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ValidationError{Field: "code", Message: fmt.Sprintf("category code %q already exists", category.Code)}
		}

		if category.Slug == "" {
			category.Slug = generateSlug(category.Name)
		}

		if err := tx.Create(category).Error; err != nil {
			return err
		}

		_, err := r.audit.RecordChangeTx(tx, models.RecordChangeInput{
			EntityType: models.AuditEntityCategory,
			EntityID:   &category.ID,
			Action:     models.AuditActionCreate,
			NewValues:  category.Snapshot(),
			Provenance: prov,
		})
		return err
	})
	if err != nil {
		return err
	}

	r.invalidateCategoryCaches(ctx)
	return nil
}

// UpdateCategory applies the non-nil fields of req to a category and
// records the UPDATE with before/after snapshots.
func (r *CatalogRepository) UpdateCategory(ctx context.Context, categoryID int64, req *models.UpdateCategoryRequest, prov models.Provenance) (*models.SafetyCategory, error) {
	var updated models.SafetyCategory

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.SafetyCategory
		if err := tx.First(&category, categoryID).Error; err != nil {
			return err
		}
		oldValues := category.Snapshot()

		if req.Code != nil && *req.Code != category.Code {
			var count int64
			if err := tx.Model(&models.SafetyCategory{}).Where("code = ? AND id <> ?", *req.Code, categoryID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return &ValidationError{Field: "code", Message: fmt.Sprintf("category code %q already exists", *req.Code)}
			}
			category.Code = *req.Code
		}
		if req.Name != nil {
			category.Name = *req.Name
		}
		if req.Slug != nil {
			category.Slug = *req.Slug
		}
		if req.Description != nil {
			category.Description = req.Description
		}
		if req.ImagePath != nil {
			category.ImagePath = req.ImagePath
		}
		if req.DisplayOrder != nil {
			category.DisplayOrder = *req.DisplayOrder
		}
		category.UpdatedAt = time.Now()

		if err := tx.Save(&category).Error; err != nil {
			return err
		}

		if _, err := r.audit.RecordChangeTx(tx, models.RecordChangeInput{
			EntityType: models.AuditEntityCategory,
			EntityID:   &category.ID,
			Action:     models.AuditActionUpdate,
			OldValues:  oldValues,
			NewValues:  category.Snapshot(),
			Provenance: prov,
		}); err != nil {
			return err
		}

		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidateCategoryCaches(ctx)
	return &updated, nil
}

// DeleteCategory removes a category that has no remaining products and
// records the DELETE with its final snapshot.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, categoryID int64, prov models.Provenance) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.SafetyCategory
		if err := tx.First(&category, categoryID).Error; err != nil {
			return err
		}

		var productCount int64
		if err := tx.Model(&models.SafetyProduct{}).Where("category_id = ?", categoryID).Count(&productCount).Error; err != nil {
			return err
		}
		if productCount > 0 {
			return &ValidationError{Field: "id", Message: fmt.Sprintf("category still referenced by %d product(s)", productCount)}
		}

		if err := tx.Delete(&models.SafetyCategory{}, categoryID).Error; err != nil {
			return err
		}

		_, err := r.audit.RecordChangeTx(tx, models.RecordChangeInput{
			EntityType: models.AuditEntityCategory,
			EntityID:   &categoryID,
			Action:     models.AuditActionDelete,
			OldValues:  category.Snapshot(),
			Provenance: prov,
		})
		return err
	})
	if err != nil {
		return err
	}

	r.invalidateCategoryCaches(ctx)
	return nil
}

// Analytics Operations

// Overview retrieves admin dashboard counters.
func (r *CatalogRepository) Overview(ctx context.Context) (*models.CatalogOverview, error) {
	overview := &models.CatalogOverview{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.SafetyProduct{}).Count(&overview.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.SafetyCategory{}).Count(&overview.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.SafetyProduct{}).Where("is_featured = ?", true).Count(&overview.FeaturedProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.SafetyProduct{}).Where("stock_status = ?", models.StockStatusOutOfStock).Count(&overview.OutOfStock).Error; err != nil {
		return nil, err
	}

	return overview, nil
}

// generateSlug creates a URL-friendly slug from a name
func generateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
