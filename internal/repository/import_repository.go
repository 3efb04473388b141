package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/joeylife94/boram-safety/internal/models"
)

// categoryMapByCode returns category ids keyed by code, used to resolve
// spreadsheet rows against the importing transaction's view.
func categoryMapByCode(db *gorm.DB) (map[string]int64, error) {
	var categories []models.SafetyCategory
	if err := db.Select("id, code").Find(&categories).Error; err != nil {
		return nil, err
	}

	byCode := make(map[string]int64, len(categories))
	for _, c := range categories {
		byCode[c.Code] = c.ID
	}
	return byCode, nil
}

// ImportProducts persists parsed spreadsheet rows in one transaction.
// Rows referencing an unknown category fail individually; any storage
// error rolls back the whole batch. When replaceAll is set the existing
// products are removed first. A single BULK_UPDATE audit entry covers
// the import.
func (r *CatalogRepository) ImportProducts(ctx context.Context, rows []models.ImportProductRow, replaceAll bool, prov models.Provenance) (*models.ImportResult, error) {
	result := &models.ImportResult{
		TotalRows:  len(rows),
		Errors:     make([]models.ImportRowError, 0),
		CreatedIDs: make([]int64, 0, len(rows)),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceAll {
			if err := tx.Where("1 = 1").Delete(&models.SafetyProduct{}).Error; err != nil {
				return err
			}
		}

		byCode, err := categoryMapByCode(tx)
		if err != nil {
			return err
		}

		for _, row := range rows {
			categoryID, ok := byCode[row.CategoryCode]
			if !ok {
				result.Errors = append(result.Errors, models.ImportRowError{
					Row:     row.Row,
					Column:  "category_code",
					Message: fmt.Sprintf("unknown category code %q", row.CategoryCode),
				})
				continue
			}

			stockStatus := row.StockStatus
			if stockStatus == "" {
				stockStatus = models.StockStatusInStock
			}
			product := models.SafetyProduct{
				CategoryID:     categoryID,
				Name:           row.Name,
				ModelNumber:    row.ModelNumber,
				Price:          row.Price,
				Description:    row.Description,
				Specifications: row.Specifications,
				StockStatus:    stockStatus,
				FilePath:       row.FilePath,
				DisplayOrder:   row.DisplayOrder,
				IsFeatured:     row.IsFeatured,
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			result.CreatedIDs = append(result.CreatedIDs, product.ID)
		}

		summary := fmt.Sprintf("spreadsheet import created %d of %d products", len(result.CreatedIDs), result.TotalRows)
		if replaceAll {
			summary += " (replaced existing catalog)"
		}
		_, err = r.audit.RecordChangeTx(tx, models.RecordChangeInput{
			EntityType: models.AuditEntityProduct,
			Action:     models.AuditActionBulkUpdate,
			Summary:    &summary,
			Provenance: prov,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	result.CreatedCount = len(result.CreatedIDs)
	result.FailedCount = len(result.Errors)
	result.Success = result.FailedCount == 0

	if replaceAll {
		r.invalidateAllProductCaches(ctx)
		r.invalidateCategoryCaches(ctx)
	}
	return result, nil
}

// ListProductsForExport returns every product matching the filters,
// joined with category code and name, without pagination.
func (r *CatalogRepository) ListProductsForExport(ctx context.Context, req *models.SearchProductsRequest) ([]models.ProductWithCategory, error) {
	var items []models.ProductWithCategory
	err := r.searchQuery(ctx, req).
		Select("safety_products.*, safety_categories.code AS category_code, safety_categories.name AS category_name").
		Order("safety_categories.display_order ASC, safety_products.display_order ASC, safety_products.id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
