package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joeylife94/boram-safety/internal/models"
)

// seedCatalog creates two categories and four products covering the
// filter axes used by the search tests.
func seedCatalog(t *testing.T, repo *CatalogRepository) (helmet, gloves *models.SafetyCategory) {
	t.Helper()
	db := repo.db

	helmet = seedCategory(t, db, "Safety Helmets", "helmet", 1)
	gloves = seedCategory(t, db, "Work Gloves", "gloves", 2)

	seedProduct(t, db, &models.SafetyProduct{
		CategoryID:   helmet.ID,
		Name:         "Ventilated Safety Helmet",
		ModelNumber:  strPtr("SH-301V"),
		Price:        floatPtr(15900),
		Description:  strPtr("ABS shell with ventilation slots"),
		IsFeatured:   true,
		DisplayOrder: 1,
	})
	seedProduct(t, db, &models.SafetyProduct{
		CategoryID:     helmet.ID,
		Name:           "Winter Helmet Liner",
		Price:          floatPtr(8000),
		Specifications: strPtr("fleece lining, machine washable"),
		StockStatus:    models.StockStatusOutOfStock,
		DisplayOrder:   2,
	})
	seedProduct(t, db, &models.SafetyProduct{
		CategoryID:   gloves.ID,
		Name:         "Cut Resistant Gloves",
		ModelNumber:  strPtr("CG-55"),
		Price:        floatPtr(12000),
		Description:  strPtr("level 5 cut protection"),
		IsFeatured:   true,
		DisplayOrder: 1,
	})
	seedProduct(t, db, &models.SafetyProduct{
		CategoryID:   gloves.ID,
		Name:         "Nitrile Coated Gloves",
		Price:        floatPtr(3500),
		DisplayOrder: 2,
	})
	return helmet, gloves
}

func TestSearchTextMatching(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t), nil)
	seedCatalog(t, repo)
	ctx := context.Background()

	tests := []struct {
		name      string
		term      string
		wantNames []string
	}{
		{
			name:      "matches name case-insensitively",
			term:      "HELMET",
			wantNames: []string{"Ventilated Safety Helmet", "Winter Helmet Liner"},
		},
		{
			name:      "matches model number",
			term:      "cg-55",
			wantNames: []string{"Cut Resistant Gloves"},
		},
		{
			name:      "matches description",
			term:      "ventilation",
			wantNames: []string{"Ventilated Safety Helmet"},
		},
		{
			name:      "matches specifications",
			term:      "fleece",
			wantNames: []string{"Winter Helmet Liner"},
		},
		{
			name:      "whitespace-only term matches everything",
			term:      "   ",
			wantNames: []string{"Cut Resistant Gloves", "Nitrile Coated Gloves", "Ventilated Safety Helmet", "Winter Helmet Liner"},
		},
		{
			name:      "no match",
			term:      "respirator",
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repo.Search(ctx, &models.SearchProductsRequest{
				Query: &tt.term,
				Limit: 50,
			})
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if int(result.Total) != len(tt.wantNames) {
				t.Fatalf("Total = %d, want %d", result.Total, len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if result.Items[i].Name != want {
					t.Errorf("item[%d] = %q, want %q", i, result.Items[i].Name, want)
				}
			}
		})
	}
}

func TestSearchFiltersAreConjunctive(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t), nil)
	_, gloves := seedCatalog(t, repo)
	ctx := context.Background()

	featured := true
	result, err := repo.Search(ctx, &models.SearchProductsRequest{
		CategoryID: &gloves.ID,
		MinPrice:   floatPtr(10000),
		IsFeatured: &featured,
		Limit:      50,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 || result.Items[0].Name != "Cut Resistant Gloves" {
		t.Errorf("Total = %d, items = %+v", result.Total, result.Items)
	}

	// Same filters minus the price floor widen the result
	result, err = repo.Search(ctx, &models.SearchProductsRequest{
		CategoryID: &gloves.ID,
		Limit:      50,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
}

func TestSearchCategoryCodes(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t), nil)
	helmet, _ := seedCatalog(t, repo)
	ctx := context.Background()

	result, err := repo.Search(ctx, &models.SearchProductsRequest{
		CategoryCodes: []string{"gloves"},
		Limit:         50,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}

	// A single category id wins over a code set
	result, err = repo.Search(ctx, &models.SearchProductsRequest{
		CategoryID:    &helmet.ID,
		CategoryCodes: []string{"gloves"},
		Limit:         50,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for _, item := range result.Items {
		if item.CategoryCode != "helmet" {
			t.Errorf("unexpected category %q in result", item.CategoryCode)
		}
	}
}

func TestSearchStockAndDateFilters(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t), nil)
	seedCatalog(t, repo)
	ctx := context.Background()

	status := models.StockStatusOutOfStock
	result, err := repo.Search(ctx, &models.SearchProductsRequest{
		StockStatus: &status,
		Limit:       50,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 || result.Items[0].Name != "Winter Helmet Liner" {
		t.Errorf("stock filter: total %d", result.Total)
	}

	future := time.Now().Add(24 * time.Hour)
	result, err = repo.Search(ctx, &models.SearchProductsRequest{
		DateFrom: &future,
		Limit:    50,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 0 {
		t.Errorf("future dateFrom should match nothing, total = %d", result.Total)
	}
}

func TestSearchSorting(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t), nil)
	seedCatalog(t, repo)
	ctx := context.Background()

	t.Run("price descending", func(t *testing.T) {
		result, err := repo.Search(ctx, &models.SearchProductsRequest{
			SortBy:    models.SortByPrice,
			SortOrder: "desc",
			Limit:     50,
		})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if result.Items[0].Name != "Ventilated Safety Helmet" {
			t.Errorf("first item = %q, want highest price first", result.Items[0].Name)
		}
		if result.Items[len(result.Items)-1].Name != "Nitrile Coated Gloves" {
			t.Errorf("last item = %q, want lowest price last", result.Items[len(result.Items)-1].Name)
		}
	})

	t.Run("unknown sort falls back to name ascending", func(t *testing.T) {
		result, err := repo.Search(ctx, &models.SearchProductsRequest{
			SortBy: "popularity",
			Limit:  50,
		})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if result.Items[0].Name != "Cut Resistant Gloves" {
			t.Errorf("first item = %q, want alphabetical order", result.Items[0].Name)
		}
	})
}

func TestSearchPagination(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t), nil)
	seedCatalog(t, repo)
	ctx := context.Background()

	t.Run("second page", func(t *testing.T) {
		result, err := repo.Search(ctx, &models.SearchProductsRequest{Skip: 3, Limit: 3})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if result.Total != 4 {
			t.Errorf("Total = %d, want 4", result.Total)
		}
		if len(result.Items) != 1 {
			t.Errorf("len(Items) = %d, want 1", len(result.Items))
		}
		if result.Page != 2 {
			t.Errorf("Page = %d, want 2", result.Page)
		}
		if result.TotalPages != 2 {
			t.Errorf("TotalPages = %d, want 2", result.TotalPages)
		}
	})

	t.Run("zero limit returns counts only", func(t *testing.T) {
		result, err := repo.Search(ctx, &models.SearchProductsRequest{Limit: 0})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if result.Total != 4 {
			t.Errorf("Total = %d, want 4", result.Total)
		}
		if len(result.Items) != 0 {
			t.Errorf("len(Items) = %d, want 0", len(result.Items))
		}
		if result.Page != 1 || result.TotalPages != 0 {
			t.Errorf("Page = %d, TotalPages = %d", result.Page, result.TotalPages)
		}
	})
}

func TestSuggest(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t), nil)
	seedCatalog(t, repo)
	ctx := context.Background()

	t.Run("matches name and model number only", func(t *testing.T) {
		got, err := repo.Suggest(ctx, "glove", 10)
		if err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		for _, s := range got {
			if !strings.HasPrefix(s.URL, "/products/gloves/") {
				t.Errorf("URL = %q", s.URL)
			}
		}
	})

	t.Run("description text does not produce suggestions", func(t *testing.T) {
		got, err := repo.Suggest(ctx, "ventilation", 10)
		if err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("empty term yields nothing", func(t *testing.T) {
		got, err := repo.Suggest(ctx, "  ", 10)
		if err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})
}

func TestCreateProductRecordsAudit(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db, nil)
	ctx := context.Background()

	helmet := seedCategory(t, db, "Safety Helmets", "helmet", 1)

	product := &models.SafetyProduct{
		CategoryID: helmet.ID,
		Name:       "Forestry Helmet",
		Price:      floatPtr(32000),
	}
	userName := "관리자"
	if err := repo.CreateProduct(ctx, product, models.Provenance{UserName: &userName}); err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if product.ID == 0 {
		t.Fatal("product id not assigned")
	}

	var entry models.AuditLog
	if err := db.Where("entity_type = ? AND entity_id = ?", models.AuditEntityProduct, product.ID).First(&entry).Error; err != nil {
		t.Fatalf("audit entry missing: %v", err)
	}
	if entry.Action != models.AuditActionCreate {
		t.Errorf("Action = %q", entry.Action)
	}
	if entry.OldValues != nil {
		t.Errorf("OldValues = %v, want nil on create", *entry.OldValues)
	}
	if entry.NewValues == nil || !strings.Contains(*entry.NewValues, "Forestry Helmet") {
		t.Errorf("NewValues = %v", entry.NewValues)
	}
	if entry.UserName == nil || *entry.UserName != userName {
		t.Errorf("UserName = %v", entry.UserName)
	}
}

func TestCreateProductUnknownCategory(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t), nil)

	err := repo.CreateProduct(context.Background(), &models.SafetyProduct{
		CategoryID: 999,
		Name:       "Orphan Product",
	}, models.Provenance{})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}

	// Nothing persisted, audit included
	var productCount, auditCount int64
	repo.db.Model(&models.SafetyProduct{}).Count(&productCount)
	repo.db.Model(&models.AuditLog{}).Count(&auditCount)
	if productCount != 0 || auditCount != 0 {
		t.Errorf("productCount = %d, auditCount = %d, want 0/0", productCount, auditCount)
	}
}

func TestUpdateProductRecordsDiff(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db, nil)
	ctx := context.Background()

	helmet := seedCategory(t, db, "Safety Helmets", "helmet", 1)
	product := seedProduct(t, db, &models.SafetyProduct{
		CategoryID: helmet.ID,
		Name:       "Basic Helmet",
		Price:      floatPtr(10000),
	})

	updated, err := repo.UpdateProduct(ctx, product.ID, &models.UpdateProductRequest{
		Price:      floatPtr(12000),
		IsFeatured: boolPtr(true),
	}, models.Provenance{})
	if err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}
	if updated.Price == nil || *updated.Price != 12000 {
		t.Errorf("Price = %v", updated.Price)
	}

	var entry models.AuditLog
	if err := db.Where("action = ?", models.AuditActionUpdate).First(&entry).Error; err != nil {
		t.Fatalf("audit entry missing: %v", err)
	}
	if !strings.Contains(entry.ChangesSummary, "price: 10000 → 12000") {
		t.Errorf("summary = %q", entry.ChangesSummary)
	}
	if !strings.Contains(entry.ChangesSummary, "is_featured: normal → featured") {
		t.Errorf("summary = %q", entry.ChangesSummary)
	}
}

func TestUpdateProductNoChanges(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db, nil)

	helmet := seedCategory(t, db, "Safety Helmets", "helmet", 1)
	product := seedProduct(t, db, &models.SafetyProduct{
		CategoryID: helmet.ID,
		Name:       "Basic Helmet",
	})

	if _, err := repo.UpdateProduct(context.Background(), product.ID, &models.UpdateProductRequest{}, models.Provenance{}); err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}

	var entry models.AuditLog
	if err := db.Where("action = ?", models.AuditActionUpdate).First(&entry).Error; err != nil {
		t.Fatalf("audit entry missing: %v", err)
	}
	if entry.ChangesSummary != NoChangesSummary {
		t.Errorf("summary = %q, want %q", entry.ChangesSummary, NoChangesSummary)
	}
}

func TestDeleteProductRecordsFinalSnapshot(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db, nil)
	ctx := context.Background()

	helmet := seedCategory(t, db, "Safety Helmets", "helmet", 1)
	product := seedProduct(t, db, &models.SafetyProduct{
		CategoryID: helmet.ID,
		Name:       "Doomed Helmet",
	})

	if err := repo.DeleteProduct(ctx, product.ID, models.Provenance{}); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}

	if _, err := repo.GetProductWithCategory(ctx, product.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProductWithCategory after delete: %v", err)
	}

	var entry models.AuditLog
	if err := db.Where("action = ?", models.AuditActionDelete).First(&entry).Error; err != nil {
		t.Fatalf("audit entry missing: %v", err)
	}
	if entry.OldValues == nil || !strings.Contains(*entry.OldValues, "Doomed Helmet") {
		t.Errorf("OldValues = %v", entry.OldValues)
	}
	if entry.NewValues != nil {
		t.Errorf("NewValues = %v, want nil on delete", *entry.NewValues)
	}
}

func TestBulkUpdateProducts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db, nil)
	ctx := context.Background()

	helmet := seedCategory(t, db, "Safety Helmets", "helmet", 1)
	p1 := seedProduct(t, db, &models.SafetyProduct{CategoryID: helmet.ID, Name: "A"})
	p2 := seedProduct(t, db, &models.SafetyProduct{CategoryID: helmet.ID, Name: "B"})

	status := models.StockStatusBackorder
	result, err := repo.BulkUpdateProducts(ctx, &models.BulkUpdateProductsRequest{
		ProductIDs:  []int64{p1.ID, p2.ID, 9999},
		StockStatus: &status,
	}, models.Provenance{})
	if err != nil {
		t.Fatalf("BulkUpdateProducts() error = %v", err)
	}

	if len(result.Succeeded) != 2 {
		t.Errorf("Succeeded = %v", result.Succeeded)
	}
	if len(result.Failed) != 1 || result.Failed[0].ID != 9999 {
		t.Errorf("Failed = %+v", result.Failed)
	}

	var stored models.SafetyProduct
	if err := db.First(&stored, p1.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.StockStatus != models.StockStatusBackorder {
		t.Errorf("StockStatus = %q", stored.StockStatus)
	}

	// One audit entry for the whole batch, with no entity id
	var entries []models.AuditLog
	if err := db.Where("action = ?", models.AuditActionBulkUpdate).Find(&entries).Error; err != nil {
		t.Fatalf("audit query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	if entries[0].EntityID != nil {
		t.Errorf("EntityID = %v, want nil", *entries[0].EntityID)
	}
	if !strings.Contains(entries[0].ChangesSummary, "2 of 3") {
		t.Errorf("summary = %q", entries[0].ChangesSummary)
	}
}

func TestBulkUpdateRequiresAField(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t), nil)

	_, err := repo.BulkUpdateProducts(context.Background(), &models.BulkUpdateProductsRequest{
		ProductIDs: []int64{1},
	}, models.Provenance{})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestBulkDeleteProducts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db, nil)

	helmet := seedCategory(t, db, "Safety Helmets", "helmet", 1)
	p1 := seedProduct(t, db, &models.SafetyProduct{CategoryID: helmet.ID, Name: "A"})

	result, err := repo.BulkDeleteProducts(context.Background(), []int64{p1.ID, 4242}, models.Provenance{})
	if err != nil {
		t.Fatalf("BulkDeleteProducts() error = %v", err)
	}
	if len(result.Succeeded) != 1 || len(result.Failed) != 1 {
		t.Errorf("result = %+v", result)
	}

	var count int64
	db.Model(&models.SafetyProduct{}).Count(&count)
	if count != 0 {
		t.Errorf("remaining products = %d", count)
	}

	var entries []models.AuditLog
	db.Where("action = ?", models.AuditActionBulkDelete).Find(&entries)
	if len(entries) != 1 {
		t.Errorf("audit entries = %d, want 1", len(entries))
	}
}

func TestCategoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db, nil)
	ctx := context.Background()

	category := &models.SafetyCategory{Name: "Eye Protection", Code: "eye"}
	if err := repo.CreateCategory(ctx, category, models.Provenance{}); err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	if category.Slug != "eye-protection" {
		t.Errorf("Slug = %q", category.Slug)
	}

	t.Run("duplicate code rejected", func(t *testing.T) {
		err := repo.CreateCategory(ctx, &models.SafetyCategory{Name: "Other", Code: "eye"}, models.Provenance{})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
	})

	t.Run("lookup by code or slug", func(t *testing.T) {
		byCode, err := repo.GetCategoryByCode(ctx, "eye")
		if err != nil {
			t.Fatalf("GetCategoryByCode() error = %v", err)
		}
		bySlug, err := repo.GetCategoryByCode(ctx, "eye-protection")
		if err != nil {
			t.Fatalf("GetCategoryByCode(slug) error = %v", err)
		}
		if byCode.ID != bySlug.ID {
			t.Errorf("code and slug lookups disagree")
		}
	})

	t.Run("update records diff", func(t *testing.T) {
		updated, err := repo.UpdateCategory(ctx, category.ID, &models.UpdateCategoryRequest{
			Name:         strPtr("Eye & Face Protection"),
			DisplayOrder: intPtr(3),
		}, models.Provenance{})
		if err != nil {
			t.Fatalf("UpdateCategory() error = %v", err)
		}
		if updated.Name != "Eye & Face Protection" || updated.DisplayOrder != 3 {
			t.Errorf("updated = %q/%d", updated.Name, updated.DisplayOrder)
		}

		var entry models.AuditLog
		if err := db.Where("entity_type = ? AND action = ?", models.AuditEntityCategory, models.AuditActionUpdate).First(&entry).Error; err != nil {
			t.Fatalf("audit entry: %v", err)
		}
		if !strings.Contains(entry.ChangesSummary, "display_order: 0 → 3") {
			t.Errorf("ChangesSummary = %q", entry.ChangesSummary)
		}
	})

	t.Run("delete refused while products remain", func(t *testing.T) {
		seedProduct(t, db, &models.SafetyProduct{CategoryID: category.ID, Name: "Goggles"})

		err := repo.DeleteCategory(ctx, category.ID, models.Provenance{})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want ValidationError", err)
		}

		if err := db.Where("category_id = ?", category.ID).Delete(&models.SafetyProduct{}).Error; err != nil {
			t.Fatalf("cleanup: %v", err)
		}
		if err := repo.DeleteCategory(ctx, category.ID, models.Provenance{}); err != nil {
			t.Fatalf("DeleteCategory() after cleanup error = %v", err)
		}
	})
}

func TestOverviewCounters(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db, nil)

	seedCatalog(t, repo)

	overview, err := repo.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if overview.TotalProducts != 4 || overview.TotalCategories != 2 {
		t.Errorf("overview = %+v", overview)
	}
	if overview.FeaturedProducts != 2 {
		t.Errorf("FeaturedProducts = %d, want 2", overview.FeaturedProducts)
	}
	if overview.OutOfStock != 1 {
		t.Errorf("OutOfStock = %d, want 1", overview.OutOfStock)
	}
}

func TestImportProducts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db, nil)
	ctx := context.Background()

	seedCategory(t, db, "Safety Helmets", "helmet", 1)

	rows := []models.ImportProductRow{
		{Row: 2, CategoryCode: "helmet", Name: "Imported Helmet A", Price: floatPtr(9900)},
		{Row: 3, CategoryCode: "helmet", Name: "Imported Helmet B", StockStatus: models.StockStatusBackorder},
		{Row: 4, CategoryCode: "boots", Name: "Imported Boots"},
	}

	result, err := repo.ImportProducts(ctx, rows, false, models.Provenance{})
	if err != nil {
		t.Fatalf("ImportProducts() error = %v", err)
	}

	if result.CreatedCount != 2 {
		t.Errorf("CreatedCount = %d, want 2", result.CreatedCount)
	}
	if result.FailedCount != 1 || result.Errors[0].Row != 4 {
		t.Errorf("Errors = %+v", result.Errors)
	}
	if result.Success {
		t.Error("Success should be false with row failures")
	}

	var count int64
	db.Model(&models.SafetyProduct{}).Count(&count)
	if count != 2 {
		t.Errorf("persisted products = %d", count)
	}

	var entries []models.AuditLog
	db.Where("action = ?", models.AuditActionBulkUpdate).Find(&entries)
	if len(entries) != 1 || !strings.Contains(entries[0].ChangesSummary, "import") {
		t.Errorf("audit entries = %+v", entries)
	}
}

func TestImportProductsReplaceAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db, nil)
	ctx := context.Background()

	helmet := seedCategory(t, db, "Safety Helmets", "helmet", 1)
	seedProduct(t, db, &models.SafetyProduct{CategoryID: helmet.ID, Name: "Old Stock"})

	rows := []models.ImportProductRow{
		{Row: 2, CategoryCode: "helmet", Name: "Fresh Import"},
	}
	if _, err := repo.ImportProducts(ctx, rows, true, models.Provenance{}); err != nil {
		t.Fatalf("ImportProducts() error = %v", err)
	}

	var products []models.SafetyProduct
	db.Find(&products)
	if len(products) != 1 || products[0].Name != "Fresh Import" {
		t.Errorf("products = %+v", products)
	}
}

func TestListProductsForExport(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t), nil)
	seedCatalog(t, repo)

	featured := true
	items, err := repo.ListProductsForExport(context.Background(), &models.SearchProductsRequest{
		IsFeatured: &featured,
	})
	if err != nil {
		t.Fatalf("ListProductsForExport() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.CategoryCode == "" {
			t.Errorf("missing category code on %q", item.Name)
		}
	}
}
