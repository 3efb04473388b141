package repository

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/joeylife94/boram-safety/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "catalog_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.SafetyCategory{},
		&models.SafetyProduct{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func int64Ptr(i int64) *int64 { return &i }

func boolPtr(b bool) *bool { return &b }

func seedCategory(t *testing.T, db *gorm.DB, name, code string, order int) *models.SafetyCategory {
	t.Helper()
	category := &models.SafetyCategory{
		Name:         name,
		Code:         code,
		Slug:         code,
		DisplayOrder: order,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category %s: %v", code, err)
	}
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, p *models.SafetyProduct) *models.SafetyProduct {
	t.Helper()
	if p.StockStatus == "" {
		p.StockStatus = models.StockStatusInStock
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to seed product %s: %v", p.Name, err)
	}
	return p
}
