package models

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // string, number, boolean
	Example     string `json:"example"`
}

// ImportRowError represents an error for a specific spreadsheet row
type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// ImportProductRow is one parsed spreadsheet row awaiting persistence.
// Row keeps the original 1-based spreadsheet position for error reports.
type ImportProductRow struct {
	Row            int
	CategoryCode   string
	Name           string
	ModelNumber    *string
	Price          *float64
	Description    *string
	Specifications *string
	StockStatus    string
	FilePath       *string
	DisplayOrder   int
	IsFeatured     bool
}

// ImportResult represents the outcome of an import operation
type ImportResult struct {
	Success      bool             `json:"success"`
	TotalRows    int              `json:"totalRows"`
	CreatedCount int              `json:"createdCount"`
	FailedCount  int              `json:"failedCount"`
	Errors       []ImportRowError `json:"errors,omitempty"`
	CreatedIDs   []int64          `json:"createdIds,omitempty"`
}

// ProductImportColumns returns the column definitions for product import
func ProductImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "category_code", Description: "Category code (must exist)", Required: true, Type: "string", Example: "helmet"},
		{Name: "name", Description: "Product name", Required: true, Type: "string", Example: "Ventilated Safety Helmet"},
		{Name: "model_number", Description: "Manufacturer model number", Required: false, Type: "string", Example: "SH-301V"},
		{Name: "price", Description: "Unit price", Required: false, Type: "number", Example: "15900"},
		{Name: "description", Description: "Product description", Required: false, Type: "string", Example: ""},
		{Name: "specifications", Description: "Technical specifications", Required: false, Type: "string", Example: "ABS shell, 6-point harness"},
		{Name: "stock_status", Description: "in_stock, out_of_stock or backorder", Required: false, Type: "string", Example: "in_stock"},
		{Name: "image_path", Description: "Image path under /images", Required: false, Type: "string", Example: "/images/products/sh-301v.jpg"},
		{Name: "display_order", Description: "Sort position within category", Required: false, Type: "number", Example: "1"},
		{Name: "is_featured", Description: "true/false featured flag", Required: false, Type: "boolean", Example: "false"},
	}
}
