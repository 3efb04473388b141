package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/joeylife94/boram-safety/internal/metrics"
	"github.com/joeylife94/boram-safety/internal/models"
	"github.com/joeylife94/boram-safety/internal/repository"
)

const (
	productsSheetName = "Products"
	maxImportRows     = 5000
)

type ImportHandler struct {
	repo            *repository.CatalogRepository
	defaultPageSize int
	maxPageSize     int
}

func NewImportHandler(repo *repository.CatalogRepository, defaultPageSize, maxPageSize int) *ImportHandler {
	return &ImportHandler{
		repo:            repo,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// GetImportTemplate returns the import template definition or file
// @Summary Download import template
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/products/import/template [get]
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	columns := models.ProductImportColumns()

	switch format {
	case "csv":
		h.writeCSVTemplate(c, columns)
	case "xlsx":
		h.writeXLSXTemplate(c, columns)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"columns": columns,
		})
	}
}

func (h *ImportHandler) writeCSVTemplate(c *gin.Context, columns []models.ImportTemplateColumn) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=products_import_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}
	writer.Write(headers)
}

func (h *ImportHandler) writeXLSXTemplate(c *gin.Context, columns []models.ImportTemplateColumn) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", productsSheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Name
		if col.Required {
			headerText = col.Name + " *"
		}
		f.SetCellValue(productsSheetName, cell, headerText)

		if col.Required {
			f.SetCellStyle(productsSheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(productsSheetName, cell, cell, headerStyle)
		}

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(productsSheetName, colName, colName, 20)
	}

	f.NewSheet("Instructions")
	f.SetCellValue("Instructions", "A1", "Product Import Instructions")
	f.SetCellValue("Instructions", "A3", "Categories must exist before import; rows with an unknown category_code are rejected individually.")
	f.SetCellValue("Instructions", "A4", "Set replaceAll=true on upload to wipe the existing catalog before importing.")

	f.SetCellValue("Instructions", "A6", "Column Definitions:")
	f.SetCellValue("Instructions", "A7", "Column")
	f.SetCellValue("Instructions", "B7", "Description")
	f.SetCellValue("Instructions", "C7", "Required")
	f.SetCellValue("Instructions", "D7", "Type")
	f.SetCellValue("Instructions", "E7", "Example")

	for i, col := range columns {
		row := i + 8
		f.SetCellValue("Instructions", fmt.Sprintf("A%d", row), col.Name)
		f.SetCellValue("Instructions", fmt.Sprintf("B%d", row), col.Description)
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		f.SetCellValue("Instructions", fmt.Sprintf("C%d", row), required)
		f.SetCellValue("Instructions", fmt.Sprintf("D%d", row), col.Type)
		f.SetCellValue("Instructions", fmt.Sprintf("E%d", row), col.Example)
	}

	f.SetColWidth("Instructions", "A", "A", 25)
	f.SetColWidth("Instructions", "B", "B", 60)
	f.SetColWidth("Instructions", "C", "C", 15)
	f.SetColWidth("Instructions", "D", "D", 15)
	f.SetColWidth("Instructions", "E", "E", 40)

	sheetIdx, _ := f.GetSheetIndex(productsSheetName)
	f.SetActiveSheet(sheetIdx)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=products_import_template.xlsx")

	f.Write(c.Writer)
}

// ImportProducts imports products from a CSV or Excel upload
// @Summary Import products from spreadsheet
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/products/import [post]
func (h *ImportHandler) ImportProducts(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "FILE_REQUIRED", "Please upload a CSV or Excel file")
		return
	}
	defer file.Close()

	replaceAll := c.DefaultPostForm("replaceAll", "false") == "true"

	filename := strings.ToLower(header.Filename)
	var rawRows []map[string]string
	switch {
	case strings.HasSuffix(filename, ".csv"):
		rawRows, err = parseCSVRows(file)
	case strings.HasSuffix(filename, ".xlsx"):
		rawRows, err = parseXLSXRows(file)
	default:
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "Only CSV and XLSX files are supported")
		return
	}
	if err != nil {
		respondError(c, http.StatusBadRequest, "PARSE_ERROR", err.Error())
		return
	}
	if len(rawRows) == 0 {
		respondError(c, http.StatusBadRequest, "EMPTY_FILE", "The file contains no data rows")
		return
	}
	if len(rawRows) > maxImportRows {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR",
			fmt.Sprintf("File exceeds the %d row import limit", maxImportRows))
		return
	}

	rows, rowErrors := buildImportRows(rawRows)
	if len(rows) == 0 {
		c.JSON(http.StatusOK, models.ImportResult{
			Success:     false,
			TotalRows:   len(rawRows),
			FailedCount: len(rowErrors),
			Errors:      rowErrors,
		})
		return
	}

	result, err := h.repo.ImportProducts(c.Request.Context(), rows, replaceAll, provenanceFrom(c))
	if err != nil {
		respondRepoError(c, err)
		return
	}

	// Merge parse-stage failures into the persistence result
	result.TotalRows = len(rawRows)
	result.Errors = append(rowErrors, result.Errors...)
	result.FailedCount = len(result.Errors)
	result.Success = result.FailedCount == 0

	metrics.ImportRowsTotal.WithLabelValues("created").Add(float64(result.CreatedCount))
	metrics.ImportRowsTotal.WithLabelValues("failed").Add(float64(result.FailedCount))
	logrus.WithFields(logrus.Fields{
		"file":    header.Filename,
		"created": result.CreatedCount,
		"failed":  result.FailedCount,
	}).Info("Product import completed")

	c.JSON(http.StatusOK, result)
}

// buildImportRows validates raw spreadsheet rows and converts the valid
// ones into typed import rows. Invalid rows produce per-row errors and
// are skipped.
func buildImportRows(rawRows []map[string]string) ([]models.ImportProductRow, []models.ImportRowError) {
	rows := make([]models.ImportProductRow, 0, len(rawRows))
	rowErrors := make([]models.ImportRowError, 0)

	for _, raw := range rawRows {
		rowNum, _ := strconv.Atoi(raw["_row"])

		valid := true
		if raw["category_code"] == "" {
			rowErrors = append(rowErrors, models.ImportRowError{Row: rowNum, Column: "category_code", Message: "category_code is required"})
			valid = false
		}
		if raw["name"] == "" {
			rowErrors = append(rowErrors, models.ImportRowError{Row: rowNum, Column: "name", Message: "name is required"})
			valid = false
		}

		row := models.ImportProductRow{
			Row:          rowNum,
			CategoryCode: raw["category_code"],
			Name:         raw["name"],
			ModelNumber:  optionalString(raw["model_number"]),
			Description:  optionalString(raw["description"]),
		}

		if v := raw["price"]; v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil || price < 0 {
				rowErrors = append(rowErrors, models.ImportRowError{Row: rowNum, Column: "price", Message: "price must be a non-negative number"})
				valid = false
			} else {
				row.Price = &price
			}
		}
		row.Specifications = optionalString(raw["specifications"])
		if v := raw["stock_status"]; v != "" {
			if !models.ValidStockStatus(v) {
				rowErrors = append(rowErrors, models.ImportRowError{Row: rowNum, Column: "stock_status", Message: "stock_status must be in_stock, out_of_stock or backorder"})
				valid = false
			} else {
				row.StockStatus = v
			}
		}
		row.FilePath = optionalString(raw["image_path"])
		if v := raw["display_order"]; v != "" {
			order, err := strconv.Atoi(v)
			if err != nil {
				rowErrors = append(rowErrors, models.ImportRowError{Row: rowNum, Column: "display_order", Message: "display_order must be an integer"})
				valid = false
			} else {
				row.DisplayOrder = order
			}
		}
		if v := raw["is_featured"]; v != "" {
			featured, err := strconv.ParseBool(v)
			if err != nil {
				rowErrors = append(rowErrors, models.ImportRowError{Row: rowNum, Column: "is_featured", Message: "is_featured must be true or false"})
				valid = false
			} else {
				row.IsFeatured = featured
			}
		}

		if valid {
			rows = append(rows, row)
		}
	}

	return rows, rowErrors
}

// ExportProducts streams the filtered catalog as a spreadsheet
// @Summary Export products to spreadsheet
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/products/export [get]
func (h *ImportHandler) ExportProducts(c *gin.Context) {
	// Export accepts the same filter parameters as search, unpaginated.
	req, _ := parseSearchRequest(c, h.defaultPageSize, h.maxPageSize)

	items, err := h.repo.ListProductsForExport(c.Request.Context(), req)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	timestamp := time.Now().Format("20060102_150405")

	if format == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=products_%s.csv", timestamp))

		writer := csv.NewWriter(c.Writer)
		defer writer.Flush()

		writer.Write(exportHeaders())
		for _, item := range items {
			writer.Write(exportRecord(item))
		}
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", productsSheetName)

	headers := exportHeaders()
	widths := make([]int, len(headers))
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(productsSheetName, cell, header)
		widths[i] = len(header)
	}
	for rowIdx, item := range items {
		for colIdx, value := range exportRecord(item) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(productsSheetName, cell, value)
			if len(value) > widths[colIdx] {
				widths[colIdx] = len(value)
			}
		}
	}
	for i, width := range widths {
		if width > 50 {
			width = 50
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(productsSheetName, colName, colName, float64(width+2))
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=products_%s.xlsx", timestamp))

	f.Write(c.Writer)
}

func exportHeaders() []string {
	return []string{
		"id", "category_code", "category_name", "name", "model_number",
		"price", "description", "specifications", "stock_status",
		"image_path", "display_order", "is_featured", "created_at",
	}
}

func exportRecord(item models.ProductWithCategory) []string {
	price := ""
	if item.Price != nil {
		price = strconv.FormatFloat(*item.Price, 'f', -1, 64)
	}
	return []string{
		strconv.FormatInt(item.ID, 10),
		item.CategoryCode,
		item.CategoryName,
		item.Name,
		derefString(item.ModelNumber),
		price,
		derefString(item.Description),
		derefString(item.Specifications),
		item.StockStatus,
		derefString(item.FilePath),
		strconv.Itoa(item.DisplayOrder),
		strconv.FormatBool(item.IsFeatured),
		item.CreatedAt.Format(time.RFC3339),
	}
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// optionalString returns nil for empty strings, pointer otherwise
func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// parseCSVRows parses a CSV file into keyed rows
func parseCSVRows(file io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	normalizeHeaders(headers)

	var rows []map[string]string
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}

		row := make(map[string]string)
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(lineNum + 1)
		rows = append(rows, row)
		lineNum++
	}

	return rows, nil
}

// parseXLSXRows parses an Excel file into keyed rows
func parseXLSXRows(file io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, productsSheetName) {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := excelRows[0]
	normalizeHeaders(headers)

	var rows []map[string]string
	for rowIdx, excelRow := range excelRows[1:] {
		row := make(map[string]string)
		for i, value := range excelRow {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(rowIdx + 2)
		rows = append(rows, row)
	}

	return rows, nil
}

func normalizeHeaders(headers []string) {
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(headers[i]))
		headers[i] = strings.TrimSuffix(headers[i], " *")
	}
}
