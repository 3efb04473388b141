package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

// Admin audit queries reject malformed filters outright, unlike the
// public search path which skips them and reports the skip.
func TestGetAuditLogsRejectsMalformedFilters(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad entity type", "entityType=WAREHOUSE"},
		{"bad entity id", "entityId=abc"},
		{"bad action", "action=ARCHIVE"},
		{"bad date", "dateFrom=yesterday"},
	}

	h := NewAuditHandler(nil, 20, 100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext(t, http.MethodGet, "/api/admin/audit-logs?"+tt.query)

			h.GetAuditLogs(c)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestParseSearchRequestLeniency(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantIgnored []string
	}{
		{
			name:        "all filters valid",
			query:       "q=helmet&minPrice=1000&maxPrice=20000&stockStatus=in_stock&isFeatured=true&dateFrom=2026-01-01",
			wantIgnored: []string{},
		},
		{
			name:        "malformed numeric filters are skipped",
			query:       "minPrice=cheap&maxPrice=9000",
			wantIgnored: []string{"minPrice"},
		},
		{
			name:        "unknown stock status is skipped",
			query:       "stockStatus=plenty",
			wantIgnored: []string{"stockStatus"},
		},
		{
			name:        "bad boolean and date are both reported",
			query:       "isFeatured=maybe&dateFrom=yesterday",
			wantIgnored: []string{"isFeatured", "dateFrom"},
		},
		{
			name:        "bad category id is skipped",
			query:       "categoryId=helmet",
			wantIgnored: []string{"categoryId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext(t, http.MethodGet, "/api/products/search?"+tt.query)

			req, ignored := parseSearchRequest(c, 20, 100)

			if len(ignored) != len(tt.wantIgnored) {
				t.Fatalf("ignored = %v, want %v", ignored, tt.wantIgnored)
			}
			for i, want := range tt.wantIgnored {
				if ignored[i] != want {
					t.Errorf("ignored[%d] = %q, want %q", i, ignored[i], want)
				}
			}
			if req == nil {
				t.Fatal("request is nil")
			}
		})
	}
}

func TestParseSearchRequestValues(t *testing.T) {
	c, _ := testContext(t, http.MethodGet,
		"/api/products/search?q=glove&category=gloves,boots&minPrice=1000&sortBy=price&sortOrder=desc&skip=40&limit=20")

	req, ignored := parseSearchRequest(c, 20, 100)

	if len(ignored) != 0 {
		t.Errorf("ignored = %v", ignored)
	}
	if req.Query == nil || *req.Query != "glove" {
		t.Errorf("Query = %v", req.Query)
	}
	if len(req.CategoryCodes) != 2 || req.CategoryCodes[0] != "gloves" || req.CategoryCodes[1] != "boots" {
		t.Errorf("CategoryCodes = %v", req.CategoryCodes)
	}
	if req.MinPrice == nil || *req.MinPrice != 1000 {
		t.Errorf("MinPrice = %v", req.MinPrice)
	}
	if req.SortBy != "price" || req.SortOrder != "desc" {
		t.Errorf("sort = %s %s", req.SortBy, req.SortOrder)
	}
	if req.Skip != 40 || req.Limit != 20 {
		t.Errorf("pagination = %d/%d", req.Skip, req.Limit)
	}
}

func TestParsePaginationClamping(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
	}{
		{"defaults", "", 0, 20},
		{"explicit values", "skip=10&limit=50", 10, 50},
		{"limit clamped to max", "limit=500", 0, 100},
		{"negative skip ignored", "skip=-5", 0, 20},
		{"garbage ignored", "skip=abc&limit=xyz", 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext(t, http.MethodGet, "/?"+tt.query)
			skip, limit := parsePagination(c, 20, 100)
			if skip != tt.wantSkip || limit != tt.wantLimit {
				t.Errorf("got %d/%d, want %d/%d", skip, limit, tt.wantSkip, tt.wantLimit)
			}
		})
	}
}

func TestProvenanceFrom(t *testing.T) {
	c, _ := testContext(t, http.MethodPost, "/api/admin/products")
	c.Request.Header.Set("X-User-ID", "admin-1")
	c.Request.Header.Set("X-User-Name", "Kim")
	c.Request.Header.Set("User-Agent", "test-agent/1.0")

	prov := provenanceFrom(c)

	if prov.UserID == nil || *prov.UserID != "admin-1" {
		t.Errorf("UserID = %v", prov.UserID)
	}
	if prov.UserName == nil || *prov.UserName != "Kim" {
		t.Errorf("UserName = %v", prov.UserName)
	}
	if prov.UserAgent == nil || *prov.UserAgent != "test-agent/1.0" {
		t.Errorf("UserAgent = %v", prov.UserAgent)
	}
}

func TestBuildImportRows(t *testing.T) {
	raw := []map[string]string{
		{"_row": "2", "category_code": "helmet", "name": "Good Row", "price": "9900", "is_featured": "true"},
		{"_row": "3", "category_code": "", "name": "Missing Category"},
		{"_row": "4", "category_code": "helmet", "name": "Bad Price", "price": "abc"},
		{"_row": "5", "category_code": "helmet", "name": "Bad Status", "stock_status": "plenty"},
	}

	rows, rowErrors := buildImportRows(raw)

	if len(rows) != 1 {
		t.Fatalf("valid rows = %d, want 1", len(rows))
	}
	if rows[0].Name != "Good Row" || rows[0].Price == nil || *rows[0].Price != 9900 || !rows[0].IsFeatured {
		t.Errorf("row = %+v", rows[0])
	}

	if len(rowErrors) != 3 {
		t.Fatalf("errors = %+v", rowErrors)
	}
	wantColumns := map[int]string{3: "category_code", 4: "price", 5: "stock_status"}
	for _, e := range rowErrors {
		if wantColumns[e.Row] != e.Column {
			t.Errorf("row %d: column = %q, want %q", e.Row, e.Column, wantColumns[e.Row])
		}
	}
}
