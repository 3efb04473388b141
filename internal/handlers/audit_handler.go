package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joeylife94/boram-safety/internal/models"
	"github.com/joeylife94/boram-safety/internal/repository"
)

type AuditHandler struct {
	repo            *repository.AuditRepository
	defaultPageSize int
	maxPageSize     int
}

func NewAuditHandler(repo *repository.AuditRepository, defaultPageSize, maxPageSize int) *AuditHandler {
	return &AuditHandler{
		repo:            repo,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// GetAuditLogs lists change history entries matching the filters
// @Summary Query audit logs
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	filter := models.AuditLogFilter{}

	if v := c.Query("entityType"); v != "" {
		entityType := models.AuditEntityType(v)
		if !entityType.Valid() {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "entityType must be PRODUCT or CATEGORY")
			return
		}
		filter.EntityType = &entityType
	}
	if v := c.Query("entityId"); v != "" {
		entityID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid entityId parameter")
			return
		}
		filter.EntityID = &entityID
	}
	if v := c.Query("action"); v != "" {
		action := models.AuditAction(v)
		if !action.Valid() {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown action value")
			return
		}
		filter.Action = &action
	}
	if v := c.Query("userId"); v != "" {
		filter.UserID = &v
	}
	if v := c.Query("dateFrom"); v != "" {
		t, ok := parseDate(v)
		if !ok {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "dateFrom must be RFC3339 or YYYY-MM-DD")
			return
		}
		filter.DateFrom = &t
	}
	if v := c.Query("dateTo"); v != "" {
		t, ok := parseDate(v)
		if !ok {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "dateTo must be RFC3339 or YYYY-MM-DD")
			return
		}
		filter.DateTo = &t
	}

	filter.Skip, filter.Limit = parsePagination(c, h.defaultPageSize, h.maxPageSize)

	logs, total, err := h.repo.QueryHistory(c.Request.Context(), filter)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuditLogListResponse{
		Success:    true,
		Data:       logs,
		Total:      total,
		Page:       models.PageNumber(filter.Skip, filter.Limit),
		PageSize:   filter.Limit,
		TotalPages: models.TotalPages(total, filter.Limit),
	})
}

// GetEntityHistory lists the change history of one entity
// @Summary Entity change history
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/audit-logs/{entityType}/{entityId} [get]
func (h *AuditHandler) GetEntityHistory(c *gin.Context) {
	entityType := models.AuditEntityType(c.Param("entityType"))
	if !entityType.Valid() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "entityType must be PRODUCT or CATEGORY")
		return
	}

	entityID, ok := parseIDParam(c, "entityId")
	if !ok {
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	logs, err := h.repo.EntityHistory(c.Request.Context(), entityType, entityID, limit)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: logs})
}

// GetRecentActivity lists the newest audit entries across all entities
// @Summary Recent change activity
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/audit-logs/recent [get]
func (h *AuditHandler) GetRecentActivity(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	logs, err := h.repo.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: logs})
}
