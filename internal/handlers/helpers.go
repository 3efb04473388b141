package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/joeylife94/boram-safety/internal/models"
	"github.com/joeylife94/boram-safety/internal/repository"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    code,
			Message: message,
		},
	})
}

// respondRepoError maps repository errors to HTTP responses: validation
// failures become 400, missing records 404, anything else 500.
func respondRepoError(c *gin.Context, err error) {
	var vErr *repository.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: vErr.Message,
				Field:   vErr.Field,
			},
		})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Record not found")
		return
	}
	logrus.WithError(err).Error("Request failed")
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
}

// provenanceFrom collects the actor metadata attached to every audit
// entry. User identity arrives via headers set by the admin frontend.
func provenanceFrom(c *gin.Context) models.Provenance {
	prov := models.Provenance{}
	if v := c.GetHeader("X-User-ID"); v != "" {
		prov.UserID = &v
	}
	if v := c.GetHeader("X-User-Name"); v != "" {
		prov.UserName = &v
	}
	if ip := c.ClientIP(); ip != "" {
		prov.IPAddress = &ip
	}
	if ua := c.Request.UserAgent(); ua != "" {
		prov.UserAgent = &ua
	}
	return prov
}

// parsePagination reads skip/limit query parameters, falling back to the
// defaults and clamping limit to the configured maximum. Negative skip
// becomes zero.
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (int, int) {
	skip := 0
	if v := c.Query("skip"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			skip = parsed
		}
	}

	limit := defaultLimit
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return skip, limit
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}
