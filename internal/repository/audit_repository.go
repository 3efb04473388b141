package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joeylife94/boram-safety/internal/models"
	"gorm.io/gorm"
)

const (
	// NoChangesSummary is the summary recorded when old and new snapshots
	// are identical or both absent.
	NoChangesSummary = "no changes"

	// maxSummaryLength matches the changes_summary column size.
	maxSummaryLength = 500

	// DefaultHistoryLimit caps history queries that do not supply a limit.
	DefaultHistoryLimit = 50
)

// AuditRepository persists and queries the append-only change log.
// Entries are never updated or deleted once written.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// RecordChange validates and persists one audit entry. Persistence errors
// propagate to the caller; use RecordChangeTx when the entry must commit
// atomically with the mutation it records.
func (r *AuditRepository) RecordChange(ctx context.Context, input models.RecordChangeInput) (*models.AuditLog, error) {
	return r.RecordChangeTx(r.db.WithContext(ctx), input)
}

// RecordChangeTx persists one audit entry on the supplied transaction so
// that the entity mutation and its audit record share a commit boundary.
func (r *AuditRepository) RecordChangeTx(tx *gorm.DB, input models.RecordChangeInput) (*models.AuditLog, error) {
	if !input.EntityType.Valid() {
		return nil, &ValidationError{Field: "entityType", Message: fmt.Sprintf("unknown entity type %q", input.EntityType)}
	}
	if !input.Action.Valid() {
		return nil, &ValidationError{Field: "action", Message: fmt.Sprintf("unknown action %q", input.Action)}
	}
	if input.EntityID == nil && !input.Action.IsBulk() {
		return nil, &ValidationError{Field: "entityId", Message: "entity id is required for non-bulk actions"}
	}

	oldJSON, err := marshalSnapshot(input.OldValues)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize old values: %w", err)
	}
	newJSON, err := marshalSnapshot(input.NewValues)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize new values: %w", err)
	}

	summary := GenerateChangesSummary(input.OldValues, input.NewValues)
	if input.Summary != nil && *input.Summary != "" {
		summary = *input.Summary
	}
	summary = truncateSummary(summary)

	entry := &models.AuditLog{
		EntityType:     input.EntityType,
		EntityID:       input.EntityID,
		Action:         input.Action,
		OldValues:      oldJSON,
		NewValues:      newJSON,
		ChangesSummary: summary,
		UserID:         input.Provenance.UserID,
		UserName:       input.Provenance.UserName,
		IPAddress:      input.Provenance.IPAddress,
		UserAgent:      input.Provenance.UserAgent,
	}

	if err := tx.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to write audit entry: %w", err)
	}
	return entry, nil
}

// QueryHistory returns audit entries matching the filter, newest first,
// plus the total count of matching rows before pagination.
func (r *AuditRepository) QueryHistory(ctx context.Context, filter models.AuditLogFilter) ([]models.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var entries []models.AuditLog
	err := query.Order("created_at DESC, id DESC").
		Offset(filter.Skip).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// EntityHistory returns the change history of one specific entity,
// newest first, capped at limit.
func (r *AuditRepository) EntityHistory(ctx context.Context, entityType models.AuditEntityType, entityID int64, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var entries []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RecentActivity returns the globally most recent audit entries, capped
// at limit. Feeds the admin dashboard activity widget.
func (r *AuditRepository) RecentActivity(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 20
	}

	var entries []models.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// truncateSummary caps a summary at the changes_summary column size,
// cutting on a rune boundary so multi-byte text (arrows, Korean names)
// is never split into invalid UTF-8.
func truncateSummary(summary string) string {
	if len(summary) <= maxSummaryLength {
		return summary
	}
	cut := maxSummaryLength - 3
	for cut > 0 && !utf8.RuneStart(summary[cut]) {
		cut--
	}
	return summary[:cut] + "..."
}

// marshalSnapshot serializes a snapshot to canonical JSON (map keys are
// emitted sorted). A nil or empty snapshot stores NULL.
func marshalSnapshot(s models.Snapshot) (*string, error) {
	if len(s) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	text := string(data)
	return &text, nil
}

// GenerateChangesSummary renders a human-readable description of what
// changed between two snapshots. It is a pure function: the output
// depends only on its inputs, with keys emitted in sorted order.
//
// Every key whose value differs between the maps (a missing side counts
// as different) produces one "key: old → new" fragment; fragments are
// joined with ", ". Identical snapshots yield NoChangesSummary.
func GenerateChangesSummary(oldValues, newValues models.Snapshot) string {
	keys := make([]string, 0, len(oldValues)+len(newValues))
	seen := make(map[string]bool, len(oldValues)+len(newValues))
	for key := range oldValues {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for key := range newValues {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var changes []string
	for _, key := range keys {
		oldValue := oldValues[key]
		newValue := newValues[key]
		if snapshotValuesEqual(oldValue, newValue) {
			continue
		}
		changes = append(changes, fmt.Sprintf("%s: %s → %s", key,
			formatSnapshotValue(key, oldValue), formatSnapshotValue(key, newValue)))
	}

	if len(changes) == 0 {
		return NoChangesSummary
	}
	return strings.Join(changes, ", ")
}

// snapshotValuesEqual compares raw snapshot values. Numbers are equal
// when they encode the same value regardless of Go type (snapshots
// round-trip through JSON, which decodes every number as float64), but a
// string is never equal to a number or to an absent value, so "3" vs 3
// and "None" vs nil both count as changes.
func snapshotValuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aok := toFloat64(a); aok {
		bf, bok := toFloat64(b)
		return bok && af == bf
	}
	if _, bok := toFloat64(b); bok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// formatSnapshotValue renders a snapshot value for the summary. The
// featured flag gets a label pair instead of raw booleans; absent values
// render as "None" to match the stored snapshot convention.
func formatSnapshotValue(key string, value interface{}) string {
	if key == "is_featured" {
		if b, ok := value.(bool); ok {
			if b {
				return "featured"
			}
			return "normal"
		}
	}

	switch v := value.(type) {
	case nil:
		return "None"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
