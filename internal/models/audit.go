package models

import (
	"time"
)

// AuditEntityType identifies which kind of entity a change was made to.
type AuditEntityType string

const (
	AuditEntityProduct  AuditEntityType = "PRODUCT"
	AuditEntityCategory AuditEntityType = "CATEGORY"
)

// Valid reports whether the entity type is a known value.
func (t AuditEntityType) Valid() bool {
	switch t {
	case AuditEntityProduct, AuditEntityCategory:
		return true
	}
	return false
}

// AuditAction identifies the kind of mutation recorded in an audit entry.
type AuditAction string

const (
	AuditActionCreate     AuditAction = "CREATE"
	AuditActionUpdate     AuditAction = "UPDATE"
	AuditActionDelete     AuditAction = "DELETE"
	AuditActionBulkUpdate AuditAction = "BULK_UPDATE"
	AuditActionBulkDelete AuditAction = "BULK_DELETE"
)

// Valid reports whether the action is a known value.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete,
		AuditActionBulkUpdate, AuditActionBulkDelete:
		return true
	}
	return false
}

// IsBulk reports whether the action targets multiple entities and may
// therefore omit an entity id.
func (a AuditAction) IsBulk() bool {
	return a == AuditActionBulkUpdate || a == AuditActionBulkDelete
}

// Snapshot is a flat field->value capture of an entity at a point in time.
// Values are scalars (string, number, bool) or nil.
type Snapshot map[string]interface{}

// AuditLog is one immutable record of a single mutation event. Rows are
// only ever inserted; nothing in this service updates or deletes them.
type AuditLog struct {
	ID             int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	EntityType     AuditEntityType `json:"entityType" gorm:"size:20;not null;index"`
	EntityID       *int64          `json:"entityId,omitempty" gorm:"index"`
	Action         AuditAction     `json:"action" gorm:"size:20;not null;index"`
	OldValues      *string         `json:"oldValues,omitempty" gorm:"type:text"`
	NewValues      *string         `json:"newValues,omitempty" gorm:"type:text"`
	ChangesSummary string          `json:"changesSummary" gorm:"size:500"`
	UserID         *string         `json:"userId,omitempty" gorm:"size:100;index"`
	UserName       *string         `json:"userName,omitempty" gorm:"size:100"`
	IPAddress      *string         `json:"ipAddress,omitempty" gorm:"size:50"`
	UserAgent      *string         `json:"userAgent,omitempty" gorm:"size:500"`
	CreatedAt      time.Time       `json:"createdAt" gorm:"not null;index"`
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Provenance carries request-level identity metadata for an audit entry.
// All fields are optional; user identity is only present when the admin
// frontend supplies it via headers.
type Provenance struct {
	UserID    *string
	UserName  *string
	IPAddress *string
	UserAgent *string
}

// RecordChangeInput is the input to AuditRepository.RecordChange.
type RecordChangeInput struct {
	EntityType AuditEntityType
	EntityID   *int64
	Action     AuditAction
	OldValues  Snapshot
	NewValues  Snapshot
	Summary    *string
	Provenance Provenance
}

// AuditLogFilter narrows a history query. All supplied fields are ANDed.
type AuditLogFilter struct {
	EntityType *AuditEntityType `json:"entityType,omitempty"`
	EntityID   *int64           `json:"entityId,omitempty"`
	Action     *AuditAction     `json:"action,omitempty"`
	UserID     *string          `json:"userId,omitempty"`
	DateFrom   *time.Time       `json:"dateFrom,omitempty"`
	DateTo     *time.Time       `json:"dateTo,omitempty"`
	Skip       int              `json:"skip"`
	Limit      int              `json:"limit"`
}

// AuditLogListResponse is the paginated history response.
type AuditLogListResponse struct {
	Success    bool       `json:"success"`
	Data       []AuditLog `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}
