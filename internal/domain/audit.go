package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit entity types.
const (
	EntityTypeBook = "book"
	EntityTypeUser = "user"
	EntityTypeSale = "sale"
)

// Audit actions.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AuditRecord is one row of the append-only audit trail. Records are written
// in the same transaction as the mutation they describe.
type AuditRecord struct {
	ID         int64
	EntityType string
	EntityID   *uuid.UUID
	Action     string
	Changes    map[string]any
	CreatedAt  time.Time
}
