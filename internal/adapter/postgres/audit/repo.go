// Package audit implements the append-only audit trail repository.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookstore-orm/backend/internal/adapter/postgres"
	"github.com/bookstore-orm/backend/internal/domain"
)

const insertSQL = `
INSERT INTO audit_log (entity_type, entity_id, action, changes)
VALUES ($1, $2, $3, $4)`

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Log appends one audit record. Call it inside the same transaction as the
// mutation it describes so the trail never diverges from the data.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var changes []byte
	if record.Changes != nil {
		var err error
		changes, err = json.Marshal(record.Changes)
		if err != nil {
			return fmt.Errorf("marshal audit changes: %w", err)
		}
	}

	_, err := q.Exec(ctx, insertSQL, record.EntityType, record.EntityID, record.Action, changes)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}

	return nil
}
