package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type auditRepository struct {
	q DBTX
}

func NewAuditRepository(q DBTX) repository.AuditRepository {
	return &auditRepository{q: q}
}

func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedOn = time.Now()
	query := `INSERT INTO audit_log (id, action, entity, entity_id, actor_id, old_value, new_value, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.ExecContext(ctx, query,
		entry.ID, entry.Action, entry.Entity, entry.EntityID, entry.ActorID,
		nullableJSON(entry.OldValue), nullableJSON(entry.NewValue), entry.CreatedOn)
	return err
}

// nullableJSON maps an absent value to NULL so the jsonb column never sees an
// empty string.
func nullableJSON(s string) any {
	if s == "" {
		return nil
	}
	return s
}
