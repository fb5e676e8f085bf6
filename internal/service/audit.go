package service

import (
	"context"
	"encoding/json"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

// writeAudit records a mutation after it has committed. Audit failures are
// logged and swallowed; they never fail the operation they describe.
func writeAudit(ctx context.Context, store repository.Store, action, entity string, entityID, actorID int64, oldValue, newValue any) {
	entry := &domain.AuditEntry{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		ActorID:  actorID,
		OldValue: marshalAudit(oldValue),
		NewValue: marshalAudit(newValue),
	}
	if err := store.Audit().Create(ctx, entry); err != nil {
		logger.Warn("Audit write failed", "action", action, "entity", entity, "entity_id", entityID, "error", err)
	}
}

func marshalAudit(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
