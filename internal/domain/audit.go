package domain

import "time"

// AuditEntry is a fire-and-forget record of a mutation. A failed audit write
// never fails the operation it describes.
type AuditEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  int64     `json:"entity_id"`
	ActorID   int64     `json:"actor_id"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	CreatedOn time.Time `json:"created_on"`
}
