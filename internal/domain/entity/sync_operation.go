package entity

import (
	"encoding/json"
	"time"
)

// SyncAction acción hacia el servicio remoto.
type SyncAction string

const (
	SyncUpsert SyncAction = "upsert"
	SyncDelete SyncAction = "delete"
)

// EntityTypeInvoice tipo de entidad de las operaciones de factura.
const EntityTypeInvoice = "invoice"

// SyncOperation entrada del outbox. Data lleva la factura serializada en upserts.
type SyncOperation struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"owner_id"`
	Action        SyncAction      `json:"action"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	Data          json.RawMessage `json:"data,omitempty"`
	EnqueuedAt    time.Time       `json:"enqueued_at"`
	Attempts      int             `json:"attempts"`
	NextAttemptAt time.Time       `json:"next_attempt_at"`
	LastError     string          `json:"last_error,omitempty"`
	// Blocked: rechazo terminal (cuota, dueño ajeno); no se reintenta hasta RetryBlocked.
	Blocked bool `json:"blocked,omitempty"`
}
