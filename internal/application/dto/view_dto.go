package dto

import (
	"github.com/jhoicas/invoicer/internal/domain/entity"
)

// ViewResponse pantalla actual y, según el caso, el borrador o el listado.
type ViewResponse struct {
	State   string          `json:"state"`
	Invoice *entity.Invoice `json:"invoice,omitempty"`
	Home    *HomeResponse   `json:"home,omitempty"`
	Warning string          `json:"warning,omitempty"`
}

// HomeResponse listado de completadas con versión para invalidar caché.
type HomeResponse struct {
	Invoices []entity.Invoice `json:"invoices"`
	Version  int              `json:"version"`
}

// SyncStatusResponse estado de la cola de sincronización.
type SyncStatusResponse struct {
	Pending    int                    `json:"pending"`
	Queued     int                    `json:"queued"`
	Offline    bool                   `json:"offline"`
	Operations []SyncOperationSummary `json:"operations"`
	Notices    []entity.Notice        `json:"notices,omitempty"`
}

// SyncOperationSummary entrada de la cola sin el payload.
type SyncOperationSummary struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	EntityID    string `json:"entity_id"`
	Attempts    int    `json:"attempts"`
	Blocked     bool   `json:"blocked"`
	LastError   string `json:"last_error,omitempty"`
	NextAttempt string `json:"next_attempt_at"`
}

// DrainResponse resultado de POST /api/sync/drain.
type DrainResponse struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
	Blocked   int `json:"blocked"`
	Remaining int `json:"remaining"`
}

// RetryResponse resultado de POST /api/sync/retry.
type RetryResponse struct {
	Unblocked int `json:"unblocked"`
}
