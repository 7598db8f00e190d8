package repository

import (
	"context"
	"time"

	"github.com/jhoicas/invoicer/internal/domain/entity"
)

// InvoiceFilter filtro de listado remoto.
type InvoiceFilter struct {
	OwnerID string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// RemoteInvoiceService puerto del servicio remoto de facturas.
// Upsert y Delete son idempotentes por id. Upsert devuelve domain.ErrLimitReached
// cuando el plan del dueño agotó su cuota del periodo.
type RemoteInvoiceService interface {
	Upsert(ctx context.Context, invoice entity.Invoice) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, filter InvoiceFilter) ([]entity.Invoice, error)
	SequenceSource
}

// SequenceSource contador autoritativo por dueño y día.
type SequenceSource interface {
	NextSequence(ctx context.Context, ownerID, dateKey string) (int, error)
}
