package billing

import (
	"context"

	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/totals"
)

// InvoiceRenderer genera la representación imprimible de una factura completada.
// Recibe los totales ya calculados; nunca recalcula importes.
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, inv entity.Invoice, t totals.Totals) ([]byte, error)
}

// CompletedSource fuente de facturas completadas (el Store de la sesión).
type CompletedSource interface {
	CompletedByID(id string) (entity.Invoice, bool)
}
