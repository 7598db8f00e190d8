package billing

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/totals"
)

// ExportUseCase exporta facturas completadas a PDF.
type ExportUseCase struct {
	renderer InvoiceRenderer
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(renderer InvoiceRenderer) *ExportUseCase {
	return &ExportUseCase{renderer: renderer}
}

// ExportPDF genera el PDF de la factura con sus totales almacenados.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no está entre las completadas.
//   - domain.ErrInvalidInput     si la factura sigue en borrador.
func (uc *ExportUseCase) ExportPDF(ctx context.Context, src CompletedSource, id string) ([]byte, string, error) {
	inv, ok := src.CompletedByID(id)
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return uc.Render(ctx, inv)
}

// Render genera el PDF de una factura ya obtenida (p. ej. desde un snapshot en disco).
func (uc *ExportUseCase) Render(ctx context.Context, inv entity.Invoice) ([]byte, string, error) {
	if inv.Status == entity.StatusDraft {
		return nil, "", fmt.Errorf("%w: la factura %s está en borrador", domain.ErrInvalidInput, inv.InvoiceNumber)
	}
	pdf, err := uc.renderer.RenderInvoice(ctx, inv, totals.Of(inv))
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdf, FileName(inv), nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FileName invoice_<número>.pdf, con caracteres no seguros reemplazados.
func FileName(inv entity.Invoice) string {
	number := inv.InvoiceNumber
	if number == "" {
		number = inv.ID
	}
	return "invoice_" + unsafeFileChars.ReplaceAllString(number, "_") + ".pdf"
}
