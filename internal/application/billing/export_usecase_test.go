package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicer/internal/application/billing"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/totals"
)

type rendererMock struct{ mock.Mock }

func (m *rendererMock) RenderInvoice(ctx context.Context, inv entity.Invoice, t totals.Totals) ([]byte, error) {
	args := m.Called(ctx, inv, t)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type source map[string]entity.Invoice

func (s source) CompletedByID(id string) (entity.Invoice, bool) {
	inv, ok := s[id]
	return inv, ok
}

func storedInvoice() entity.Invoice {
	return entity.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-011125-88A60EE2-001",
		Status:        entity.StatusCompleted,
		Items: entity.Items{
			entity.RegularItem{ID: "a", Description: "Collar", Quantity: 2, Price: decimal.NewFromInt(50000)},
		},
		// Totales almacenados a propósito distintos de los recalculables.
		Subtotal:     decimal.NewFromInt(1),
		ShippingCost: decimal.NewFromInt(2),
		TaxAmount:    decimal.NewFromInt(3),
		Total:        decimal.NewFromInt(6),
	}
}

func TestExportPDF_UsaTotalesAlmacenados(t *testing.T) {
	r := &rendererMock{}
	inv := storedInvoice()
	r.On("RenderInvoice", mock.Anything, inv, totals.Of(inv)).Return([]byte("%PDF"), nil)

	pdf, name, err := billing.NewExportUseCase(r).ExportPDF(context.Background(), source{"inv-1": inv}, "inv-1")

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, "invoice_INV-011125-88A60EE2-001.pdf", name)
	r.AssertExpectations(t)
}

func TestExportPDF_NoEncontrada(t *testing.T) {
	_, _, err := billing.NewExportUseCase(&rendererMock{}).ExportPDF(context.Background(), source{}, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportPDF_BorradorRechazado(t *testing.T) {
	inv := storedInvoice()
	inv.Status = entity.StatusDraft
	_, _, err := billing.NewExportUseCase(&rendererMock{}).ExportPDF(context.Background(), source{"inv-1": inv}, "inv-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportPDF_ErrorDelRenderer(t *testing.T) {
	r := &rendererMock{}
	r.On("RenderInvoice", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("fuente no encontrada"))

	_, _, err := billing.NewExportUseCase(r).ExportPDF(context.Background(), source{"inv-1": storedInvoice()}, "inv-1")

	assert.ErrorContains(t, err, "fuente no encontrada")
}

func TestFileName_SinNumeroUsaId(t *testing.T) {
	assert.Equal(t, "invoice_abc_1.pdf", billing.FileName(entity.Invoice{ID: "abc/1"}))
}
