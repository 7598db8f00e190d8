package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/totals"
)

func TestMoney_SeparadorDeMiles(t *testing.T) {
	g := NewMarotoRenderer(Options{})
	assert.Equal(t, "Rp 1.000.000", g.money(decimal.NewFromInt(1_000_000)))
	assert.Equal(t, "Rp 25.000", g.money(decimal.NewFromInt(25000)))
	assert.Equal(t, "Rp 0", g.money(decimal.Zero))
}

func TestGrams_ConDecimales(t *testing.T) {
	g := NewMarotoRenderer(Options{})
	assert.Equal(t, "2,5", g.grams(decimal.RequireFromString("2.5")))
}

func TestRenderInvoice_GeneraPDF(t *testing.T) {
	inv := entity.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-011125-88A60EE2-001",
		InvoiceDate:   time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		Customer:      entity.CustomerSnapshot{Name: "Ana María", Phone: "3001234567", Category: "VIP"},
		Mode:          entity.ModeBuyback,
		Items: entity.Items{
			entity.BuybackItem{ID: "g", Description: "Oro 18k", Gram: decimal.NewFromInt(5), BuybackRate: decimal.NewFromInt(900000)},
		},
		ShippingCost: decimal.Zero,
		Note:         "Entrega en tienda",
		Status:       entity.StatusCompleted,
	}
	totals.Recompute(&inv)

	out, err := NewMarotoRenderer(Options{BusinessName: "Toko Emas"}).RenderInvoice(context.Background(), inv, totals.Of(inv))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}
