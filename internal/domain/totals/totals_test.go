package totals_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/totals"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func regularItems() entity.Items {
	return entity.Items{
		entity.RegularItem{ID: "a", Description: "Collar", Quantity: 2, Price: d(50000)},
		entity.RegularItem{ID: "b", Description: "Aretes", Quantity: 1, Price: d(20000)},
	}
}

func TestCompute_SinImpuesto(t *testing.T) {
	got := totals.Compute(regularItems(), d(10000), false, decimal.Zero)

	assert.True(t, got.Subtotal.Equal(d(120000)), "subtotal: %s", got.Subtotal)
	assert.True(t, got.TaxAmount.IsZero())
	assert.True(t, got.Total.Equal(d(130000)), "total: %s", got.Total)
}

func TestCompute_ConImpuestoDiezPorCiento(t *testing.T) {
	got := totals.Compute(regularItems(), d(10000), true, d(10))

	assert.True(t, got.TaxAmount.Equal(d(12000)), "impuesto: %s", got.TaxAmount)
	assert.True(t, got.Total.Equal(d(142000)), "total: %s", got.Total)
}

func TestCompute_ImpuestoNoAplicaAlEnvio(t *testing.T) {
	got := totals.Compute(regularItems(), d(1_000_000), true, d(10))
	assert.True(t, got.TaxAmount.Equal(d(12000)))
}

func TestCompute_Recompra(t *testing.T) {
	items := entity.Items{entity.BuybackItem{ID: "g", Description: "Oro 18k", Gram: d(5), BuybackRate: d(900000)}}

	got := totals.Compute(items, decimal.Zero, false, decimal.Zero)

	assert.True(t, got.Subtotal.Equal(d(4_500_000)), "subtotal: %s", got.Subtotal)
	assert.True(t, got.Total.Equal(d(4_500_000)))
}

func TestCompute_SinItems(t *testing.T) {
	got := totals.Compute(nil, d(5000), true, d(11))
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.TaxAmount.IsZero())
	assert.True(t, got.Total.Equal(d(5000)))
}

func TestCompute_RedondeoMitadHaciaArriba(t *testing.T) {
	// 1250 × 11% = 137.5 → 138
	items := entity.Items{entity.RegularItem{ID: "x", Description: "Dije", Quantity: 1, Price: d(1250)}}
	got := totals.Compute(items, decimal.Zero, true, d(11))
	assert.True(t, got.TaxAmount.Equal(d(138)), "impuesto: %s", got.TaxAmount)
}

func TestCompute_TotalEsSumaDeLineasMasEnvio(t *testing.T) {
	cases := []struct {
		name     string
		items    entity.Items
		shipping int64
	}{
		{"vacío", entity.Items{}, 0},
		{"una línea", entity.Items{entity.RegularItem{ID: "1", Description: "x", Quantity: 3, Price: d(333)}}, 7},
		{"recompra decimal", entity.Items{entity.BuybackItem{ID: "1", Description: "x", Gram: decimal.RequireFromString("2.5"), BuybackRate: d(1001)}}, 15000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sum := decimal.Zero
			for _, it := range tc.items {
				sum = sum.Add(it.LineAmount())
			}
			got := totals.Compute(tc.items, d(tc.shipping), false, decimal.Zero)
			assert.True(t, got.Total.Equal(sum.Add(d(tc.shipping))))
		})
	}
}

func TestCompute_ImpuestoEsAditivo(t *testing.T) {
	for _, pct := range []int64{0, 1, 10, 19, 50, 100} {
		got := totals.Compute(regularItems(), d(10000), true, d(pct))
		want := got.Subtotal.Add(d(10000)).Add(entity.RoundMoney(got.Subtotal.Mul(d(pct)).Div(d(100))))
		assert.True(t, got.Total.Equal(want), "pct=%d total=%s", pct, got.Total)
	}
}

func TestRecompute_Idempotente(t *testing.T) {
	inv := entity.Invoice{Items: regularItems(), ShippingCost: d(10000), TaxEnabled: true, TaxPercentage: d(10)}

	first := totals.Recompute(&inv)
	second := totals.Recompute(&inv)

	assert.Equal(t, first, second)
	assert.True(t, inv.Total.Equal(d(142000)))
}

func TestOf_NoRecalcula(t *testing.T) {
	inv := entity.Invoice{Items: regularItems(), Subtotal: d(1), ShippingCost: d(2), TaxAmount: d(3), Total: d(6)}
	got := totals.Of(inv)
	assert.True(t, got.Total.Equal(d(6)))
	assert.True(t, got.Subtotal.Equal(d(1)))
}
