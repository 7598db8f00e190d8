// Package totals calcula los totales derivados de una factura.
// Es un reductor puro: no valida ni recorta valores negativos.
package totals

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoicer/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals resultado del cálculo. Son los únicos importes que se muestran, persisten o renderizan.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Total        decimal.Decimal `json:"total"`
}

// Compute suma los importes de línea; el impuesto se aplica solo al subtotal, nunca al envío.
//
//	subtotal  = Σ lineAmount
//	taxAmount = taxEnabled ? round(subtotal × taxPercentage / 100) : 0
//	total     = subtotal + shipping + taxAmount
func Compute(items entity.Items, shipping decimal.Decimal, taxEnabled bool, taxPercentage decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineAmount())
	}
	tax := decimal.Zero
	if taxEnabled {
		tax = entity.RoundMoney(subtotal.Mul(taxPercentage).Div(hundred))
	}
	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		TaxAmount:    tax,
		Total:        subtotal.Add(shipping).Add(tax),
	}
}

// Recompute escribe en la factura los campos derivados calculados por Compute.
func Recompute(inv *entity.Invoice) Totals {
	t := Compute(inv.Items, inv.ShippingCost, inv.TaxEnabled, inv.TaxPercentage)
	inv.Subtotal = t.Subtotal
	inv.TaxAmount = t.TaxAmount
	inv.Total = t.Total
	return t
}

// Of devuelve los totales ya almacenados en la factura, sin recalcular.
func Of(inv entity.Invoice) Totals {
	return Totals{
		Subtotal:     inv.Subtotal,
		ShippingCost: inv.ShippingCost,
		TaxAmount:    inv.TaxAmount,
		Total:        inv.Total,
	}
}
