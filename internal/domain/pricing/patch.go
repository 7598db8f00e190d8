package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
)

// ItemPatch actualización parcial de una línea; nil = sin cambio.
type ItemPatch struct {
	Description *string          `json:"description,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Gram        *decimal.Decimal `json:"gram,omitempty"`
	BuybackRate *decimal.Decimal `json:"buyback_rate,omitempty"`
}

func (p ItemPatch) touchesRegular() bool { return p.Quantity != nil || p.Price != nil }
func (p ItemPatch) touchesBuyback() bool { return p.Gram != nil || p.BuybackRate != nil }

// Apply fusiona el patch sobre la línea y revalida. Conserva id y modo:
// tocar campos del otro modo devuelve domain.ErrIncompatibleMode.
func Apply(item entity.Item, p ItemPatch) (entity.Item, error) {
	desc := item.ItemDescription()
	if p.Description != nil {
		desc = *p.Description
	}

	switch v := item.(type) {
	case entity.RegularItem:
		if p.touchesBuyback() {
			return nil, fmt.Errorf("%w: el ítem %s es regular", domain.ErrIncompatibleMode, v.ID)
		}
		q, price := v.Quantity, v.Price
		if p.Quantity != nil {
			q = *p.Quantity
		}
		if p.Price != nil {
			price = *p.Price
		}
		return Build(ItemInput{Mode: entity.ModeRegular, Description: desc, Quantity: &q, Price: &price}, v.ID)
	case entity.BuybackItem:
		if p.touchesRegular() {
			return nil, fmt.Errorf("%w: el ítem %s es de recompra", domain.ErrIncompatibleMode, v.ID)
		}
		g, rate := v.Gram, v.BuybackRate
		if p.Gram != nil {
			g = *p.Gram
		}
		if p.BuybackRate != nil {
			rate = *p.BuybackRate
		}
		return Build(ItemInput{Mode: entity.ModeBuyback, Description: desc, Gram: &g, BuybackRate: &rate}, v.ID)
	default:
		return nil, fmt.Errorf("pricing: tipo de ítem desconocido %T", item)
	}
}
