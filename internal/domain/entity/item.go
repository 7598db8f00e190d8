package entity

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemMode modo de precio de una línea. Todas las líneas de una factura comparten modo.
type ItemMode string

const (
	ModeRegular ItemMode = "regular" // cantidad × precio
	ModeBuyback ItemMode = "buyback" // gramos × tarifa de recompra
)

// Valid indica si el modo es conocido.
func (m ItemMode) Valid() bool {
	return m == ModeRegular || m == ModeBuyback
}

// Item línea de factura. Es una unión cerrada: solo RegularItem y BuybackItem la implementan.
type Item interface {
	ItemID() string
	ItemDescription() string
	Mode() ItemMode
	// LineAmount importe derivado de la línea, ya redondeado con RoundMoney.
	LineAmount() decimal.Decimal
	sealed()
}

// RegularItem línea en modo regular.
type RegularItem struct {
	ID          string
	Description string
	Quantity    int
	Price       decimal.Decimal
}

func (i RegularItem) ItemID() string          { return i.ID }
func (i RegularItem) ItemDescription() string { return i.Description }
func (i RegularItem) Mode() ItemMode          { return ModeRegular }
func (RegularItem) sealed()                   {}

// LineAmount subtotal = quantity × price.
func (i RegularItem) LineAmount() decimal.Decimal {
	return RoundMoney(i.Price.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

// BuybackItem línea en modo recompra (oro por gramo).
type BuybackItem struct {
	ID          string
	Description string
	Gram        decimal.Decimal
	BuybackRate decimal.Decimal
}

func (i BuybackItem) ItemID() string          { return i.ID }
func (i BuybackItem) ItemDescription() string { return i.Description }
func (i BuybackItem) Mode() ItemMode          { return ModeBuyback }
func (BuybackItem) sealed()                   {}

// LineAmount total = gram × buyback_rate.
func (i BuybackItem) LineAmount() decimal.Decimal {
	return RoundMoney(i.Gram.Mul(i.BuybackRate))
}

// Items secuencia ordenada de líneas (orden de impresión) con codificación JSON discriminada.
type Items []Item

// itemJSON forma en el cable: solo se emiten los campos del modo activo.
type itemJSON struct {
	ID          string           `json:"id"`
	Mode        ItemMode         `json:"mode"`
	Description string           `json:"description"`
	Quantity    *int             `json:"quantity,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Subtotal    *decimal.Decimal `json:"subtotal,omitempty"`
	Gram        *decimal.Decimal `json:"gram,omitempty"`
	BuybackRate *decimal.Decimal `json:"buyback_rate,omitempty"`
	Total       *decimal.Decimal `json:"total,omitempty"`
}

// MarshalJSON codifica cada línea con su etiqueta de modo.
func (items Items) MarshalJSON() ([]byte, error) {
	out := make([]itemJSON, 0, len(items))
	for _, it := range items {
		amount := it.LineAmount()
		switch v := it.(type) {
		case RegularItem:
			q, p := v.Quantity, v.Price
			out = append(out, itemJSON{ID: v.ID, Mode: ModeRegular, Description: v.Description,
				Quantity: &q, Price: &p, Subtotal: &amount})
		case BuybackItem:
			g, r := v.Gram, v.BuybackRate
			out = append(out, itemJSON{ID: v.ID, Mode: ModeBuyback, Description: v.Description,
				Gram: &g, BuybackRate: &r, Total: &amount})
		default:
			return nil, fmt.Errorf("item: tipo desconocido %T", it)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodifica líneas etiquetadas; los importes derivados se ignoran y se recalculan.
func (items *Items) UnmarshalJSON(data []byte) error {
	var raw []itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Items, 0, len(raw))
	for idx, r := range raw {
		switch r.Mode {
		case ModeRegular:
			if r.Quantity == nil || r.Price == nil {
				return fmt.Errorf("item %d: quantity y price requeridos en modo regular", idx)
			}
			out = append(out, RegularItem{ID: r.ID, Description: r.Description, Quantity: *r.Quantity, Price: *r.Price})
		case ModeBuyback:
			if r.Gram == nil || r.BuybackRate == nil {
				return fmt.Errorf("item %d: gram y buyback_rate requeridos en modo buyback", idx)
			}
			out = append(out, BuybackItem{ID: r.ID, Description: r.Description, Gram: *r.Gram, BuybackRate: *r.BuybackRate})
		default:
			return fmt.Errorf("item %d: modo desconocido %q", idx, r.Mode)
		}
	}
	*items = out
	return nil
}

// Mode devuelve el modo de las líneas, o "" si no hay ninguna.
func (items Items) Mode() ItemMode {
	if len(items) == 0 {
		return ""
	}
	return items[0].Mode()
}

// IDs ids en orden.
func (items Items) IDs() []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ItemID()
	}
	return ids
}

// Index posición de la línea con ese id, o -1.
func (items Items) Index(id string) int {
	for i, it := range items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

// Clone copia la secuencia (las variantes son valores, basta copiar el slice).
func (items Items) Clone() Items {
	if items == nil {
		return nil
	}
	out := make(Items, len(items))
	copy(out, items)
	return out
}
