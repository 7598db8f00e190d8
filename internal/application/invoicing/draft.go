package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/invoicenumber"
	"github.com/jhoicas/invoicer/internal/domain/pricing"
	"github.com/jhoicas/invoicer/internal/domain/totals"
)

// Campos de factura usados en errores de validación.
const (
	FieldShippingCost  = "shipping_cost"
	FieldTaxPercentage = "tax_percentage"
	FieldInvoiceDate   = "invoice_date"
	FieldItems         = "items"
)

var hundred = decimal.NewFromInt(100)

// InvoicePatch actualización parcial de campos de cabecera; nil = sin cambio.
type InvoicePatch struct {
	Customer      *entity.CustomerSnapshot `json:"customer,omitempty"`
	ShippingCost  *decimal.Decimal         `json:"shipping_cost,omitempty"`
	Note          *string                  `json:"note,omitempty"`
	InvoiceDate   *time.Time               `json:"invoice_date,omitempty"`
	TaxEnabled    *bool                    `json:"tax_enabled,omitempty"`
	TaxPercentage *decimal.Decimal         `json:"tax_percentage,omitempty"`
	Items         *entity.Items            `json:"items,omitempty"`
}

// nextSequence consulta el contador autoritativo.
func (s *Store) nextSequence(ctx context.Context, owner string, date time.Time) (int, error) {
	if s.deps.Sequences == nil {
		return 0, fmt.Errorf("%w: sin contador configurado", domain.ErrSequenceUnavailable)
	}
	seq, err := s.deps.Sequences.NextSequence(ctx, owner, invoicenumber.DateKey(date))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrSequenceUnavailable, err)
	}
	return seq, nil
}

// InitializeNewInvoice crea un borrador nuevo y reemplaza el existente. Confirmar el
// descarte de un borrador sin guardar es responsabilidad de la capa superior.
// Si el contador no responde, el borrador actual se conserva.
func (s *Store) InitializeNewInvoice(ctx context.Context) (entity.Invoice, error) {
	now := s.now()
	owner := s.UserID()

	seq, err := s.nextSequence(ctx, owner, now)
	if err != nil {
		return entity.Invoice{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	settings := s.state.Settings
	inv := entity.Invoice{
		ID:            s.deps.NewID(),
		OwnerID:       owner,
		InvoiceNumber: invoicenumber.Generate(now, owner, seq),
		Sequence:      seq,
		InvoiceDate:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
		Customer:      entity.CustomerSnapshot{Category: entity.DefaultCustomerCategory},
		Mode:          settings.DefaultMode,
		Items:         entity.Items{},
		ShippingCost:  decimal.Zero,
		TaxEnabled:    settings.TaxEnabled,
		TaxPercentage: settings.TaxPercentage,
		Status:        entity.StatusDraft,
	}
	totals.Recompute(&inv)
	s.state.CurrentInvoice = &inv
	s.persist()
	s.log.Info().Str("invoice_id", inv.ID).Str("number", inv.InvoiceNumber).Msg("borrador creado")
	return inv.Clone(), nil
}

// FixupInvoiceNumber regenera el número del borrador si se generó con el dueño
// placeholder y el dueño ya se conoce. Devuelve true si hubo cambio.
func (s *Store) FixupInvoiceNumber(ctx context.Context) (entity.Invoice, bool, error) {
	s.mu.Lock()
	cur := s.state.CurrentInvoice
	owner := s.state.UserID
	if cur == nil {
		s.mu.Unlock()
		return entity.Invoice{}, false, domain.ErrNoDraft
	}
	if owner == "" || !invoicenumber.HasPlaceholder(cur.InvoiceNumber) {
		out := cur.Clone()
		s.mu.Unlock()
		return out, false, nil
	}
	id, date := cur.ID, cur.InvoiceDate
	s.mu.Unlock()

	seq, err := s.nextSequence(ctx, owner, date)
	if err != nil {
		return entity.Invoice{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cur = s.state.CurrentInvoice
	if cur == nil || cur.ID != id {
		return entity.Invoice{}, false, domain.ErrNoDraft
	}
	cur.OwnerID = owner
	cur.Sequence = seq
	cur.InvoiceNumber = invoicenumber.Generate(cur.InvoiceDate, owner, seq)
	cur.UpdatedAt = s.now()
	s.persist()
	return cur.Clone(), true, nil
}

// mutateDraft aplica fn sobre una copia del borrador; si fn falla o informa que no
// hubo cambio, el estado queda intacto. Tras un cambio siempre se recalculan los totales.
func (s *Store) mutateDraft(fn func(inv *entity.Invoice) (bool, error)) (entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentInvoice == nil {
		return entity.Invoice{}, domain.ErrNoDraft
	}
	draft := s.state.CurrentInvoice.Clone()
	changed, err := fn(&draft)
	if err != nil {
		return entity.Invoice{}, err
	}
	if !changed {
		return s.state.CurrentInvoice.Clone(), nil
	}
	totals.Recompute(&draft)
	draft.UpdatedAt = s.now()
	// Editar una factura ya guardada la devuelve a borrador.
	if draft.Status == entity.StatusPending || draft.Status == entity.StatusCompleted {
		draft.Status = entity.StatusDraft
	}
	s.state.CurrentInvoice = &draft
	s.persist()
	return draft.Clone(), nil
}

// UpdateInvoiceFields fusiona campos de cabecera. Cambiar la fecha regenera el número
// con el dueño y consecutivo del propio borrador.
func (s *Store) UpdateInvoiceFields(p InvoicePatch) (entity.Invoice, error) {
	var errs domain.ValidationErrors
	if p.ShippingCost != nil && p.ShippingCost.IsNegative() {
		errs.Add(FieldShippingCost, "el envío no puede ser negativo")
	}
	if p.TaxPercentage != nil && (p.TaxPercentage.IsNegative() || p.TaxPercentage.GreaterThan(hundred)) {
		errs.Add(FieldTaxPercentage, "el porcentaje debe estar entre 0 y 100")
	}
	if p.InvoiceDate != nil && p.InvoiceDate.IsZero() {
		errs.Add(FieldInvoiceDate, "la fecha es obligatoria")
	}
	var items entity.Items
	if p.Items != nil {
		for _, it := range *p.Items {
			if err := pricing.Validate(it); err != nil {
				return entity.Invoice{}, err
			}
		}
		if err := pricing.CheckUniform(*p.Items); err != nil {
			return entity.Invoice{}, err
		}
		var dup string
		items, dup = s.assignItemIDs(*p.Items)
		if dup != "" {
			errs.Add(FieldItems, fmt.Sprintf("id de ítem repetido %q", dup))
		}
	}
	if err := errs.OrNil(); err != nil {
		return entity.Invoice{}, err
	}

	return s.mutateDraft(func(inv *entity.Invoice) (bool, error) {
		if p.Customer != nil {
			inv.Customer = *p.Customer
		}
		if p.ShippingCost != nil {
			inv.ShippingCost = *p.ShippingCost
		}
		if p.Note != nil {
			inv.Note = *p.Note
		}
		if p.TaxEnabled != nil {
			inv.TaxEnabled = *p.TaxEnabled
		}
		if p.TaxPercentage != nil {
			inv.TaxPercentage = *p.TaxPercentage
		}
		if p.Items != nil {
			inv.Items = items
			if m := inv.Items.Mode(); m != "" {
				inv.Mode = m
			}
		}
		if p.InvoiceDate != nil && !p.InvoiceDate.Equal(inv.InvoiceDate) {
			inv.InvoiceDate = p.InvoiceDate.In(s.deps.Location)
			inv.InvoiceNumber = invoicenumber.Generate(inv.InvoiceDate, inv.OwnerID, inv.Sequence)
		}
		return true, nil
	})
}

// assignItemIDs copia las líneas dando id nuevo a las que no traen uno. Devuelve el
// primer id repetido, si lo hay.
func (s *Store) assignItemIDs(in entity.Items) (entity.Items, string) {
	out := make(entity.Items, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, it := range in {
		if it.ItemID() == "" {
			it = withItemID(it, s.deps.NewID())
		}
		if seen[it.ItemID()] {
			return nil, it.ItemID()
		}
		seen[it.ItemID()] = true
		out = append(out, it)
	}
	return out, ""
}

func withItemID(it entity.Item, id string) entity.Item {
	switch v := it.(type) {
	case entity.RegularItem:
		v.ID = id
		return v
	case entity.BuybackItem:
		v.ID = id
		return v
	}
	return it
}

// SetMode cambia el modo de precio del borrador. Se rechaza si ya hay ítems del otro modo.
func (s *Store) SetMode(mode entity.ItemMode) (entity.Invoice, error) {
	if !mode.Valid() {
		return entity.Invoice{}, domain.ValidationErrors{{Field: pricing.FieldMode, Message: fmt.Sprintf("modo desconocido %q", mode)}}
	}
	return s.mutateDraft(func(inv *entity.Invoice) (bool, error) {
		if err := pricing.CheckCompatible(inv.Items, mode); err != nil {
			return false, err
		}
		if inv.Mode == mode {
			return false, nil
		}
		inv.Mode = mode
		return true, nil
	})
}

// AddItem valida la entrada, asigna id y agrega la línea al final.
func (s *Store) AddItem(in pricing.ItemInput) (entity.Item, error) {
	item, err := pricing.Build(in, s.deps.NewID())
	if err != nil {
		return nil, err
	}
	_, err = s.mutateDraft(func(inv *entity.Invoice) (bool, error) {
		if err := pricing.CheckCompatible(inv.Items, item.Mode()); err != nil {
			return false, err
		}
		inv.Items = append(inv.Items, item)
		inv.Mode = item.Mode()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem fusiona cambios en la línea con ese id. Un id inexistente no es error.
func (s *Store) UpdateItem(id string, p pricing.ItemPatch) (entity.Invoice, error) {
	return s.mutateDraft(func(inv *entity.Invoice) (bool, error) {
		idx := inv.Items.Index(id)
		if idx < 0 {
			return false, nil
		}
		updated, err := pricing.Apply(inv.Items[idx], p)
		if err != nil {
			return false, err
		}
		inv.Items[idx] = updated
		return true, nil
	})
}

// RemoveItem quita la línea; un id inexistente no es error.
func (s *Store) RemoveItem(id string) (entity.Invoice, error) {
	return s.mutateDraft(func(inv *entity.Invoice) (bool, error) {
		idx := inv.Items.Index(id)
		if idx < 0 {
			return false, nil
		}
		inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
		return true, nil
	})
}

// Recompute recalcula los totales del borrador sin otra mutación.
func (s *Store) Recompute() (totals.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentInvoice == nil {
		return totals.Totals{}, domain.ErrNoDraft
	}
	return totals.Recompute(s.state.CurrentInvoice), nil
}
