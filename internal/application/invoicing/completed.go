package invoicing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/invoicer/internal/application/syncqueue"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/totals"
)

// SaveCompleted materializa el borrador como factura completada (estado pending hasta la
// confirmación remota), reemplaza la de mismo id y encola un upsert. El resultado refleja
// solo el encolado: la entrega remota es asíncrona. Si el encolado falla, la factura ya
// quedó guardada localmente y se devuelve ErrEnqueueFailed.
func (s *Store) SaveCompleted(ctx context.Context) (entity.Invoice, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.state.CurrentInvoice == nil {
		s.mu.Unlock()
		return entity.Invoice{}, domain.ErrNoDraft
	}
	inv := s.state.CurrentInvoice.Clone()
	if inv.Customer.Category == "" {
		inv.Customer.Category = entity.DefaultCustomerCategory
	}
	if inv.Items == nil {
		inv.Items = entity.Items{}
	}
	totals.Recompute(&inv)
	inv.Status = entity.StatusPending
	inv.UpdatedAt = s.now()

	if i := s.completedIndex(inv.ID); i >= 0 {
		s.state.CompletedInvoices[i] = inv
	} else {
		s.state.CompletedInvoices = append(s.state.CompletedInvoices, inv)
	}
	current := inv.Clone()
	s.state.CurrentInvoice = &current
	s.persist()
	s.mu.Unlock()

	out := inv.Clone()
	data, err := json.Marshal(inv)
	if err != nil {
		return out, fmt.Errorf("%w: serializar factura: %v", domain.ErrEnqueueFailed, err)
	}
	if err := s.enqueue(ctx, syncqueue.Request{
		Action:     entity.SyncUpsert,
		EntityType: entity.EntityTypeInvoice,
		EntityID:   inv.ID,
		Data:       data,
	}); err != nil {
		return out, err
	}
	s.log.Info().Str("invoice_id", inv.ID).Str("number", inv.InvoiceNumber).Str("total", inv.Total.String()).Msg("factura completada")
	return out, nil
}

func (s *Store) enqueue(ctx context.Context, req syncqueue.Request) error {
	if s.deps.Outbox == nil {
		return fmt.Errorf("%w: sin cola configurada", domain.ErrEnqueueFailed)
	}
	if err := s.deps.Outbox.Enqueue(ctx, req); err != nil {
		s.log.Error().Err(err).Str("entity_id", req.EntityID).Str("action", string(req.Action)).Msg("encolado fallido")
		return fmt.Errorf("%w: %v", domain.ErrEnqueueFailed, err)
	}
	return nil
}

// LoadCompleted copia una factura completada al borrador para editarla.
// Devuelve false (sin cambios) si no existe.
func (s *Store) LoadCompleted(id string) (entity.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.completedIndex(id)
	if i < 0 {
		return entity.Invoice{}, false
	}
	draft := s.state.CompletedInvoices[i].Clone()
	draft.Status = entity.StatusDraft
	s.state.CurrentInvoice = &draft
	s.persist()
	return draft.Clone(), true
}

// DeleteCompleted quita la factura de la colección local de inmediato y encola el delete.
// Si el encolado falla se devuelve ErrEnqueueFailed pero la eliminación local NO se revierte.
func (s *Store) DeleteCompleted(ctx context.Context, id string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	i := s.completedIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.state.CompletedInvoices = append(s.state.CompletedInvoices[:i], s.state.CompletedInvoices[i+1:]...)
	if s.state.CurrentInvoice != nil && s.state.CurrentInvoice.ID == id {
		s.state.CurrentInvoice = nil
	}
	s.persist()
	s.mu.Unlock()

	if err := s.enqueue(ctx, syncqueue.Request{
		Action:     entity.SyncDelete,
		EntityType: entity.EntityTypeInvoice,
		EntityID:   id,
	}); err != nil {
		return err
	}
	s.log.Info().Str("invoice_id", id).Msg("factura eliminada")
	return nil
}

// MergeRemote incorpora el listado del servicio remoto a la colección local. Las facturas
// locales pendientes de envío prevalecen sobre la copia remota, y se ignora toda factura
// con una operación todavía en la cola (queued): un delete encolado no se deshace.
func (s *Store) MergeRemote(remote []entity.Invoice, queued map[string]bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for _, r := range remote {
		if queued[r.ID] {
			continue
		}
		r := r.Clone()
		if r.Status == "" {
			r.Status = entity.StatusCompleted
		}
		if i := s.completedIndex(r.ID); i >= 0 {
			if s.state.CompletedInvoices[i].Status == entity.StatusPending {
				continue
			}
			s.state.CompletedInvoices[i] = r
		} else {
			s.state.CompletedInvoices = append(s.state.CompletedInvoices, r)
		}
		changed++
	}
	if changed > 0 {
		s.persist()
	}
	return changed
}
