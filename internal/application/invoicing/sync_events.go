package invoicing

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/jhoicas/invoicer/internal/application/syncqueue"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
)

var _ syncqueue.Observer = (*Store)(nil)

// OnPendingChanged contador informativo de operaciones pendientes.
func (s *Store) OnPendingChanged(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.PendingOperations == n {
		return
	}
	s.state.PendingOperations = n
	s.persist()
}

// OnDelivered marca como sincronizada la factura de un upsert confirmado.
func (s *Store) OnDelivered(op entity.SyncOperation, at time.Time) {
	if op.Action != entity.SyncUpsert || op.EntityType != entity.EntityTypeInvoice {
		return
	}
	var sent struct {
		UpdatedAt time.Time `json:"updated_at"`
	}
	if err := json.Unmarshal(op.Data, &sent); err == nil && !sent.UpdatedAt.IsZero() {
		// Una versión más nueva, ya encolada, sigue pendiente.
		if local, ok := s.CompletedByID(op.EntityID); ok && local.UpdatedAt.After(sent.UpdatedAt) {
			return
		}
	}
	s.MarkSynced(op.EntityID, at)
}

// OnOfflineChanged bandera informativa; nunca bloquea mutaciones.
func (s *Store) OnOfflineChanged(offline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsOffline = offline
	if offline {
		s.addNotice(entity.Notice{
			Kind:    entity.NoticeRetrying,
			Message: "mostrando datos locales; se reintentará la sincronización",
			At:      s.now(),
		})
	}
	s.persist()
}

// OnBlocked registra un rechazo terminal como aviso accionable.
func (s *Store) OnBlocked(op entity.SyncOperation, err error) {
	kind, msg := entity.NoticeRejected, "la sincronización fue rechazada: "+err.Error()
	if errors.Is(err, domain.ErrLimitReached) {
		kind, msg = entity.NoticeLimitReached, "límite de facturas del plan alcanzado; mejora tu plan para continuar"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addNotice(entity.Notice{Kind: kind, EntityID: op.EntityID, Message: msg, At: s.now()})
	s.persist()
}

func (s *Store) addNotice(n entity.Notice) {
	s.state.Notices = append(s.state.Notices, n)
	if len(s.state.Notices) > maxNotices {
		s.state.Notices = s.state.Notices[len(s.state.Notices)-maxNotices:]
	}
}

// ClearNotices descarta los avisos ya mostrados.
func (s *Store) ClearNotices() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.Notices) == 0 {
		return
	}
	s.state.Notices = nil
	s.persist()
}

// MarkSynced pasa la factura de pending a completed con la hora de confirmación.
func (s *Store) MarkSynced(id string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.completedIndex(id)
	if i < 0 {
		return
	}
	t := at
	inv := &s.state.CompletedInvoices[i]
	inv.Status = entity.StatusCompleted
	inv.SyncedAt = &t
	if cur := s.state.CurrentInvoice; cur != nil && cur.ID == id && cur.Status == entity.StatusPending {
		cur.Status = entity.StatusCompleted
		ct := at
		cur.SyncedAt = &ct
	}
	s.persist()
}
