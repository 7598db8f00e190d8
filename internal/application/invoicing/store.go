// Package invoicing contiene el Invoice Store: el contenedor de estado que modela la
// factura en edición, la colección de facturas completadas y el estado de sincronización.
//
// Toda mutación es local, síncrona e inmediatamente visible; recalcula los totales y
// persiste el snapshot. Solo SaveCompleted y DeleteCompleted tocan la cola de
// sincronización, y solo el encolado puede fallar.
package invoicing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoicer/internal/application/syncqueue"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
	"github.com/jhoicas/invoicer/pkg/logger"
)

// Enqueuer recibe las intenciones de sincronización (implementado por syncqueue.Queue).
type Enqueuer interface {
	Enqueue(ctx context.Context, req syncqueue.Request) error
}

// Deps dependencias inyectadas del Store.
type Deps struct {
	State     repository.StateRepository
	Outbox    Enqueuer
	Sequences repository.SequenceSource
	Settings  entity.InvoiceSettings
	Location  *time.Location
	Now       func() time.Time
	NewID     func() string
	Logger    *logger.Logger
}

// maxNotices avisos conservados en el estado.
const maxNotices = 20

// Store una instancia por sesión de usuario. Los lectores reciben copias; nadie fuera
// del Store muta currentInvoice ni completedInvoices.
type Store struct {
	deps Deps
	log  *logger.Logger

	// opMu serializa las operaciones que encolan (mutación local + encolado)
	// fuera de mu, porque el observador de la cola vuelve a tomar mu.
	opMu sync.Mutex

	mu    sync.Mutex
	state entity.StoreState
}

// NewStore construye el Store con valores por defecto para reloj, ids y zona horaria.
func NewStore(d Deps) *Store {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.Settings.DefaultMode == "" {
		d.Settings.DefaultMode = entity.ModeRegular
	}
	return &Store{
		deps:  d,
		log:   d.Logger.Component("invoice-store"),
		state: entity.StoreState{CompletedInvoices: []entity.Invoice{}, Settings: d.Settings},
	}
}

// SetOutbox enlaza la cola después de construir (la cola observa al Store).
func (s *Store) SetOutbox(o Enqueuer) {
	s.opMu.Lock()
	s.deps.Outbox = o
	s.opMu.Unlock()
}

// Load recupera el estado persistido; sin estado previo conserva el inicial.
func (s *Store) Load(ctx context.Context) error {
	if s.deps.State == nil {
		return nil
	}
	st, err := s.deps.State.Load(ctx)
	if err != nil {
		return err
	}
	if st == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.CompletedInvoices == nil {
		st.CompletedInvoices = []entity.Invoice{}
	}
	if st.Settings.DefaultMode == "" {
		st.Settings = s.deps.Settings
	}
	s.state = *st
	return nil
}

// persist guarda el snapshot. Se llama con mu tomado. Un fallo local se registra
// y no revierte la mutación.
func (s *Store) persist() {
	if s.deps.State == nil {
		return
	}
	if err := s.deps.State.Save(context.Background(), s.state.Clone()); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo persistir el estado local")
	}
}

func (s *Store) now() time.Time {
	return s.deps.Now().In(s.deps.Location)
}

// State copia completa del estado.
func (s *Store) State() entity.StoreState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Current copia de la factura en edición.
func (s *Store) Current() (entity.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentInvoice == nil {
		return entity.Invoice{}, false
	}
	return s.state.CurrentInvoice.Clone(), true
}

// Completed copia de las facturas completadas, en orden de inserción.
func (s *Store) Completed() []entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Invoice, len(s.state.CompletedInvoices))
	for i, inv := range s.state.CompletedInvoices {
		out[i] = inv.Clone()
	}
	return out
}

// CompletedByID busca una factura completada.
func (s *Store) CompletedByID(id string) (entity.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.completedIndex(id); i >= 0 {
		return s.state.CompletedInvoices[i].Clone(), true
	}
	return entity.Invoice{}, false
}

func (s *Store) completedIndex(id string) int {
	for i := range s.state.CompletedInvoices {
		if s.state.CompletedInvoices[i].ID == id {
			return i
		}
	}
	return -1
}

// UserID dueño actual ("" si aún no se conoce).
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UserID
}

// SetOwner fija la identidad dueña. No regenera números: eso es FixupInvoiceNumber.
func (s *Store) SetOwner(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.UserID == userID {
		return
	}
	s.state.UserID = userID
	s.persist()
}

// SetSettings reemplaza los valores por defecto de nuevas facturas.
func (s *Store) SetSettings(st entity.InvoiceSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.DefaultMode == "" {
		st.DefaultMode = entity.ModeRegular
	}
	s.state.Settings = st
	s.persist()
}
