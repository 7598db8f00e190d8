// Package session arma una sesión por dueño: Store + cola de sincronización +
// controlador de vistas, y comparte un único worker de drenado entre todas.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/invoicer/internal/application/invoicing"
	"github.com/jhoicas/invoicer/internal/application/syncqueue"
	"github.com/jhoicas/invoicer/internal/application/viewflow"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
	"github.com/jhoicas/invoicer/pkg/logger"
)

// Session estado de un dueño.
type Session struct {
	OwnerID string
	Store   *invoicing.Store
	Queue   *syncqueue.Queue
	View    *viewflow.Controller
}

// Factories construyen los repositorios locales de un dueño.
type Factories struct {
	State  func(ownerID string) repository.StateRepository
	Outbox func(ownerID string) repository.OutboxRepository
}

// Options parámetros comunes a todas las sesiones.
type Options struct {
	Settings     entity.InvoiceSettings
	Location     *time.Location
	BaseBackoff  time.Duration
	MaxBackoff   time.Duration
	BatchSize    int
	SyncInterval time.Duration
	Now          func() time.Time
	Logger       *logger.Logger
}

// Manager registro perezoso de sesiones.
type Manager struct {
	remote    repository.RemoteInvoiceService
	factories Factories
	opts      Options
	log       *logger.Logger
	wake      chan struct{}

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager construye el registro. remote es el servicio y contador autoritativo.
func NewManager(remote repository.RemoteInvoiceService, f Factories, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Manager{
		remote:    remote,
		factories: f,
		opts:      opts,
		log:       opts.Logger.Component("session"),
		wake:      make(chan struct{}, 1),
		sessions:  make(map[string]*Session),
	}
}

// Get devuelve la sesión del dueño, creándola y cargando su estado la primera vez.
func (m *Manager) Get(ctx context.Context, ownerID string) (*Session, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: dueño requerido", domain.ErrUnauthorized)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[ownerID]; ok {
		return s, nil
	}
	s, err := m.open(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	m.sessions[ownerID] = s
	return s, nil
}

func (m *Manager) open(ctx context.Context, ownerID string) (*Session, error) {
	ownerLog := m.opts.Logger.Field("owner_id", ownerID)

	queue := syncqueue.New(m.factories.Outbox(ownerID), m.remote, syncqueue.Options{
		OwnerID:     ownerID,
		BaseBackoff: m.opts.BaseBackoff,
		MaxBackoff:  m.opts.MaxBackoff,
		BatchSize:   m.opts.BatchSize,
		Now:         m.opts.Now,
		Wake:        m.wake,
		Logger:      ownerLog,
	})
	store := invoicing.NewStore(invoicing.Deps{
		State:     m.factories.State(ownerID),
		Outbox:    queue,
		Sequences: m.remote,
		Settings:  m.opts.Settings,
		Location:  m.opts.Location,
		Now:       m.opts.Now,
		Logger:    ownerLog,
	})
	queue.SetObserver(store)

	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("cargar estado local: %w", err)
	}
	if err := queue.Load(ctx); err != nil {
		return nil, err
	}
	store.SetOwner(ownerID)
	// Un borrador creado antes de conocer al dueño lleva el código placeholder.
	if _, fixed, err := store.FixupInvoiceNumber(ctx); err != nil && !errors.Is(err, domain.ErrNoDraft) {
		m.log.Warn().Err(err).Str("owner_id", ownerID).Msg("no se pudo corregir el número del borrador")
	} else if fixed {
		m.log.Info().Str("owner_id", ownerID).Msg("número de borrador regenerado tras conocer al dueño")
	}

	m.log.Info().Str("owner_id", ownerID).Int("pending", queue.Len()).Msg("sesión abierta")
	return &Session{OwnerID: ownerID, Store: store, Queue: queue, View: viewflow.New(store)}, nil
}

// Sessions sesiones abiertas ordenadas por dueño.
func (m *Manager) Sessions() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OwnerID < out[j].OwnerID })
	return out
}

// DrainAll una pasada de drenado por cada sesión abierta.
func (m *Manager) DrainAll(ctx context.Context) syncqueue.Result {
	var total syncqueue.Result
	for _, s := range m.Sessions() {
		res, err := s.Queue.Drain(ctx)
		total.Delivered += res.Delivered
		total.Failed += res.Failed
		total.Blocked += res.Blocked
		total.Remaining += res.Remaining
		if err != nil {
			return total
		}
	}
	return total
}

// Run worker compartido hasta que ctx se cancela.
func (m *Manager) Run(ctx context.Context) {
	w := syncqueue.NewWorker(func(ctx context.Context) {
		res := m.DrainAll(ctx)
		if res.Delivered+res.Failed+res.Blocked > 0 {
			m.log.Debug().
				Int("delivered", res.Delivered).
				Int("failed", res.Failed).
				Int("blocked", res.Blocked).
				Int("remaining", res.Remaining).
				Msg("drenado completado")
		}
	}, m.wake, m.opts.SyncInterval, m.opts.Logger)
	w.Run(ctx)
}

// Refresh vuelve a traer las facturas del dueño desde el servicio remoto.
func (m *Manager) Refresh(ctx context.Context, ownerID string, filter repository.InvoiceFilter) (int, error) {
	s, err := m.Get(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	filter.OwnerID = ownerID
	queued := queuedInvoices(s.Queue)
	list, err := m.remote.List(ctx, filter)
	if err != nil {
		s.Store.OnOfflineChanged(true)
		return 0, fmt.Errorf("listar facturas remotas: %w", err)
	}
	// Cola de antes y de después del listado, por entregas o encolados concurrentes.
	for id := range queuedInvoices(s.Queue) {
		queued[id] = true
	}
	n := s.Store.MergeRemote(list, queued)
	if n > 0 {
		s.View.Invalidate()
	}
	return n, nil
}

// queuedInvoices ids de facturas con alguna operación en la cola, bloqueadas incluidas.
func queuedInvoices(q *syncqueue.Queue) map[string]bool {
	ids := make(map[string]bool)
	for _, op := range q.Snapshot() {
		if op.EntityType == entity.EntityTypeInvoice {
			ids[op.EntityID] = true
		}
	}
	return ids
}
