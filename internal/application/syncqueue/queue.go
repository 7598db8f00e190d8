// Package syncqueue implementa el outbox durable de operaciones hacia el servicio
// remoto de facturas. Las operaciones de una misma entidad se envían en orden de
// encolado; entre entidades distintas no hay orden garantizado. Una operación
// pendiente de la misma entidad se reemplaza por la más reciente (last write wins).
package syncqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
	"github.com/jhoicas/invoicer/pkg/logger"
)

// Request operación a encolar.
type Request struct {
	Action     entity.SyncAction
	EntityType string
	EntityID   string
	Data       json.RawMessage
}

// Observer recibe notificaciones fuera de banda del drenado. Las llamadas se hacen
// sin tener tomado el lock de la cola.
type Observer interface {
	OnPendingChanged(n int)
	OnDelivered(op entity.SyncOperation, at time.Time)
	OnOfflineChanged(offline bool)
	OnBlocked(op entity.SyncOperation, err error)
}

// Options parámetros de la cola.
type Options struct {
	OwnerID     string
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	BatchSize   int
	Now         func() time.Time
	NewID       func() string
	// Wake canal compartido (buffer 1) para despertar al worker; si es nil se crea uno.
	Wake   chan struct{}
	Logger *logger.Logger
}

// Result resumen de un drenado.
type Result struct {
	Delivered int
	Failed    int
	Blocked   int
	Remaining int
}

// Queue outbox de un dueño.
type Queue struct {
	repo   repository.OutboxRepository
	remote repository.RemoteInvoiceService
	opts   Options
	log    *logger.Logger

	drainMu sync.Mutex // un drenado a la vez

	mu       sync.Mutex
	entries  []entity.SyncOperation
	inflight map[string]bool
	offline  bool
	observer Observer
}

// New construye la cola; llamar Load antes de usarla para recuperar lo persistido.
func New(repo repository.OutboxRepository, remote repository.RemoteInvoiceService, opts Options) *Queue {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Wake == nil {
		opts.Wake = make(chan struct{}, 1)
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Queue{
		repo:     repo,
		remote:   remote,
		opts:     opts,
		log:      opts.Logger.Component("syncqueue"),
		inflight: make(map[string]bool),
	}
}

// SetObserver registra el receptor de notificaciones.
func (q *Queue) SetObserver(o Observer) {
	q.mu.Lock()
	q.observer = o
	q.mu.Unlock()
}

// Load recupera la cola durable.
func (q *Queue) Load(ctx context.Context) error {
	ops, err := q.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("cargar outbox: %w", err)
	}
	q.mu.Lock()
	q.entries = ops
	n, obs := len(q.entries), q.observer
	q.mu.Unlock()
	if obs != nil {
		obs.OnPendingChanged(n)
	}
	return nil
}

// Wake canal que se señala cuando hay trabajo nuevo.
func (q *Queue) Wake() <-chan struct{} { return q.opts.Wake }

// Enqueue agrega la operación y la persiste antes de retornar. Si ya existe una
// entrada de la misma entidad que no está en vuelo, se reemplaza conservando su
// posición. Un error aquí significa que la operación no quedó encolada.
func (q *Queue) Enqueue(ctx context.Context, req Request) error {
	if req.EntityID == "" {
		return fmt.Errorf("%w: entity_id requerido", domain.ErrInvalidInput)
	}
	if req.Action != entity.SyncUpsert && req.Action != entity.SyncDelete {
		return fmt.Errorf("%w: acción desconocida %q", domain.ErrInvalidInput, req.Action)
	}
	now := q.opts.Now()

	q.mu.Lock()
	next := make([]entity.SyncOperation, len(q.entries), len(q.entries)+1)
	copy(next, q.entries)

	idx := -1
	for i := len(next) - 1; i >= 0; i-- {
		if next[i].EntityType == req.EntityType && next[i].EntityID == req.EntityID {
			if !q.inflight[next[i].ID] {
				idx = i
			}
			break
		}
	}
	if idx >= 0 {
		op := &next[idx]
		op.Action = req.Action
		op.Data = req.Data
		op.Attempts = 0
		op.NextAttemptAt = now
		op.LastError = ""
		op.Blocked = false
	} else {
		next = append(next, entity.SyncOperation{
			ID:            q.opts.NewID(),
			OwnerID:       q.opts.OwnerID,
			Action:        req.Action,
			EntityType:    req.EntityType,
			EntityID:      req.EntityID,
			Data:          req.Data,
			EnqueuedAt:    now,
			NextAttemptAt: now,
		})
	}
	if err := q.repo.Save(ctx, next); err != nil {
		q.mu.Unlock()
		return fmt.Errorf("persistir outbox: %w", err)
	}
	q.entries = next
	n, obs := len(next), q.observer
	q.mu.Unlock()

	q.log.Debug().Str("entity_id", req.EntityID).Str("action", string(req.Action)).Int("pending", n).Msg("operación encolada")
	if obs != nil {
		obs.OnPendingChanged(n)
	}
	q.signal()
	return nil
}

func (q *Queue) signal() {
	select {
	case q.opts.Wake <- struct{}{}:
	default:
	}
}

// Len operaciones en cola (incluye bloqueadas).
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Pending operaciones que el drenado todavía intentará (excluye bloqueadas).
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, op := range q.entries {
		if !op.Blocked {
			n++
		}
	}
	return n
}

// Snapshot copia de la cola en orden.
func (q *Queue) Snapshot() []entity.SyncOperation {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]entity.SyncOperation, len(q.entries))
	copy(out, q.entries)
	return out
}

// Offline indica si el último drenado terminó sin poder contactar al servicio.
func (q *Queue) Offline() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.offline
}

// RetryBlocked desbloquea las operaciones rechazadas por cuota (ej. tras subir de plan).
func (q *Queue) RetryBlocked(ctx context.Context) (int, error) {
	now := q.opts.Now()
	q.mu.Lock()
	next := make([]entity.SyncOperation, len(q.entries))
	copy(next, q.entries)
	count := 0
	for i := range next {
		if next[i].Blocked {
			next[i].Blocked = false
			next[i].Attempts = 0
			next[i].NextAttemptAt = now
			count++
		}
	}
	if count == 0 {
		q.mu.Unlock()
		return 0, nil
	}
	if err := q.repo.Save(ctx, next); err != nil {
		q.mu.Unlock()
		return 0, fmt.Errorf("persistir outbox: %w", err)
	}
	q.entries = next
	q.mu.Unlock()
	q.signal()
	return count, nil
}

// Drain envía las operaciones listas, como máximo una por entidad por pasada.
// Una entrada que falla queda en la cola para reintento y retiene a las posteriores
// de la misma entidad hasta que se entregue.
func (q *Queue) Drain(ctx context.Context) (Result, error) {
	q.drainMu.Lock()
	defer q.drainMu.Unlock()

	batch := q.pickBatch(q.opts.Now())
	var res Result
	var delivered, transient int

	for i, op := range batch {
		if err := ctx.Err(); err != nil {
			q.release(batch[i:])
			res.Remaining = q.Len()
			return res, err
		}
		err := q.deliver(ctx, op)
		now := q.opts.Now()
		switch {
		case err == nil:
			q.complete(ctx, op)
			delivered++
			res.Delivered++
			q.notifyDelivered(op, now)
		case terminal(err):
			blockedOp := q.block(ctx, op, err)
			res.Blocked++
			q.log.Error().Err(err).Str("entity_id", op.EntityID).Msg("operación rechazada de forma terminal")
			q.notifyBlocked(blockedOp, err)
		default:
			attempts := q.retryLater(ctx, op, err, now)
			transient++
			res.Failed++
			q.log.Warn().Err(err).Str("entity_id", op.EntityID).Int("attempts", attempts).Msg("envío fallido, se reintentará")
		}
	}

	switch {
	case delivered > 0:
		q.setOffline(false)
	case transient > 0:
		q.setOffline(true)
	}
	res.Remaining = q.Len()
	return res, nil
}

// pickBatch elige en orden las entradas listas, sin saltarse una entrada no lista
// de la misma entidad, y las marca en vuelo.
func (q *Queue) pickBatch(now time.Time) []entity.SyncOperation {
	q.mu.Lock()
	defer q.mu.Unlock()
	held := make(map[string]bool)
	var batch []entity.SyncOperation
	for _, op := range q.entries {
		key := op.EntityType + "/" + op.EntityID
		if held[key] {
			continue
		}
		if op.Blocked || op.NextAttemptAt.After(now) || q.inflight[op.ID] {
			held[key] = true
			continue
		}
		held[key] = true
		q.inflight[op.ID] = true
		batch = append(batch, op)
		if len(batch) >= q.opts.BatchSize {
			break
		}
	}
	return batch
}

var errPayload = errors.New("payload de sincronización inválido")

// terminal errores que no se resuelven reintentando.
func terminal(err error) bool {
	return errors.Is(err, domain.ErrLimitReached) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, errPayload)
}

func (q *Queue) deliver(ctx context.Context, op entity.SyncOperation) error {
	switch op.Action {
	case entity.SyncUpsert:
		var inv entity.Invoice
		if err := json.Unmarshal(op.Data, &inv); err != nil {
			return fmt.Errorf("%w: %v", errPayload, err)
		}
		return q.remote.Upsert(ctx, inv)
	case entity.SyncDelete:
		return q.remote.Delete(ctx, op.OwnerID, op.EntityID)
	default:
		return fmt.Errorf("%w: acción %q", errPayload, op.Action)
	}
}

func (q *Queue) release(ops []entity.SyncOperation) {
	q.mu.Lock()
	for _, op := range ops {
		delete(q.inflight, op.ID)
	}
	q.mu.Unlock()
}

// update aplica fn a la entrada con ese id, persiste y notifica el conteo.
// Un fallo de persistencia solo se registra: la entrega es al menos una vez.
func (q *Queue) update(ctx context.Context, id string, fn func(next []entity.SyncOperation, idx int) []entity.SyncOperation) {
	q.mu.Lock()
	delete(q.inflight, id)
	idx := -1
	for i := range q.entries {
		if q.entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return
	}
	next := make([]entity.SyncOperation, len(q.entries))
	copy(next, q.entries)
	next = fn(next, idx)
	q.entries = next
	if err := q.repo.Save(ctx, next); err != nil {
		q.log.Warn().Err(err).Str("op_id", id).Msg("no se pudo persistir el outbox tras el envío")
	}
	n, obs := len(next), q.observer
	q.mu.Unlock()
	if obs != nil {
		obs.OnPendingChanged(n)
	}
}

func (q *Queue) complete(ctx context.Context, op entity.SyncOperation) {
	q.update(ctx, op.ID, func(next []entity.SyncOperation, idx int) []entity.SyncOperation {
		return append(next[:idx], next[idx+1:]...)
	})
}

func (q *Queue) block(ctx context.Context, op entity.SyncOperation, cause error) entity.SyncOperation {
	out := op
	q.update(ctx, op.ID, func(next []entity.SyncOperation, idx int) []entity.SyncOperation {
		next[idx].Blocked = true
		next[idx].Attempts++
		next[idx].LastError = cause.Error()
		out = next[idx]
		return next
	})
	return out
}

func (q *Queue) retryLater(ctx context.Context, op entity.SyncOperation, cause error, now time.Time) int {
	attempts := op.Attempts + 1
	q.update(ctx, op.ID, func(next []entity.SyncOperation, idx int) []entity.SyncOperation {
		next[idx].Attempts++
		attempts = next[idx].Attempts
		next[idx].LastError = cause.Error()
		next[idx].NextAttemptAt = now.Add(Backoff(q.opts.BaseBackoff, q.opts.MaxBackoff, attempts))
		return next
	})
	return attempts
}

// Backoff espera exponencial base·2^(intento-1), con tope max (max<=0: sin tope).
func Backoff(base, max time.Duration, attempt int) time.Duration {
	if base <= 0 || attempt <= 0 {
		return 0
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if max > 0 && d >= max {
			return max
		}
	}
	if max > 0 && d > max {
		return max
	}
	return d
}

func (q *Queue) setOffline(v bool) {
	q.mu.Lock()
	changed := q.offline != v
	q.offline = v
	obs := q.observer
	q.mu.Unlock()
	if changed && obs != nil {
		obs.OnOfflineChanged(v)
	}
}

func (q *Queue) notifyDelivered(op entity.SyncOperation, at time.Time) {
	q.mu.Lock()
	obs := q.observer
	q.mu.Unlock()
	if obs != nil {
		obs.OnDelivered(op, at)
	}
}

func (q *Queue) notifyBlocked(op entity.SyncOperation, err error) {
	q.mu.Lock()
	obs := q.observer
	q.mu.Unlock()
	if obs != nil {
		obs.OnBlocked(op, err)
	}
}
