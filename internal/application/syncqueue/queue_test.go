package syncqueue_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicer/internal/application/syncqueue"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/infrastructure/memory"
)

type recorder struct {
	mu        sync.Mutex
	pending   []int
	delivered []string
	offline   []bool
	blocked   []string
}

func (r *recorder) OnPendingChanged(n int) {
	r.mu.Lock()
	r.pending = append(r.pending, n)
	r.mu.Unlock()
}

func (r *recorder) OnDelivered(op entity.SyncOperation, _ time.Time) {
	r.mu.Lock()
	r.delivered = append(r.delivered, string(op.Action)+":"+op.EntityID)
	r.mu.Unlock()
}

func (r *recorder) OnOfflineChanged(v bool) {
	r.mu.Lock()
	r.offline = append(r.offline, v)
	r.mu.Unlock()
}

func (r *recorder) OnBlocked(op entity.SyncOperation, _ error) {
	r.mu.Lock()
	r.blocked = append(r.blocked, op.EntityID)
	r.mu.Unlock()
}

type harness struct {
	q      *syncqueue.Queue
	repo   *memory.OutboxRepo
	remote *memory.RemoteService
	obs    *recorder
	now    time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		repo:   memory.NewOutboxRepo(),
		remote: memory.NewRemoteService(0),
		obs:    &recorder{},
		now:    time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC),
	}
	n := 0
	h.q = syncqueue.New(h.repo, h.remote, syncqueue.Options{
		OwnerID:     "owner-1",
		BaseBackoff: time.Second,
		MaxBackoff:  time.Minute,
		Now:         func() time.Time { return h.now },
		NewID: func() string {
			n++
			return fmt.Sprintf("op-%d", n)
		},
	})
	h.q.SetObserver(h.obs)
	return h
}

func upsert(t *testing.T, id, note string) syncqueue.Request {
	t.Helper()
	data, err := json.Marshal(entity.Invoice{ID: id, OwnerID: "owner-1", Note: note, Items: entity.Items{}})
	require.NoError(t, err)
	return syncqueue.Request{Action: entity.SyncUpsert, EntityType: entity.EntityTypeInvoice, EntityID: id, Data: data}
}

func del(id string) syncqueue.Request {
	return syncqueue.Request{Action: entity.SyncDelete, EntityType: entity.EntityTypeInvoice, EntityID: id}
}

func TestEnqueue_PersisteAntesDeRetornar(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.q.Enqueue(context.Background(), upsert(t, "inv-1", "")))

	stored, err := h.repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "inv-1", stored[0].EntityID)
	assert.Equal(t, "owner-1", stored[0].OwnerID)
	assert.Equal(t, []int{1}, h.obs.pending)
}

func TestEnqueue_FalloDePersistenciaNoEncola(t *testing.T) {
	h := newHarness(t)
	h.repo.SetSaveErr(errors.New("disco lleno"))

	err := h.q.Enqueue(context.Background(), upsert(t, "inv-1", ""))

	assert.Error(t, err)
	assert.Equal(t, 0, h.q.Len())
}

func TestEnqueue_ValidaEntrada(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.q.Enqueue(context.Background(), syncqueue.Request{Action: entity.SyncUpsert}), domain.ErrInvalidInput)
	assert.ErrorIs(t, h.q.Enqueue(context.Background(), syncqueue.Request{Action: "patch", EntityID: "x"}), domain.ErrInvalidInput)
}

func TestEnqueue_FusionaMismaEntidadConservandoPosicion(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.q.Enqueue(ctx, upsert(t, "inv-1", "v1")))
	require.NoError(t, h.q.Enqueue(ctx, upsert(t, "inv-2", "")))
	require.NoError(t, h.q.Enqueue(ctx, upsert(t, "inv-1", "v2")))

	ops := h.q.Snapshot()
	require.Len(t, ops, 2)
	assert.Equal(t, "inv-1", ops[0].EntityID)
	assert.Contains(t, string(ops[0].Data), "v2", "gana la última escritura")
}

func TestEnqueue_DeleteReemplazaUpsertPendiente(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.q.Enqueue(ctx, upsert(t, "inv-1", "")))
	require.NoError(t, h.q.Enqueue(ctx, del("inv-1")))

	_, err := h.q.Drain(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"delete:inv-1"}, h.remote.Calls())
}

func TestDrain_EntregaEnOrden(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, h.q.Enqueue(ctx, upsert(t, id, "")))
	}

	res, err := h.q.Drain(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, res.Delivered)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, []string{"upsert:a", "upsert:b", "upsert:c"}, h.remote.Calls())
	assert.Equal(t, []string{"upsert:a", "upsert:b", "upsert:c"}, h.obs.delivered)
	_, ok := h.remote.Get("b")
	assert.True(t, ok)
}

func TestDrain_FalloTransitorioReintentaConBackoff(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.q.Enqueue(ctx, upsert(t, "a", "")))
	require.NoError(t, h.q.Enqueue(ctx, upsert(t, "b", "")))
	h.remote.FailNext(errors.New("timeout"))

	res, err := h.q.Drain(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Delivered)
	ops := h.q.Snapshot()
	require.Len(t, ops, 1)
	assert.Equal(t, "a", ops[0].EntityID)
	assert.Equal(t, 1, ops[0].Attempts)
	assert.Equal(t, h.now.Add(time.Second), ops[0].NextAttemptAt)
	assert.Equal(t, "timeout", ops[0].LastError)

	res, err = h.q.Drain(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Delivered, "todavía en espera")

	h.now = h.now.Add(2 * time.Second)
	res, err = h.q.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Delivered)
	assert.Equal(t, 0, h.q.Len())
}

func TestDrain_SinRedMarcaOffline(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.q.Enqueue(ctx, upsert(t, "a", "")))
	h.remote.FailNext(errors.New("connection refused"))

	_, err := h.q.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, h.q.Offline())

	h.now = h.now.Add(time.Hour)
	_, err = h.q.Drain(ctx)
	require.NoError(t, err)
	assert.False(t, h.q.Offline())
	assert.Equal(t, []bool{true, false}, h.obs.offline)
}

func TestDrain_OrdenPorEntidadTrasFallo(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.q.Enqueue(ctx, upsert(t, "a", "")))
	h.remote.FailNext(errors.New("timeout"))
	_, err := h.q.Drain(ctx)
	require.NoError(t, err)

	// En vuelo no hay nada: el delete se fusiona con el upsert fallido.
	require.NoError(t, h.q.Enqueue(ctx, del("a")))
	ops := h.q.Snapshot()
	require.Len(t, ops, 1)
	assert.Equal(t, entity.SyncDelete, ops[0].Action)
	assert.Equal(t, 0, ops[0].Attempts, "la fusión reinicia los intentos")
}

func TestDrain_CuotaAgotadaBloqueaHastaRetry(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.q.Enqueue(ctx, upsert(t, "a", "")))
	h.remote.FailNext(domain.ErrLimitReached)

	res, err := h.q.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Blocked)
	assert.Equal(t, []string{"a"}, h.obs.blocked)
	assert.Equal(t, 1, h.q.Len())
	assert.Equal(t, 0, h.q.Pending())

	h.now = h.now.Add(24 * time.Hour)
	res, err = h.q.Drain(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Delivered, "bloqueada no se reintenta sola")

	n, err := h.q.RetryBlocked(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	res, err = h.q.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Delivered)
}

func TestDrain_PayloadInvalidoSeBloquea(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.q.Enqueue(ctx, syncqueue.Request{
		Action: entity.SyncUpsert, EntityType: entity.EntityTypeInvoice, EntityID: "a", Data: json.RawMessage(`{"items":"x"}`),
	}))

	res, err := h.q.Drain(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Blocked)
	assert.Empty(t, h.remote.Calls())
}

func TestDrain_ContextoCanceladoConservaCola(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.q.Enqueue(context.Background(), upsert(t, "a", "")))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.q.Drain(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, h.q.Len())
	res, err := h.q.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Delivered, "la entrada liberada vuelve a estar disponible")
}

func TestLoad_RecuperaColaPersistida(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.q.Enqueue(ctx, upsert(t, "a", "")))

	again := syncqueue.New(h.repo, h.remote, syncqueue.Options{OwnerID: "owner-1"})
	require.NoError(t, again.Load(ctx))

	assert.Equal(t, 1, again.Len())
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, time.Duration(0), syncqueue.Backoff(time.Second, time.Minute, 0))
	assert.Equal(t, time.Second, syncqueue.Backoff(time.Second, time.Minute, 1))
	assert.Equal(t, 4*time.Second, syncqueue.Backoff(time.Second, time.Minute, 3))
	assert.Equal(t, time.Minute, syncqueue.Backoff(time.Second, time.Minute, 20))
	assert.Equal(t, 8*time.Second, syncqueue.Backoff(time.Second, 0, 4))
}

func TestEnqueue_SenalaWake(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.q.Enqueue(context.Background(), upsert(t, "a", "")))
	select {
	case <-h.q.Wake():
	default:
		t.Fatal("se esperaba una señal en Wake")
	}
}

func TestDrain_DuenoAjenoSeBloquea(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.q.Enqueue(ctx, upsert(t, "a", "")))
	h.remote.FailNext(domain.ErrForbidden)

	res, err := h.q.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Blocked)
	assert.Equal(t, []string{"a"}, h.obs.blocked)
	assert.False(t, h.q.Offline(), "un rechazo terminal no es desconexión")
}

func TestDrain_EntradaRechazadaPorElRemotoSeBloquea(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	data, err := json.Marshal(entity.Invoice{ID: "a", Items: entity.Items{}})
	require.NoError(t, err)
	require.NoError(t, h.q.Enqueue(ctx, syncqueue.Request{
		Action: entity.SyncUpsert, EntityType: entity.EntityTypeInvoice, EntityID: "a", Data: data,
	}))

	res, err := h.q.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Blocked)
	assert.Zero(t, res.Failed)
	assert.Equal(t, []string{"a"}, h.obs.blocked)

	h.now = h.now.Add(time.Hour)
	res, err = h.q.Drain(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Failed+res.Delivered, "no se reintenta sola")
	assert.Equal(t, []string{"upsert:a"}, h.remote.Calls())
}
