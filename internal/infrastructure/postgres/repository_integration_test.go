package postgres

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
	"github.com/jhoicas/invoicer/pkg/config"
	"github.com/jhoicas/invoicer/pkg/logger"
)

// testPool abre una base real desde TEST_DATABASE_URL y aplica las migraciones.
// Sin la variable (o con -short) los tests de integración se omiten.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integración omitida en modo -short")
	}
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definida")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, Migrate(ctx, pool, logger.Nop()))
	// Segunda pasada: las migraciones aplicadas se saltan.
	require.NoError(t, Migrate(ctx, pool, logger.Nop()))
	return pool
}

func sampleInvoice(owner string, date time.Time) entity.Invoice {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return entity.Invoice{
		ID:            uuid.NewString(),
		OwnerID:       owner,
		InvoiceNumber: "INV-011125-ABCDEF12-001",
		Sequence:      1,
		InvoiceDate:   date,
		CreatedAt:     now,
		UpdatedAt:     now,
		Customer:      entity.CustomerSnapshot{Name: "Budi Santoso", Phone: "08123456789", Category: "Customer"},
		Mode:          entity.ModeRegular,
		Items: entity.Items{
			entity.RegularItem{ID: uuid.NewString(), Description: "Cincin", Quantity: 2, Price: decimal.NewFromInt(500000)},
		},
		Subtotal:      decimal.NewFromInt(1000000),
		ShippingCost:  decimal.NewFromInt(20000),
		TaxPercentage: decimal.Zero,
		TaxAmount:     decimal.Zero,
		Total:         decimal.NewFromInt(1020000),
		Status:        entity.StatusPending,
	}
}

func TestInvoiceRepo_UpsertIdempotenteYList(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(pool, 0)
	owner := uuid.NewString()
	date := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	inv := sampleInvoice(owner, date)
	require.NoError(t, repo.Upsert(ctx, inv))
	require.NoError(t, repo.Upsert(ctx, inv))

	list, err := repo.List(ctx, repository.InvoiceFilter{OwnerID: owner})
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, inv.ID, got.ID)
	assert.Equal(t, entity.StatusCompleted, got.Status)
	assert.NotNil(t, got.SyncedAt)
	assert.True(t, got.Total.Equal(inv.Total))
	require.Len(t, got.Items, 1)
	item, ok := got.Items[0].(entity.RegularItem)
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
	// NUMERIC vuelve con escala de columna: comparar por valor.
	assert.True(t, item.Price.Equal(decimal.NewFromInt(500000)))
}

func TestInvoiceRepo_UpsertReemplazaLineas(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(pool, 0)
	owner := uuid.NewString()

	inv := sampleInvoice(owner, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(ctx, inv))

	inv.Mode = entity.ModeBuyback
	inv.Items = entity.Items{
		entity.BuybackItem{ID: uuid.NewString(), Description: "Emas", Gram: decimal.RequireFromString("2.5"), BuybackRate: decimal.NewFromInt(900000)},
	}
	require.NoError(t, repo.Upsert(ctx, inv))

	list, err := repo.List(ctx, repository.InvoiceFilter{OwnerID: owner})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.ModeBuyback, list[0].Mode)
	require.Len(t, list[0].Items, 1)
	assert.Equal(t, entity.ModeBuyback, list[0].Items[0].Mode())
}

func TestInvoiceRepo_ConservaEscalaDeEntrada(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(pool, 0)
	owner := uuid.NewString()

	inv := sampleInvoice(owner, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	price := decimal.RequireFromString("0.125")
	inv.Items = entity.Items{entity.RegularItem{ID: uuid.NewString(), Description: "Manik", Quantity: 1000, Price: price}}
	inv.Subtotal = decimal.NewFromInt(125)
	inv.TaxPercentage = decimal.RequireFromString("11.125")
	require.NoError(t, repo.Upsert(ctx, inv))

	list, err := repo.List(ctx, repository.InvoiceFilter{OwnerID: owner})
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0].Items[0].(entity.RegularItem)
	assert.True(t, got.Price.Equal(price), got.Price.String())
	assert.True(t, got.LineAmount().Equal(list[0].Subtotal))
	assert.True(t, list[0].TaxPercentage.Equal(inv.TaxPercentage))
}

func TestInvoiceRepo_CuotaMensual(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(pool, 1)
	owner := uuid.NewString()
	nov := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	first := sampleInvoice(owner, nov)
	require.NoError(t, repo.Upsert(ctx, first))
	// Reenviar la misma no consume cuota.
	require.NoError(t, repo.Upsert(ctx, first))

	err := repo.Upsert(ctx, sampleInvoice(owner, nov.AddDate(0, 0, 5)))
	assert.ErrorIs(t, err, domain.ErrLimitReached)

	// Otro mes tiene su propia cuota.
	require.NoError(t, repo.Upsert(ctx, sampleInvoice(owner, nov.AddDate(0, 1, 0))))
}

func TestInvoiceRepo_OtroDuenoNoPuedeSobrescribir(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(pool, 0)

	inv := sampleInvoice(uuid.NewString(), time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(ctx, inv))

	inv.OwnerID = uuid.NewString()
	assert.ErrorIs(t, repo.Upsert(ctx, inv), domain.ErrForbidden)
}

func TestInvoiceRepo_DeleteIdempotente(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(pool, 0)
	owner := uuid.NewString()

	inv := sampleInvoice(owner, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(ctx, inv))
	require.NoError(t, repo.Delete(ctx, owner, inv.ID))
	require.NoError(t, repo.Delete(ctx, owner, inv.ID))

	list, err := repo.List(ctx, repository.InvoiceFilter{OwnerID: owner})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInvoiceRepo_NextSequenceAcotado(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(pool, 0)
	owner := uuid.NewString()

	for want := 1; want <= 3; want++ {
		got, err := repo.NextSequence(ctx, owner, "2025-11-01")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	got, err := repo.NextSequence(ctx, owner, "2025-11-02")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	_, err = pool.Exec(ctx, `UPDATE invoice_sequences SET last_value = 999 WHERE owner_id = $1 AND date_key = $2`, owner, "2025-11-01")
	require.NoError(t, err)
	got, err = repo.NextSequence(ctx, owner, "2025-11-01")
	require.NoError(t, err)
	assert.Equal(t, 999, got)
}

func TestStateRepo_GuardarYCargar(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewStateRepository(pool, uuid.NewString())

	st, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st)

	inv := sampleInvoice("owner", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	want := entity.StoreState{UserID: "owner", CompletedInvoices: []entity.Invoice{inv}, PendingOperations: 1}
	require.NoError(t, repo.Save(ctx, want))
	want.IsOffline = true
	require.NoError(t, repo.Save(ctx, want))

	st, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.True(t, st.IsOffline)
	require.Len(t, st.CompletedInvoices, 1)
	assert.Equal(t, inv.ID, st.CompletedInvoices[0].ID)
}

func TestOutboxRepo_ConservaOrden(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	owner := uuid.NewString()
	repo := NewOutboxRepository(pool, owner)
	now := time.Now().UTC().Truncate(time.Microsecond)

	data, err := json.Marshal(map[string]string{"id": "a"})
	require.NoError(t, err)
	ops := []entity.SyncOperation{
		{ID: uuid.NewString(), OwnerID: owner, Action: entity.SyncUpsert, EntityType: entity.EntityTypeInvoice, EntityID: "a", Data: data, EnqueuedAt: now, NextAttemptAt: now},
		{ID: uuid.NewString(), OwnerID: owner, Action: entity.SyncDelete, EntityType: entity.EntityTypeInvoice, EntityID: "b", EnqueuedAt: now, NextAttemptAt: now, Attempts: 2, LastError: "timeout", Blocked: true},
	}
	require.NoError(t, repo.Save(ctx, ops))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].EntityID)
	assert.JSONEq(t, string(data), string(got[0].Data))
	assert.Equal(t, "b", got[1].EntityID)
	assert.Equal(t, "timeout", got[1].LastError)
	assert.True(t, got[1].Blocked)

	require.NoError(t, repo.Save(ctx, nil))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCustomerRepo_CrearYListar(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewCustomerRepository(pool)
	owner := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)

	for _, name := range []string{"Siti", "Agus"} {
		require.NoError(t, repo.Create(ctx, &entity.Customer{
			ID: uuid.NewString(), OwnerID: owner, Name: name, Phone: "0812345678", CreatedAt: now, UpdatedAt: now,
		}))
	}
	list, err := repo.ListByOwner(ctx, owner, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Agus", list[0].Name)
	assert.Equal(t, entity.DefaultCustomerCategory, list[0].Category)

	missing, err := repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMonthBounds(t *testing.T) {
	from, to := monthBounds(time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestItemRow_IdaYVuelta(t *testing.T) {
	items := []entity.Item{
		entity.RegularItem{ID: "r", Description: "Kalung", Quantity: 3, Price: decimal.NewFromInt(1500)},
		entity.BuybackItem{ID: "b", Description: "Emas", Gram: decimal.RequireFromString("1.25"), BuybackRate: decimal.NewFromInt(800000)},
	}
	for _, it := range items {
		row := itemToRow(it)
		assert.True(t, row.LineAmount.Equal(it.LineAmount()))
		back, err := row.toItem()
		require.NoError(t, err)
		assert.Equal(t, it, back)
	}

	_, err := itemRow{ID: "x", Mode: "regular"}.toItem()
	assert.Error(t, err)
	_, err = itemRow{ID: "x", Mode: "otro"}.toItem()
	assert.Error(t, err)
}
