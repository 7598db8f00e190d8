package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicer/internal/domain/entity"
)

func TestStateRepo_SinArchivoDevuelveNil(t *testing.T) {
	repo := NewStateRepository(t.TempDir())
	st, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestStateRepo_GuardarYCargar(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nuevo")
	repo := NewStateRepository(dir)
	ctx := context.Background()

	inv := entity.Invoice{
		ID:      "inv-1",
		OwnerID: "owner",
		Mode:    entity.ModeBuyback,
		Items: entity.Items{
			entity.BuybackItem{ID: "b1", Description: "Emas", Gram: decimal.RequireFromString("2.5"), BuybackRate: decimal.NewFromInt(900000)},
		},
		Status: entity.StatusDraft,
	}
	require.NoError(t, repo.Save(ctx, entity.StoreState{UserID: "owner", CurrentInvoice: &inv}))

	st, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, st)
	require.NotNil(t, st.CurrentInvoice)
	assert.Equal(t, "inv-1", st.CurrentInvoice.ID)
	require.Len(t, st.CurrentInvoice.Items, 1)
	assert.True(t, st.CurrentInvoice.Items[0].LineAmount().Equal(decimal.NewFromInt(2250000)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no deben quedar temporales")
}

func TestStateRepo_ArchivoCorruptoEsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFile), []byte("{"), 0o644))
	_, err := NewStateRepository(dir).Load(context.Background())
	assert.Error(t, err)
}

func TestOutboxRepo_ConservaOrden(t *testing.T) {
	repo := NewOutboxRepository(t.TempDir())
	ctx := context.Background()

	ops, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ops)

	now := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	want := []entity.SyncOperation{
		{ID: "1", Action: entity.SyncUpsert, EntityType: entity.EntityTypeInvoice, EntityID: "a", EnqueuedAt: now, NextAttemptAt: now},
		{ID: "2", Action: entity.SyncDelete, EntityType: entity.EntityTypeInvoice, EntityID: "b", EnqueuedAt: now, NextAttemptAt: now, Blocked: true},
	}
	require.NoError(t, repo.Save(ctx, want))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, repo.Save(ctx, nil))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOwnerDir_NombreSeguro(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "a_b_c"), OwnerDir("data", "a/b.c"))
	assert.Equal(t, filepath.Join("data", "_anonymous"), OwnerDir("data", ""))
}
