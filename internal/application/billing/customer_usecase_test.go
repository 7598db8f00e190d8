package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicer/internal/application/billing"
	"github.com/jhoicas/invoicer/internal/application/dto"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/infrastructure/memory"
)

func TestCustomerCreate_CategoriaPorDefecto(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewCustomerRepo())

	out, err := uc.Create(context.Background(), "owner-a", dto.CreateCustomerRequest{Name: " Ana ", Phone: "3001234567"})

	require.NoError(t, err)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, entity.DefaultCustomerCategory, out.Category)
	assert.Equal(t, "owner-a", out.OwnerID)
}

func TestCustomerCreate_CamposObligatorios(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewCustomerRepo())

	_, err := uc.Create(context.Background(), "owner-a", dto.CreateCustomerRequest{})

	var ve domain.ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Has("name"))
	assert.True(t, ve.Has("phone"))
}

func TestCustomerSnapshot_DeOtroDuenoProhibido(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewCustomerRepo())
	ctx := context.Background()
	created, err := uc.Create(ctx, "owner-a", dto.CreateCustomerRequest{Name: "Ana", Phone: "3001234567", Category: "VIP"})
	require.NoError(t, err)

	snap, err := uc.Snapshot(ctx, "owner-a", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "VIP", snap.Category)

	_, err = uc.Snapshot(ctx, "owner-b", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Snapshot(ctx, "owner-a", "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerList_SoloDelDueno(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewCustomerRepo())
	ctx := context.Background()
	for _, n := range []string{"Beto", "Ana"} {
		_, err := uc.Create(ctx, "owner-a", dto.CreateCustomerRequest{Name: n, Phone: "3001234567"})
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, "owner-b", dto.CreateCustomerRequest{Name: "Carla", Phone: "3001234567"})
	require.NoError(t, err)

	list, err := uc.List(ctx, "owner-a", dto.PageRequest{})

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Name)
}
