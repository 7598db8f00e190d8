package pricing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/pricing"
)

func intp(v int) *int { return &v }
func decp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func fieldErrors(t *testing.T, err error) domain.ValidationErrors {
	t.Helper()
	var ve domain.ValidationErrors
	require.True(t, errors.As(err, &ve), "se esperaba ValidationErrors, llegó %v", err)
	return ve
}

func TestBuild_Regular(t *testing.T) {
	item, err := pricing.Build(pricing.ItemInput{
		Mode: entity.ModeRegular, Description: "  Anillo  ", Quantity: intp(2), Price: decp("50000"),
		Gram: decp("3"), // del modo inactivo: se descarta
	}, "it-1")

	require.NoError(t, err)
	reg, ok := item.(entity.RegularItem)
	require.True(t, ok)
	assert.Equal(t, "Anillo", reg.Description)
	assert.Equal(t, "it-1", reg.ID)
	assert.True(t, reg.LineAmount().Equal(decimal.NewFromInt(100000)))
}

func TestBuild_Recompra(t *testing.T) {
	item, err := pricing.Build(pricing.ItemInput{
		Mode: entity.ModeBuyback, Description: "Oro", Gram: decp("5"), BuybackRate: decp("900000"),
	}, "it-2")

	require.NoError(t, err)
	assert.Equal(t, entity.ModeBuyback, item.Mode())
	assert.True(t, item.LineAmount().Equal(decimal.NewFromInt(4_500_000)))
}

func TestBuild_ErroresPorCampo(t *testing.T) {
	cases := []struct {
		name   string
		in     pricing.ItemInput
		fields []string
	}{
		{"regular vacío", pricing.ItemInput{Mode: entity.ModeRegular}, []string{pricing.FieldDescription, pricing.FieldQuantity, pricing.FieldPrice}},
		{"cantidad cero", pricing.ItemInput{Mode: entity.ModeRegular, Description: "x", Quantity: intp(0), Price: decp("1")}, []string{pricing.FieldQuantity}},
		{"precio negativo", pricing.ItemInput{Mode: entity.ModeRegular, Description: "x", Quantity: intp(1), Price: decp("-1")}, []string{pricing.FieldPrice}},
		{"gramos cero", pricing.ItemInput{Mode: entity.ModeBuyback, Description: "x", Gram: decp("0"), BuybackRate: decp("1")}, []string{pricing.FieldGram}},
		{"tarifa negativa", pricing.ItemInput{Mode: entity.ModeBuyback, Description: "x", Gram: decp("1"), BuybackRate: decp("-5")}, []string{pricing.FieldBuybackRate}},
		{"modo desconocido", pricing.ItemInput{Mode: "rental", Description: "x"}, []string{pricing.FieldMode}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pricing.Build(tc.in, "id")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			ve := fieldErrors(t, err)
			assert.Len(t, ve, len(tc.fields))
			for _, f := range tc.fields {
				assert.True(t, ve.Has(f), "falta error en %s", f)
			}
		})
	}
}

func TestBuild_PrecioCeroPermitido(t *testing.T) {
	_, err := pricing.Build(pricing.ItemInput{Mode: entity.ModeRegular, Description: "Regalo", Quantity: intp(1), Price: decp("0")}, "id")
	assert.NoError(t, err)
}

func TestCheckCompatible_RechazaOtroModo(t *testing.T) {
	existing := entity.Items{entity.RegularItem{ID: "a", Description: "x", Quantity: 1, Price: decimal.NewFromInt(1)}}

	assert.NoError(t, pricing.CheckCompatible(existing, entity.ModeRegular))
	assert.ErrorIs(t, pricing.CheckCompatible(existing, entity.ModeBuyback), domain.ErrIncompatibleMode)
	assert.NoError(t, pricing.CheckCompatible(nil, entity.ModeBuyback))
}

func TestCheckUniform(t *testing.T) {
	mixed := entity.Items{
		entity.RegularItem{ID: "a", Description: "x", Quantity: 1, Price: decimal.NewFromInt(1)},
		entity.BuybackItem{ID: "b", Description: "y", Gram: decimal.NewFromInt(1), BuybackRate: decimal.NewFromInt(1)},
	}
	assert.ErrorIs(t, pricing.CheckUniform(mixed), domain.ErrIncompatibleMode)
	assert.NoError(t, pricing.CheckUniform(mixed[:1]))
}

func TestApply_FusionaYConservaId(t *testing.T) {
	item := entity.RegularItem{ID: "a", Description: "Anillo", Quantity: 1, Price: decimal.NewFromInt(1000)}

	got, err := pricing.Apply(item, pricing.ItemPatch{Quantity: intp(3)})

	require.NoError(t, err)
	reg := got.(entity.RegularItem)
	assert.Equal(t, "a", reg.ID)
	assert.Equal(t, 3, reg.Quantity)
	assert.True(t, reg.Price.Equal(decimal.NewFromInt(1000)))
}

func TestApply_CamposDelOtroModoSeRechazan(t *testing.T) {
	item := entity.BuybackItem{ID: "g", Description: "Oro", Gram: decimal.NewFromInt(1), BuybackRate: decimal.NewFromInt(10)}
	_, err := pricing.Apply(item, pricing.ItemPatch{Price: decp("5")})
	assert.ErrorIs(t, err, domain.ErrIncompatibleMode)
}

func TestApply_Revalida(t *testing.T) {
	item := entity.RegularItem{ID: "a", Description: "Anillo", Quantity: 1, Price: decimal.NewFromInt(1000)}
	_, err := pricing.Apply(item, pricing.ItemPatch{Quantity: intp(0)})
	assert.True(t, fieldErrors(t, err).Has(pricing.FieldQuantity))
}
