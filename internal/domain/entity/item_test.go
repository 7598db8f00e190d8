package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicer/internal/domain/entity"
)

func TestItems_JSONSoloEmiteCamposDelModo(t *testing.T) {
	items := entity.Items{
		entity.BuybackItem{ID: "g", Description: "Oro", Gram: decimal.NewFromInt(5), BuybackRate: decimal.NewFromInt(900000)},
	}

	raw, err := json.Marshal(items)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "buyback", decoded[0]["mode"])
	assert.Contains(t, decoded[0], "gram")
	assert.Contains(t, decoded[0], "total")
	assert.NotContains(t, decoded[0], "quantity")
	assert.NotContains(t, decoded[0], "price")
}

func TestItems_UnmarshalIgnoraCamposInactivos(t *testing.T) {
	raw := `[{"id":"a","mode":"regular","description":"Anillo","quantity":2,"price":"1000","gram":"7","subtotal":"1"}]`

	var items entity.Items
	require.NoError(t, json.Unmarshal([]byte(raw), &items))

	require.Len(t, items, 1)
	reg, ok := items[0].(entity.RegularItem)
	require.True(t, ok)
	assert.True(t, reg.LineAmount().Equal(decimal.NewFromInt(2000)), "el subtotal se recalcula")
}

func TestItems_UnmarshalModoDesconocido(t *testing.T) {
	var items entity.Items
	assert.Error(t, json.Unmarshal([]byte(`[{"id":"a","mode":"rental"}]`), &items))
	assert.Error(t, json.Unmarshal([]byte(`[{"id":"a","mode":"buyback","gram":"1"}]`), &items))
}

func TestItems_NilSeCodificaComoLista(t *testing.T) {
	raw, err := json.Marshal(entity.Invoice{})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"items":[]`)
}

func TestLineAmount_Redondea(t *testing.T) {
	it := entity.BuybackItem{ID: "g", Description: "Oro", Gram: decimal.RequireFromString("0.5"), BuybackRate: decimal.NewFromInt(3)}
	assert.True(t, it.LineAmount().Equal(decimal.NewFromInt(2)), "1.5 → 2")
}
