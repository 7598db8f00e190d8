package invoicenumber_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicer/internal/domain/invoicenumber"
)

var nov1 = time.Date(2025, 11, 1, 10, 30, 0, 0, time.UTC)

func TestGenerate_FormatoEsperado(t *testing.T) {
	got := invoicenumber.Generate(nov1, "88a60ee2-5f1c-4f8e-9b2a-3c1d2e4f5a6b", 1)
	assert.Equal(t, "INV-011125-88A60EE2-001", got)
}

func TestGenerate_Determinista(t *testing.T) {
	owner := "88a60ee2-5f1c"
	a := invoicenumber.Generate(nov1, owner, 42)
	b := invoicenumber.Generate(nov1, owner, 42)
	assert.Equal(t, a, b)

	next := invoicenumber.Generate(nov1, owner, 43)
	assert.Equal(t, a[:len(a)-3], next[:len(next)-3], "solo cambia el consecutivo")
	assert.Equal(t, "042", a[len(a)-3:])
	assert.Equal(t, "043", next[len(next)-3:])
}

func TestGenerate_SinDuenoUsaPlaceholder(t *testing.T) {
	got := invoicenumber.Generate(nov1, "", 7)
	assert.Equal(t, "INV-011125-XXXXXXXX-007", got)
	assert.True(t, invoicenumber.HasPlaceholder(got))
}

func TestGenerate_ConsecutivoAcotado(t *testing.T) {
	assert.Equal(t, "INV-011125-ABCDEFGH-001", invoicenumber.Generate(nov1, "abcdefgh", 0))
	assert.Equal(t, "INV-011125-ABCDEFGH-999", invoicenumber.Generate(nov1, "abcdefgh", 1500))
}

func TestOwnerCode_IdCortoSeRellena(t *testing.T) {
	assert.Equal(t, "AB12XXXX", invoicenumber.OwnerCode("ab12"))
	assert.Equal(t, invoicenumber.Placeholder, invoicenumber.OwnerCode("   "))
}

func TestParse_IdaYVuelta(t *testing.T) {
	parts, err := invoicenumber.Parse("INV-011125-88A60EE2-015")
	require.NoError(t, err)
	assert.Equal(t, "011125", parts.Date)
	assert.Equal(t, "88A60EE2", parts.OwnerCode)
	assert.Equal(t, 15, parts.Sequence)
	assert.False(t, invoicenumber.HasPlaceholder("INV-011125-88A60EE2-015"))
}

func TestParse_FormatoInvalido(t *testing.T) {
	for _, n := range []string{"", "INV-011125-88A60EE2", "FAC-011125-88A60EE2-001", "INV-0111-88A60EE2-001", "INV-011125-88A60EE2-0x1"} {
		_, err := invoicenumber.Parse(n)
		assert.Error(t, err, n)
	}
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2025-11-01", invoicenumber.DateKey(nov1))
}
