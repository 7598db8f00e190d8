package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_OrdenadasPorVersion(t *testing.T) {
	names, err := migrationFiles()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(names), 2)
	assert.Equal(t, "001_init.sql", names[0])
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestMigrationFiles_MontosSinEscalaFija(t *testing.T) {
	body, err := migrationFS.ReadFile("migrations/002_unbounded_numeric.sql")
	require.NoError(t, err)
	sql := string(body)
	for _, col := range []string{"subtotal", "shipping_cost", "tax_percentage", "tax_amount", "total", "price", "gram", "buyback_rate", "line_amount"} {
		assert.Contains(t, sql, "ALTER COLUMN "+col+" TYPE NUMERIC", col)
	}
	assert.False(t, strings.Contains(sql, "NUMERIC("), "no debe fijar precisión")
}

func TestMigrationVersion(t *testing.T) {
	v, err := migrationVersion("002_unbounded_numeric.sql")
	require.NoError(t, err)
	assert.Equal(t, "002", v)
	_, err = migrationVersion("sinversion.sql")
	assert.Error(t, err)
}
