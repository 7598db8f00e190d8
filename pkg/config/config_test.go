package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicer/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, config.BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 15*time.Second, cfg.Sync.Interval())
	assert.Equal(t, 50, cfg.Sync.BatchSize)
	rate, err := cfg.Invoice.TaxRate()
	require.NoError(t, err)
	assert.True(t, rate.IsZero())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("INVOICE_TAX_ENABLED", "true")
	t.Setenv("INVOICE_TAX_PERCENTAGE", "11")
	t.Setenv("INVOICE_MONTHLY_LIMIT", "30")
	t.Setenv("SYNC_MAX_BACKOFF_SECONDS", "60")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)
	assert.True(t, cfg.Invoice.TaxEnabled)
	assert.Equal(t, 30, cfg.Invoice.MonthlyLimit)
	assert.Equal(t, time.Minute, cfg.Sync.MaxBackoff())
	rate, err := cfg.Invoice.TaxRate()
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(11)))
}

func TestLoad_Rechazos(t *testing.T) {
	cases := []struct {
		name, key, value string
	}{
		{"backend desconocido", "STORE_BACKEND", "redis"},
		{"impuesto fuera de rango", "INVOICE_TAX_PERCENTAGE", "150"},
		{"impuesto no numérico", "INVOICE_TAX_PERCENTAGE", "once"},
		{"intervalo cero", "SYNC_INTERVAL_SECONDS", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "invoicer", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/invoicer?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestInvoiceConfig_LocationInvalidaUsaUTC(t *testing.T) {
	assert.Equal(t, time.UTC, config.InvoiceConfig{Timezone: "Marte/Olympus"}.Location())
}
