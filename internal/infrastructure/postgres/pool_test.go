package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicer/pkg/config"
)

type flakyPinger struct {
	failures int
	calls    int
}

var errRefused = errors.New("connection refused")

func (p *flakyPinger) Ping(context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errRefused
	}
	return nil
}

func TestPingWithRetry_RecuperaTrasFallos(t *testing.T) {
	p := &flakyPinger{failures: 2}
	require.NoError(t, pingWithRetry(context.Background(), p, 5, time.Millisecond))
	assert.Equal(t, 3, p.calls)
}

func TestPingWithRetry_AgotaIntentos(t *testing.T) {
	p := &flakyPinger{failures: 10}
	err := pingWithRetry(context.Background(), p, 3, time.Millisecond)
	assert.ErrorIs(t, err, errRefused)
	assert.Equal(t, 3, p.calls)
}

func TestPingWithRetry_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &flakyPinger{failures: 10}
	err := pingWithRetry(ctx, p, 5, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, p.calls)
}

func TestPoolConfigFor_DesdeCamposDB(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{
		Host: "db", Port: 5433, User: "inv", Password: "p@ss:word", DBName: "invoicer", SSLMode: "disable", MaxConns: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfigFor_DSNInvalido(t *testing.T) {
	_, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
