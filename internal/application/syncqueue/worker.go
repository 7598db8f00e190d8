package syncqueue

import (
	"context"
	"time"

	"github.com/jhoicas/invoicer/pkg/logger"
)

// DrainFunc una pasada de drenado (una cola o todas las de un proceso).
type DrainFunc func(ctx context.Context)

// Worker drena periódicamente y cada vez que se señala trabajo nuevo.
// Cancelar el contexto abandona los reintentos; la cola durable conserva lo pendiente.
type Worker struct {
	drain    DrainFunc
	wake     <-chan struct{}
	interval time.Duration
	log      *logger.Logger
}

// NewWorker construye el worker. wake puede ser nil (solo ticker).
func NewWorker(drain DrainFunc, wake <-chan struct{}, interval time.Duration, log *logger.Logger) *Worker {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Worker{drain: drain, wake: wake, interval: interval, log: log.Component("sync-worker")}
}

// Run bloquea hasta que ctx se cancela.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info().Dur("interval", w.interval).Msg("worker de sincronización iniciado")
	// Pasada inicial: lo que quedó pendiente de una sesión anterior.
	w.drain(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("worker de sincronización detenido")
			return
		case <-ticker.C:
			w.drain(ctx)
		case <-w.wake:
			w.drain(ctx)
		}
	}
}
