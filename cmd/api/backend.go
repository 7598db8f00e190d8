package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoicer/internal/application/session"
	"github.com/jhoicas/invoicer/internal/domain/repository"
	"github.com/jhoicas/invoicer/internal/infrastructure/filestore"
	"github.com/jhoicas/invoicer/internal/infrastructure/memory"
	"github.com/jhoicas/invoicer/internal/infrastructure/postgres"
	"github.com/jhoicas/invoicer/pkg/config"
	"github.com/jhoicas/invoicer/pkg/logger"
)

// backend adaptadores elegidos según STORE_BACKEND.
type backend struct {
	remote    repository.RemoteInvoiceService
	customers repository.CustomerRepository
	factories session.Factories
	close     func()
}

// openBackend memory no toca la base; file y postgres usan PostgreSQL como servicio
// remoto y difieren en dónde guardan el estado local de cada sesión.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Store.Backend == config.BackendMemory {
		log.Warn().Msg("STORE_BACKEND=memory: los datos se pierden al reiniciar")
		return &backend{
			remote:    memory.NewRemoteService(cfg.Invoice.MonthlyLimit),
			customers: memory.NewCustomerRepo(),
			factories: session.Factories{
				State:  func(string) repository.StateRepository { return memory.NewStateRepo() },
				Outbox: func(string) repository.OutboxRepository { return memory.NewOutboxRepo() },
			},
			close: func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if err := postgres.Migrate(ctx, pool, log); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migraciones: %w", err)
	}

	b := &backend{
		remote:    postgres.NewInvoiceRepository(pool, cfg.Invoice.MonthlyLimit),
		customers: postgres.NewCustomerRepository(pool),
		close:     pool.Close,
	}
	switch cfg.Store.Backend {
	case config.BackendFile:
		b.factories = session.Factories{
			State: func(owner string) repository.StateRepository {
				return filestore.NewStateRepository(filestore.OwnerDir(cfg.Store.Dir, owner))
			},
			Outbox: func(owner string) repository.OutboxRepository {
				return filestore.NewOutboxRepository(filestore.OwnerDir(cfg.Store.Dir, owner))
			},
		}
	default:
		b.factories = session.Factories{
			State:  func(owner string) repository.StateRepository { return postgres.NewStateRepository(pool, owner) },
			Outbox: func(owner string) repository.OutboxRepository { return postgres.NewOutboxRepository(pool, owner) },
		}
	}
	return b, nil
}
