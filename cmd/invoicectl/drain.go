package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoicer/internal/application/session"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
	"github.com/jhoicas/invoicer/internal/infrastructure/filestore"
	"github.com/jhoicas/invoicer/internal/infrastructure/postgres"
	"github.com/jhoicas/invoicer/pkg/config"
	"github.com/jhoicas/invoicer/pkg/logger"
)

var errOwnerRequired = errors.New("--owner es obligatorio")

func newDrainCmd() *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Envía a PostgreSQL las operaciones pendientes del outbox local de un dueño",
		Long: `Abre la sesión del dueño con el mismo almacenamiento local que usa el
servidor (STORE_BACKEND=file lee STORE_DIR/<owner>/) y hace una pasada de
drenado contra PostgreSQL. Las operaciones que fallan quedan en el outbox con
backoff; las rechazadas (cuota, dueño ajeno) se marcan bloqueadas.

No ejecutar mientras el servidor tenga abierta la misma sesión.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if owner == "" {
				return errOwnerRequired
			}
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := openPool(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			m, err := newManager(cfg, log, pool)
			if err != nil {
				return err
			}
			s, err := m.Get(ctx, owner)
			if err != nil {
				return fmt.Errorf("abrir sesión: %w", err)
			}
			res, err := s.Queue.Drain(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "entregadas=%d fallidas=%d bloqueadas=%d pendientes=%d\n",
				res.Delivered, res.Failed, res.Blocked, res.Remaining)
			return err
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "id del dueño cuyo outbox se drena")
	return cmd
}

func openPool(ctx context.Context, cfg *config.Config, log *logger.Logger) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if err := postgres.Migrate(ctx, pool, log); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	return pool, nil
}

// localFactories estado y outbox locales según STORE_BACKEND; memory no tiene
// nada que leer desde un proceso aparte.
func localFactories(cfg *config.Config, pool *pgxpool.Pool) (session.Factories, error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		return session.Factories{
			State: func(owner string) repository.StateRepository {
				return filestore.NewStateRepository(filestore.OwnerDir(cfg.Store.Dir, owner))
			},
			Outbox: func(owner string) repository.OutboxRepository {
				return filestore.NewOutboxRepository(filestore.OwnerDir(cfg.Store.Dir, owner))
			},
		}, nil
	case config.BackendPostgres:
		return session.Factories{
			State:  func(owner string) repository.StateRepository { return postgres.NewStateRepository(pool, owner) },
			Outbox: func(owner string) repository.OutboxRepository { return postgres.NewOutboxRepository(pool, owner) },
		}, nil
	default:
		return session.Factories{}, fmt.Errorf("STORE_BACKEND=%s no guarda estado fuera del servidor", cfg.Store.Backend)
	}
}

func newManager(cfg *config.Config, log *logger.Logger, pool *pgxpool.Pool) (*session.Manager, error) {
	f, err := localFactories(cfg, pool)
	if err != nil {
		return nil, err
	}
	rate, err := cfg.Invoice.TaxRate()
	if err != nil {
		return nil, err
	}
	return session.NewManager(postgres.NewInvoiceRepository(pool, cfg.Invoice.MonthlyLimit), f, session.Options{
		Settings: entity.InvoiceSettings{
			TaxEnabled:    cfg.Invoice.TaxEnabled,
			TaxPercentage: rate,
			DefaultMode:   entity.ModeRegular,
		},
		Location:    cfg.Invoice.Location(),
		BaseBackoff: cfg.Sync.BaseBackoff(),
		MaxBackoff:  cfg.Sync.MaxBackoff(),
		BatchSize:   cfg.Sync.BatchSize,
		Logger:      log,
	}), nil
}
