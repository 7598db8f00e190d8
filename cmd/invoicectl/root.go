package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoicer/pkg/config"
	"github.com/jhoicas/invoicer/pkg/logger"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "invoicectl",
		Short: "Herramientas de operación del motor de facturas",
		Long: `invoicectl agrupa tareas de operación: generar números de factura,
calcular totales, drenar la cola de sincronización guardada en archivo hacia
PostgreSQL, renderizar el PDF de una factura completada y aplicar migraciones.

La configuración se lee del entorno (y de .env si existe), con los mismos
nombres que usa el servidor: DATABASE_URL, STORE_DIR, JWT_SECRET, etc.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newNumberCmd(),
		newTotalsCmd(),
		newDrainCmd(),
		newRenderCmd(),
		newMigrateCmd(),
		newTokenCmd(),
		newCustomersCmd(),
	)
	return root
}

// loadRuntime configuración y logger para los comandos que tocan almacenamiento.
func loadRuntime() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("invoicectl")
	return cfg, log, nil
}
