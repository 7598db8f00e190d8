package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoicer/internal/application/billing"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
	"github.com/jhoicas/invoicer/internal/infrastructure/filestore"
	infrapdf "github.com/jhoicas/invoicer/internal/infrastructure/pdf"
)

func newRenderCmd() *cobra.Command {
	var (
		owner string
		id    string
		out   string
	)
	cmd := &cobra.Command{
		Use:     "render",
		Short:   "Genera el PDF de una factura completada guardada en STORE_DIR",
		Example: `  invoicectl render --owner 88a60ee2-... --id 7c1e... -o factura.pdf`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if owner == "" {
				return errOwnerRequired
			}
			cfg, _, err := loadRuntime()
			if err != nil {
				return err
			}
			inv, err := findCompleted(cmd, filestore.NewStateRepository(filestore.OwnerDir(cfg.Store.Dir, owner)), id)
			if err != nil {
				return err
			}
			uc := billing.NewExportUseCase(infrapdf.NewMarotoRenderer(infrapdf.Options{
				BusinessName: cfg.Invoice.BusinessName,
			}))
			pdf, name, err := uc.Render(cmd.Context(), inv)
			if err != nil {
				return err
			}
			if out == "" {
				out = name
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "id del dueño")
	cmd.Flags().StringVar(&id, "id", "", "id de la factura completada")
	cmd.Flags().StringVarP(&out, "output", "o", "", "archivo de salida (por defecto el nombre de la factura)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func findCompleted(cmd *cobra.Command, repo repository.StateRepository, id string) (entity.Invoice, error) {
	st, err := repo.Load(cmd.Context())
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("leer estado: %w", err)
	}
	if st != nil {
		for _, inv := range st.CompletedInvoices {
			if inv.ID == id {
				return inv, nil
			}
		}
	}
	return entity.Invoice{}, fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
}
