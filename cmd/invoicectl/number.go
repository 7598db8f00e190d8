package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoicer/internal/domain/invoicenumber"
)

func newNumberCmd() *cobra.Command {
	var (
		date  string
		owner string
		seq   int
	)
	cmd := &cobra.Command{
		Use:   "number",
		Short: "Genera un número de factura INV-DDMMYY-OWNER8-NNN",
		Example: `  invoicectl number --owner 88a60ee2-5f1c-4d7e-9a3b-1c2d3e4f5a6b --date 2025-11-01 --seq 1
  # INV-011125-88A60EE2-001`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := time.Now()
			if date != "" {
				var err error
				if d, err = time.Parse(time.DateOnly, date); err != nil {
					return fmt.Errorf("--date debe ser YYYY-MM-DD: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), invoicenumber.Generate(d, owner, seq))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "fecha de la factura YYYY-MM-DD (por defecto hoy)")
	cmd.Flags().StringVar(&owner, "owner", "", "id del dueño (vacío = XXXXXXXX)")
	cmd.Flags().IntVar(&seq, "seq", 1, "consecutivo del día (se acota a 1..999)")
	return cmd
}
