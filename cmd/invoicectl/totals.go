package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/pricing"
	"github.com/jhoicas/invoicer/internal/domain/totals"
)

func newTotalsCmd() *cobra.Command {
	var (
		file     string
		shipping string
		tax      string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Calcula subtotal, impuesto y total de una lista de ítems en JSON",
		Long: `Lee un arreglo JSON de ítems (el mismo formato que expone la API, con
"mode": "regular" o "buyback") desde --file o stdin y calcula los totales.
El impuesto se aplica solo al subtotal, nunca al envío.`,
		Example: `  echo '[{"id":"1","mode":"regular","description":"Cincin","quantity":2,"price":"500000"}]' | \
    invoicectl totals --shipping 20000 --tax 11`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			var items entity.Items
			if err := json.NewDecoder(r).Decode(&items); err != nil {
				return fmt.Errorf("leer ítems: %w", err)
			}
			for _, it := range items {
				if err := pricing.Validate(it); err != nil {
					return err
				}
			}
			if err := pricing.CheckUniform(items); err != nil {
				return err
			}
			ship, err := decimal.NewFromString(shipping)
			if err != nil {
				return fmt.Errorf("--shipping inválido: %w", err)
			}
			rate, err := decimal.NewFromString(tax)
			if err != nil {
				return fmt.Errorf("--tax inválido: %w", err)
			}
			t := totals.Compute(items, ship, !rate.IsZero(), rate)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(t)
			}
			p := message.NewPrinter(language.Indonesian)
			for _, row := range []struct {
				label string
				value decimal.Decimal
			}{
				{"Subtotal", t.Subtotal},
				{"Envío", t.ShippingCost},
				{"Impuesto", t.TaxAmount},
				{"Total", t.Total},
			} {
				fmt.Fprintf(out, "%-9s %s\n", row.label, p.Sprint(number.Decimal(row.value.InexactFloat64(), number.MaxFractionDigits(int(entity.MoneyPlaces)))))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "archivo JSON con los ítems (por defecto stdin)")
	cmd.Flags().StringVar(&shipping, "shipping", "0", "costo de envío")
	cmd.Flags().StringVar(&tax, "tax", "0", "porcentaje de impuesto (0 = sin impuesto)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "salida JSON")
	return cmd
}
