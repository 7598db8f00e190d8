package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/invoicer/internal/application/billing"
	"github.com/jhoicas/invoicer/internal/application/dto"
	"github.com/jhoicas/invoicer/internal/infrastructure/postgres"
)

func newCustomersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Administración de clientes",
	}
	cmd.AddCommand(newCustomersImportCmd())
	return cmd
}

func newCustomersImportCmd() *cobra.Command {
	var (
		owner   string
		charset string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "import <archivo.csv>",
		Short: "Importa clientes desde un CSV con cabecera name,phone,email,address,category",
		Long: `Las columnas se reconocen por nombre en la cabecera; name y phone son
obligatorias. Los CSV exportados desde Excel suelen venir en windows-1252:
usar --charset windows-1252 para no romper los acentos.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if owner == "" && !dryRun {
				return errOwnerRequired
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := readCustomersCSV(f, charset)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if dryRun {
				for _, r := range rows {
					fmt.Fprintf(out, "%s\t%s\t%s\n", r.Name, r.Phone, r.Category)
				}
				fmt.Fprintf(out, "%d clientes leídos (sin guardar)\n", len(rows))
				return nil
			}

			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			pool, err := openPool(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := billing.NewCustomerUseCase(postgres.NewCustomerRepository(pool))
			created := 0
			for i, r := range rows {
				if _, err := uc.Create(cmd.Context(), owner, r); err != nil {
					log.Warn().Err(err).Int("row", i+2).Str("name", r.Name).Msg("cliente omitido")
					continue
				}
				created++
			}
			fmt.Fprintf(out, "%d de %d clientes importados\n", created, len(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "id del dueño de los clientes")
	cmd.Flags().StringVar(&charset, "charset", "utf-8", "codificación del archivo: utf-8, latin1, windows-1252")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "solo leer y mostrar, sin escribir en la base")
	return cmd
}

var errMissingColumn = errors.New("columna obligatoria ausente")

func decoderFor(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("charset no soportado %q", charset)
	}
}

// readCustomersCSV filas vacías se saltan; la validación de cada cliente queda en CustomerUseCase.
func readCustomersCSV(r io.Reader, charset string) ([]dto.CreateCustomerRequest, error) {
	enc, err := decoderFor(charset)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"name", "phone"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: %s", errMissingColumn, required)
		}
	}
	get := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []dto.CreateCustomerRequest
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(strings.Join(rec, "")) == "" {
			continue
		}
		out = append(out, dto.CreateCustomerRequest{
			Name:     get(rec, "name"),
			Phone:    get(rec, "phone"),
			Email:    get(rec, "email"),
			Address:  get(rec, "address"),
			Category: get(rec, "category"),
		})
	}
	return out, nil
}
