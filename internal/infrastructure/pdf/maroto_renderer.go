// Package pdf genera la versión imprimible de una factura completada con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio              │  N° Factura + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto + categoría                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA regular:  Cant | Descripción | Precio | Subtotal      │
//	│  TABLA recompra: Gramos | Descripción | Tarifa | Total       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Envío / Impuesto / TOTAL                │
//	│  FOOTER: nota + QR con número y total                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/invoicer/internal/application/billing"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/totals"
)

var _ billing.InvoiceRenderer = (*MarotoRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Options datos fijos del documento.
type Options struct {
	BusinessName   string
	Locale         language.Tag
	CurrencySymbol string
}

// MarotoRenderer implementa billing.InvoiceRenderer usando Maroto v2.
type MarotoRenderer struct {
	opts    Options
	printer *message.Printer
}

// NewMarotoRenderer construye el renderer. Locale por defecto: indonesio (separador de miles ".").
func NewMarotoRenderer(opts Options) *MarotoRenderer {
	if opts.Locale == language.Und {
		opts.Locale = language.Indonesian
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "Rp"
	}
	return &MarotoRenderer{opts: opts, printer: message.NewPrinter(opts.Locale)}
}

// RenderInvoice genera el PDF y devuelve sus bytes. Los importes salen de t tal cual.
func (g *MarotoRenderer) RenderInvoice(_ context.Context, inv entity.Invoice, t totals.Totals) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+inv.InvoiceNumber, true).
		WithAuthor(nonEmpty(g.opts.BusinessName, "invoicer"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(inv.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(inv.Mode))
	m.AddRows(g.itemRows(inv.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(inv, t))

	m.AddRows(line.NewRow(3))
	m.AddRows(g.footerRows(inv, t)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoRenderer) headerRow(inv entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.opts.BusinessName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+inv.InvoiceDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(c entity.CustomerSnapshot) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(c.Name, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s   |   %s",
				nonEmpty(c.Phone, "—"),
				nonEmpty(c.Email, "—"),
				nonEmpty(c.Category, entity.DefaultCustomerCategory),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New(nonEmpty(c.Address, ""), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
	)
}

func tableHeaderRow(mode entity.ItemMode) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	if mode == entity.ModeBuyback {
		return row.New(8).Add(
			h("Gramos", 2, align.Center),
			h("Descripción", 5, align.Left),
			h("Tarifa/g", 2, align.Right),
			h("Total", 3, align.Right),
		)
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func (g *MarotoRenderer) itemRows(items entity.Items) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		var qty, unit string
		switch v := it.(type) {
		case entity.RegularItem:
			qty, unit = g.printer.Sprintf("%d", v.Quantity), g.money(v.Price)
		case entity.BuybackItem:
			qty, unit = g.grams(v.Gram), g.money(v.BuybackRate)
		}
		rows = append(rows, row.New(7).Add(
			cell(qty, 2, align.Center),
			cell(it.ItemDescription(), 5, align.Left),
			cell(unit, 2, align.Right),
			cell(g.money(it.LineAmount()), 3, align.Right),
		))
	}
	return rows
}

func (g *MarotoRenderer) totalsRow(inv entity.Invoice, t totals.Totals) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	taxLabel := "Impuesto:"
	if inv.TaxEnabled {
		taxLabel = fmt.Sprintf("Impuesto (%s%%):", inv.TaxPercentage.String())
	}
	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 0),
			label("Envío:", 5),
			label(taxLabel, 10),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 16}),
		),
		col.New(3).Add(
			value(g.money(t.Subtotal), 0),
			value(g.money(t.ShippingCost), 5),
			value(g.money(t.TaxAmount), 10),
			text.New(g.money(t.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 16}),
		),
	)
}

func (g *MarotoRenderer) footerRows(inv entity.Invoice, t totals.Totals) []core.Row {
	var rows []core.Row
	if inv.Note != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Nota: "+inv.Note, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}
	rows = append(rows, row.New(40).Add(
		col.New(3).Add(code.NewQr(inv.InvoiceNumber+"|"+t.Total.String(), props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Gracias por su compra.", props.Text{Size: 9, Top: 8, Left: 3, Color: colorGray}),
		),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea un importe con separador de miles del locale: "Rp 1.000.000".
func (g *MarotoRenderer) money(d decimal.Decimal) string {
	return g.opts.CurrencySymbol + " " + g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(int(entity.MoneyPlaces))))
}

func (g *MarotoRenderer) grams(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(3)))
}
