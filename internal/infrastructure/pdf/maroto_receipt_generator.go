// Package pdf implementa los comprobantes impresos (cotización y ticket de venta) con Maroto v2.
//
// Layout de la página Carta:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Tipo + Folio + Fecha        │
//	│  CLIENTE: Nombre + RFC + contacto                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Importe               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL                             │
//	│  PIE: estado o forma de pago                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/Ferreteria-api/internal/application/receipt"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 176, Green: 58, Blue: 46}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ receipt.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa receipt.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	business string
}

// NewMarotoReceiptGenerator construye el generador con el nombre del negocio para el encabezado.
func NewMarotoReceiptGenerator(business string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{business: business}
}

// document datos comunes a cotización y ticket.
type document struct {
	kind     string
	folio    string
	date     string
	customer receipt.Party
	items    []entity.LineItem
	subtotal decimal.Decimal
	tax      decimal.Decimal
	total    decimal.Decimal
	footer   string
}

// GenerateQuotePDF genera el PDF de una cotización. Las cotizaciones no desglosan IVA.
func (g *MarotoReceiptGenerator) GenerateQuotePDF(_ context.Context, q *entity.Quote, customer receipt.Party) ([]byte, error) {
	return g.render(document{
		kind:     "COTIZACIÓN",
		folio:    q.ID,
		date:     q.Date.Format("02/01/2006"),
		customer: customer,
		items:    q.Items,
		subtotal: q.Total,
		total:    q.Total,
		footer:   "Estado: " + string(q.Status) + ". Precios congelados a la fecha de la cotización.",
	})
}

// GenerateSalePDF genera el ticket de una venta de mostrador.
func (g *MarotoReceiptGenerator) GenerateSalePDF(_ context.Context, s *entity.PosSale, customer receipt.Party) ([]byte, error) {
	return g.render(document{
		kind:     "TICKET DE VENTA",
		folio:    s.ID,
		date:     s.Date.Format("02/01/2006 15:04"),
		customer: customer,
		items:    s.Items,
		subtotal: s.Subtotal,
		tax:      s.Tax,
		total:    s.Total,
		footer:   "Forma de pago: " + string(s.PaymentMethod) + ". Gracias por su compra.",
	})
}

func (g *MarotoReceiptGenerator) render(d document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(d.kind, true).
		WithAuthor(g.business, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(d))
	m.AddRows(customerRow(d.customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(d.items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(d))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(d.footer, props.Text{Size: 8, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReceiptGenerator) headerRow(d document) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.business, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(d.kind, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Folio: "+shortFolio(d.folio), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+d.date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(c receipt.Party) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("RFC: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(c.TaxID, "—"),
				nonEmpty(c.Email, "—"),
				nonEmpty(c.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

func tableRows(items []entity.LineItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(nonEmpty(it.Name, it.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(FormatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(FormatMoney(it.LineTotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(d document) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			text.New("IVA 16%:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12}),
		),
		col.New(3).Add(
			value(FormatMoney(d.subtotal), 0),
			value(FormatMoney(d.tax), 6),
			grand(FormatMoney(d.total), 12),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortFolio(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
