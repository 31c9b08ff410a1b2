// Package pdf genera el comprobante imprimible de una venta.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  Tienda + ubicación  │  N° venta + fecha     │
//	│  Canal / estado / datos del canal            │
//	│  ─────────────────────────────────────────   │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal  │
//	│  ─────────────────────────────────────────   │
//	│  TOTALES: Total / Descuento / A pagar        │
//	│  (adelanto) Pagado / Saldo                   │
//	│  QR con el ID de la venta                    │
//	└──────────────────────────────────────────────┘
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

	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	domsales "github.com/jhoicas/Backoffice-api/internal/domain/sales"
)

var _ sales.ReceiptRenderer = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var channelLabels = map[entity.Channel]string{
	entity.ChannelStore:   "Venta en tienda",
	entity.ChannelOnline:  "Venta en línea",
	entity.ChannelAdvance: "Adelanto",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa sales.ReceiptRenderer usando Maroto v2.
type ReceiptGenerator struct {
	storeName string
	currency  string
	printer   *message.Printer
}

// NewReceiptGenerator construye el generador. locale define la agrupación de miles y el
// separador decimal de los montos (ej: "fr" -> 1 234,50).
func NewReceiptGenerator(storeName, currency, locale string) *ReceiptGenerator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.French
	}
	return &ReceiptGenerator{
		storeName: storeName,
		currency:  currency,
		printer:   message.NewPrinter(tag),
	}
}

// RenderSaleReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) RenderSaleReceipt(_ context.Context, sale *entity.Sale, location *entity.Location) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale, location))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.channelRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRows(domsales.SummarizeSale(sale))...)

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(30).Add(
		col.New(4).Add(code.NewQr(sale.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(text.New("Gracias por su compra.", props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 10, Left: 3, Color: colorPrimary,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ReceiptGenerator) headerRow(sale *entity.Sale, location *entity.Location) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(location.Name+nonEmpty(prefixed(" · ", location.Address), ""), props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// channelRow canal, estado y los datos propios del canal.
func (g *ReceiptGenerator) channelRow(sale *entity.Sale) core.Row {
	detail := ""
	switch ch := sale.Channel.(type) {
	case *entity.OnlineDetails:
		detail = "Seguimiento: " + nonEmpty(ch.TrackingNumber, "-")
	case *entity.AdvanceDetails:
		detail = "Cliente: " + shortID(ch.ClientID)
	case *entity.StoreDetails:
	}
	return row.New(10).Add(
		col.New(6).Add(text.New(channelLabels[sale.ChannelType()], props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2,
		})),
		col.New(6).Add(text.New(string(sale.Status)+nonEmpty(prefixed("   ", detail), ""), props.Text{
			Size: 8, Align: align.Right, Top: 2, Color: colorGray,
		})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *ReceiptGenerator) itemRows(items []entity.SaleItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		qty := it.Quantity()
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(qty.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.ProductName+" - "+it.VariantName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(it.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(it.Price.Mul(qty)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *ReceiptGenerator) totalsRows(s domsales.Summary) []core.Row {
	lines := [][2]string{
		{"Total:", g.money(s.TotalAmount)},
		{"Descuento:", g.money(s.DiscountAmount)},
		{"A pagar:", g.money(s.AmountPayable)},
	}
	if s.PaidAmount != nil {
		lines = append(lines,
			[2]string{"Pagado:", g.money(*s.PaidAmount)},
			[2]string{"Saldo:", g.money(*s.RemainingAmount)},
		)
	}
	if !s.DeliveryCost.IsZero() {
		lines = append(lines, [2]string{"Envío:", g.money(s.DeliveryCost)})
	}

	rows := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		style := props.Text{Size: 9, Align: align.Right, Right: 1}
		if i == 2 {
			style = props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Color: colorPrimary}
		}
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(l[0], style)),
			col.New(3).Add(text.New(l[1], style)),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con dos decimales y la agrupación del locale del generador.
func (g *ReceiptGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64()) + " " + g.currency
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

// shortID primeros 8 caracteres de un UUID, suficiente para el mostrador.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
