// Package pdf genera el comprobante de pedido en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  N° Pedido + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + teléfono + dirección de entrega          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Desc. | Subtotal         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: método de pago / estado de pago / TOTAL           │
//	│  FOOTER: QR de seguimiento público                          │
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

	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 58}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptLine es una línea del pedido ya resuelta con el nombre del producto.
type ReceiptLine struct {
	ProductName string
	Item        *entity.OrderItem
}

// ReceiptGenerator genera el comprobante del pedido usando Maroto v2.
type ReceiptGenerator struct {
	companyName    string
	companyPhone   string
	companyAddress string
	baseURL        string // raíz pública para el enlace de seguimiento
}

func NewReceiptGenerator(companyName, companyPhone, companyAddress, baseURL string) *ReceiptGenerator {
	return &ReceiptGenerator{
		companyName:    companyName,
		companyPhone:   companyPhone,
		companyAddress: companyAddress,
		baseURL:        baseURL,
	}
}

// GenerateOrderReceipt genera el PDF del comprobante y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateOrderReceipt(
	_ context.Context,
	order *entity.Order,
	customer *entity.Customer,
	lines []ReceiptLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Pedido", true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range g.trackingFooterRows(order) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y N° de pedido + fecha (der).
func (g *ReceiptGenerator) headerRow(order *entity.Order) core.Row {
	fecha := order.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   %s",
				nonEmpty(g.companyPhone, "—"),
				nonEmpty(g.companyAddress, "—"),
			), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("#"+shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente y dirección de entrega.
func customerRow(customer *entity.Customer) core.Row {
	address := customer.Address
	if customer.Neighborhood != "" {
		address += " - " + customer.Neighborhood
	}
	if customer.City != "" {
		address += ", " + customer.City
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Entrega: %s",
				nonEmpty(customer.Phone, "—"),
				nonEmpty(address, "retiro en local"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas del pedido.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Desc.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableLineRows: una fila por línea del pedido.
func tableLineRows(lines []ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Item.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.Item.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.Item.Discount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.Item.Subtotal().StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: método y estado de pago a la izquierda, total a la derecha.
func totalsRow(order *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Método de pago: "+nonEmpty(order.PaymentMethod, "—"), props.Text{
				Size: 9, Top: 2,
			}),
			text.New("Estado de pago: "+order.PaymentStatus, props.Text{
				Size: 9, Top: 8, Color: colorGray,
			}),
		),
		col.New(3).Add(
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 4, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New("$"+order.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 4, Right: 1,
			}),
		),
	)
}

// trackingFooterRows: QR con el enlace público de seguimiento del pedido.
func (g *ReceiptGenerator) trackingFooterRows(order *entity.Order) []core.Row {
	if order.OrderToken == "" || g.baseURL == "" {
		return []core.Row{
			row.New(8).Add(col.New(12).Add(
				text.New("Gracias por tu compra.", props.Text{
					Style: fontstyle.Bold, Size: 9, Align: align.Center,
					Color: colorPrimary, Top: 2,
				}),
			)),
		}
	}

	trackingURL := fmt.Sprintf("%s/order/%s", g.baseURL, order.OrderToken)
	return []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(trackingURL, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para seguir\nel estado de tu pedido en línea.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Gracias por tu compra.", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 20,
					Left: 3, Color: colorPrimary,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
