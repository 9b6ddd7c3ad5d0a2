// Package pdf genera el estado de cuenta de una póliza en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Agencia + N° Póliza  │  Tipo de seguro + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PÓLIZA: Vigencia / Prima / IVA / Total / Modo de pago      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Vencimiento | Valor | Estado   (solo mensual)  │
//	│  TABLA: Fecha | Valor | Comisión | Notas                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Pagado / Saldo pendiente / Estado de cartera      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorMora    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa cartera.EstadoCuentaPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	agencia string
	now     func() time.Time
}

// NewMarotoPDFGenerator construye el generador; agencia aparece en el encabezado.
func NewMarotoPDFGenerator(agencia string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{agencia: agencia, now: time.Now}
}

// GenerarEstadoCuenta genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerarEstadoCuenta(_ context.Context, d *dto.DetalleCarteraResponse) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("pdf: detalle vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta póliza "+d.Poliza.NumeroPoliza, true).
		WithAuthor(g.agencia, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.agencia, &d.Poliza, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(polizaRows(&d.Poliza)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(d.Cuotas) > 0 {
		m.AddRows(seccionRow("PLAN DE CUOTAS"))
		m.AddRows(cuotasHeaderRow())
		m.AddRows(cuotasRows(d.Cuotas)...)
		m.AddRows(line.NewRow(3))
	}

	m.AddRows(seccionRow("PAGOS REGISTRADOS"))
	if len(d.Pagos) == 0 {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Sin pagos registrados.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	} else {
		m.AddRows(pagosHeaderRow())
		m.AddRows(pagosRows(d.Pagos)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(resumenRow(&d.Poliza, d.Resumen))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(agencia string, p *dto.PolizaResponse, generado time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(agencia, "Agencia de seguros"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tipo de seguro: "+nonEmpty(p.TipoSeguro, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Póliza "+p.NumeroPoliza, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+generado.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func polizaRows(p *dto.PolizaResponse) []core.Row {
	modo := p.ModoPago
	if p.ModoPago == entity.ModoPagoMensual {
		modo = fmt.Sprintf("%s (%d meses)", p.ModoPago, p.PlazoMeses)
	}
	rows := []core.Row{
		row.New(12).Add(
			col.New(12).Add(
				text.New("DATOS DE LA PÓLIZA", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(fmt.Sprintf("Vigencia: %s a %s   |   Modo de pago: %s   |   Estado: %s",
					fechaLegible(p.FechaInicio), fechaLegible(p.FechaFin), modo, p.Estado,
				), props.Text{Size: 8, Top: 7, Color: colorGray}),
			),
		),
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Prima sin IVA: $%s   |   IVA (%s%%): $%s   |   Total a pagar: $%s",
					money(p.ValorPrimaSinIVA), p.PorcentajeIVA.StringFixed(0),
					money(p.ValorIVA), money(p.ValorTotalAPagar),
				), props.Text{Size: 8, Top: 1}),
			),
		),
	}
	if p.FechaCancelacion != nil {
		detalle := "Cancelada el " + fechaLegible(*p.FechaCancelacion)
		if p.MontoDevolucion != nil {
			detalle += "   |   Devolución: $" + money(*p.MontoDevolucion)
		}
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New(detalle, props.Text{Size: 8, Top: 1, Color: colorMora}),
		)))
	}
	return rows
}

func seccionRow(titulo string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

type columna struct {
	label string
	size  int
	a     align.Type
}

// tableHeader: cabecera de tabla con el color de la agencia.
func tableHeader(cols ...columna) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cs...)
}

func cuotasHeaderRow() core.Row {
	return tableHeader(
		columna{"N°", 1, align.Center},
		columna{"Vencimiento", 4, align.Left},
		columna{"Valor cuota", 4, align.Right},
		columna{"Estado", 3, align.Center},
	)
}

func cuotasRows(cuotas []dto.CuotaResponse) []core.Row {
	result := make([]core.Row, 0, len(cuotas))
	for _, c := range cuotas {
		estado := props.Text{Size: 8, Align: align.Center, Top: 1}
		if c.Estado == entity.EstadoCuotaEnMora {
			estado.Style = fontstyle.Bold
			estado.Color = colorMora
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", c.NumeroCuota), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(fechaLegible(c.FechaVencimiento), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New("$"+money(c.MontoCuota), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(c.Estado, estado)),
		))
	}
	return result
}

func pagosHeaderRow() core.Row {
	return tableHeader(
		columna{"Fecha", 2, align.Left},
		columna{"Valor", 3, align.Right},
		columna{"Comisión", 2, align.Center},
		columna{"Notas", 5, align.Left},
	)
}

func pagosRows(pagos []dto.PagoResponse) []core.Row {
	result := make([]core.Row, 0, len(pagos))
	for _, p := range pagos {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(fechaLegible(p.FechaPago), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New("$"+money(p.MontoPagado), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(p.EstadoComision, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(p.Notas, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return result
}

// resumenRow: bloque de totales alineado a la derecha.
func resumenRow(p *dto.PolizaResponse, r dto.ResumenCartera) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	estadoColor := colorPrimary
	if p.EstadoCartera == entity.EstadoCarteraEnMora {
		estadoColor = colorMora
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Total pagado:"),
			label("Saldo pendiente:"),
			label("Estado de cartera:"),
		),
		col.New(3).Add(
			value("$"+money(r.TotalPagado)),
			value("$"+money(r.SaldoPendiente)),
			text.New(p.EstadoCartera, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: estadoColor, Right: 1,
			}),
		),
		col.New(3),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal) string {
	r := d.Round(0)
	if r.IsNegative() {
		return "-" + formatMoney(r.Neg().StringFixed(0))
	}
	return formatMoney(r.StringFixed(0))
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// fechaLegible pasa de 2006-01-02 a 02/01/2006; si no parsea devuelve el texto tal cual.
func fechaLegible(s string) string {
	t, err := time.Parse(dto.FormatoFecha, s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}
