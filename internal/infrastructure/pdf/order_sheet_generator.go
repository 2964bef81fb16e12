// Package pdf implementa la hoja de pedido en PDF de una recomendación de
// reposición, pensada para imprimirse y entregarse al encargado de compras.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hoja de pedido + fecha y estado                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Stock | Seguridad | Cant | P.Unit | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: renglones y costo total del pedido                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

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

	"github.com/jhoicas/Reposicion-api/internal/application/export"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

var _ export.OrderSheetGenerator = (*OrderSheetGenerator)(nil)

// OrderSheetGenerator implementa export.OrderSheetGenerator usando Maroto v2.
type OrderSheetGenerator struct{}

// NewOrderSheetGenerator construye el generador.
func NewOrderSheetGenerator() *OrderSheetGenerator { return &OrderSheetGenerator{} }

// Generate genera la hoja de pedido y devuelve sus bytes.
func (g *OrderSheetGenerator) Generate(rec *entity.Recommendation) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de Pedido", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rec))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(rec.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rec))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha + estado (der).
func headerRow(rec *entity.Recommendation) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("HOJA DE PEDIDO AL PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Recomendación de reposición de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+rec.RecommendationDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Estado: "+statusLabel(rec.Status), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de renglones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Stock", 1, align.Center),
		h("Seg.", 1, align.Center),
		h("Cant.", 1, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Prioridad", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: una fila por renglón de la recomendación.
func tableItemRows(items []entity.RecommendationItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		prioColor := colorGray
		if it.Priority == entity.PriorityHigh {
			prioColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				strconv.Itoa(it.CurrentStockSnapshot),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				strconv.Itoa(it.SafeStockSnapshot),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				strconv.Itoa(it.OrderQuantity),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.UnitPriceSnapshot.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				priorityLabel(it.Priority),
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: prioColor},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.TotalCost.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(rec *entity.Recommendation) core.Row {
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Renglones:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			}),
			text.New("TOTAL DEL PEDIDO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 7, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(rec.TotalItems), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			text.New("$"+formatMoney(rec.TotalCost.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 7, Right: 1,
			}),
		),
	)
}

func statusLabel(status string) string {
	switch status {
	case entity.RecommendationStatusPending:
		return "Pendiente"
	case entity.RecommendationStatusExecuted:
		return "Ejecutada"
	case entity.RecommendationStatusCancelled:
		return "Cancelada"
	}
	return status
}

func priorityLabel(priority string) string {
	switch priority {
	case entity.PriorityHigh:
		return "Alta"
	case entity.PriorityMedium:
		return "Media"
	case entity.PriorityLow:
		return "Baja"
	}
	return priority
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
func formatMoney(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
