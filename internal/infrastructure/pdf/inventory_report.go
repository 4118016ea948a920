// Package pdf implementa el reporte PDF del inventario exportado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Color | Tokio | Osaka | Total | Mín.      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: variantes / unidades / bajo mínimo                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/zaiko-api/internal/application/inventory"
	domaininv "github.com/jhoicas/zaiko-api/internal/domain/inventory"
)

var _ inventory.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 45}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador. title vacío usa "Inventory".
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Inventory"
	}
	return &MarotoReportGenerator{title: title}
}

// GenerateInventoryPDF genera el PDF con las filas en el mismo orden que el CSV.
func (g *MarotoReportGenerator) GenerateInventoryPDF(ctx context.Context, rows []domaininv.ExportRow, generatedAt time.Time) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(tableRows(rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+at.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 4,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Color", 2, align.Left),
		h("Tokio", 1, align.Right),
		h("Osaka", 1, align.Right),
		h("Total", 2, align.Right),
		h("Mín.", 2, align.Right),
	)
}

// tableRows una fila por variante; las que están bajo el mínimo se resaltan.
func tableRows(rows []domaininv.ExportRow) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		var color *props.Color
		if r.Total < r.MinStock {
			color = colorAlert
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Color: color}))
		}
		out = append(out, row.New(6).Add(
			cell(r.ProductName, 4, align.Left),
			cell(r.Color, 2, align.Left),
			cell(formatNumber(r.StockTokyo), 1, align.Right),
			cell(formatNumber(r.StockOsaka), 1, align.Right),
			cell(formatNumber(r.Total), 2, align.Right),
			cell(formatNumber(r.MinStock), 2, align.Right),
		))
	}
	return out
}

func summaryRow(rows []domaininv.ExportRow) core.Row {
	var units, low int
	for _, r := range rows {
		units += r.Total
		if r.Total < r.MinStock {
			low++
		}
	}
	return row.New(10).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Variantes: %d   |   Unidades: %s   |   Bajo mínimo: %d", len(rows), formatNumber(units), low),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatNumber inserta separadores de miles. Ej: 25000 → "25,000".
func formatNumber(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	l := len(s)
	if l <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, l+l/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
