package inventory

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
)

// CSVHeader cabecera fija de la exportación.
var CSVHeader = []string{"Product Name", "Color", "Tokyo Stock", "Osaka Stock", "Total Stock", "Min Stock"}

// ExportRow una fila de la exportación (una por variante).
type ExportRow struct {
	ProductName string
	Color       string
	StockTokyo  int
	StockOsaka  int
	Total       int
	MinStock    int
}

// Fields devuelve la fila como texto plano en el orden de CSVHeader.
func (r ExportRow) Fields() []string {
	return []string{
		r.ProductName,
		r.Color,
		strconv.Itoa(r.StockTokyo),
		strconv.Itoa(r.StockOsaka),
		strconv.Itoa(r.Total),
		strconv.Itoa(r.MinStock),
	}
}

// ExportRows genera una fila por variante. Los productos se recorren por nombre ascendente
// (intercalación Unicode, orden estable) y las variantes en el orden en que se agregaron al producto.
func ExportRows(products []entity.Product) []ExportRow {
	sorted := make([]entity.Product, len(products))
	copy(sorted, products)
	col := newNameCollator()
	sort.SliceStable(sorted, func(i, j int) bool { return col.CompareString(sorted[i].Name, sorted[j].Name) < 0 })

	rows := make([]ExportRow, 0)
	for _, p := range sorted {
		variants := make([]entity.Variant, len(p.Variants))
		copy(variants, p.Variants)
		sort.SliceStable(variants, func(i, j int) bool { return variants[i].Position < variants[j].Position })
		for _, v := range variants {
			rows = append(rows, ExportRow{
				ProductName: p.Name,
				Color:       v.Color,
				StockTokyo:  v.StockTokyo,
				StockOsaka:  v.StockOsaka,
				Total:       TotalStock(v),
				MinStock:    v.MinStock,
			})
		}
	}
	return rows
}

// FormatCSV une cabecera y filas con comas y saltos de línea, sin salto final.
// No se escapan comas ni comillas dentro de los valores (limitación conocida del formato).
func FormatCSV(rows []ExportRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(CSVHeader, ","))
	for _, r := range rows {
		lines = append(lines, strings.Join(r.Fields(), ","))
	}
	return strings.Join(lines, "\n")
}
