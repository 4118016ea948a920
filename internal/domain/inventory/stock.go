// Package inventory contiene las reglas puras sobre el stock de variantes:
// totales, alerta de stock bajo, filas de exportación y búsqueda por nombre.
// Ninguna función de este paquete hace I/O ni modifica su entrada.
package inventory

import (
	"sort"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
)

// TotalStock suma el stock de Tokio y Osaka.
func TotalStock(v entity.Variant) int {
	return v.StockTokyo + v.StockOsaka
}

// IsLowStock indica si el total está estrictamente por debajo del mínimo.
// Total igual al mínimo NO es stock bajo.
func IsLowStock(v entity.Variant) bool {
	return TotalStock(v) < v.MinStock
}

// LowStockItem una variante en alerta con su déficit respecto al mínimo.
type LowStockItem struct {
	ProductID   string
	ProductName string
	Variant     entity.Variant
	Total       int
	Deficit     int // MinStock - Total, siempre > 0
}

// LowStockItems devuelve las variantes en alerta ordenadas por mayor déficit,
// luego por nombre de producto y color.
func LowStockItems(products []entity.Product) []LowStockItem {
	items := make([]LowStockItem, 0)
	for _, p := range products {
		for _, v := range p.Variants {
			if !IsLowStock(v) {
				continue
			}
			total := TotalStock(v)
			items = append(items, LowStockItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Variant:     v,
				Total:       total,
				Deficit:     v.MinStock - total,
			})
		}
	}
	col := newNameCollator()
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Deficit != b.Deficit {
			return a.Deficit > b.Deficit
		}
		if c := col.CompareString(a.ProductName, b.ProductName); c != 0 {
			return c < 0
		}
		return col.CompareString(a.Variant.Color, b.Variant.Color) < 0
	})
	return items
}
