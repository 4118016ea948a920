package inventory

import (
	"fmt"
	"math"
	"strings"

	"github.com/jhoicas/zaiko-api/internal/domain"
)

// MaxQuantity tope de cualquier cantidad (columnas INTEGER en PostgreSQL).
const MaxQuantity = math.MaxInt32

func quantityInRange(n int) bool { return n >= 0 && n <= MaxQuantity }

// VariantSpec datos editables de una variante (alta o edición).
type VariantSpec struct {
	ID         string // vacío = variante nueva
	Color      string
	StockTokyo int
	StockOsaka int
	MinStock   int
}

// ValidateProductName exige nombre no vacío.
func ValidateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.Invalid("el nombre del producto es requerido")
	}
	return nil
}

// ValidateVariant exige color no vacío y cantidades entre 0 y MaxQuantity.
func ValidateVariant(i int, v VariantSpec) error {
	if strings.TrimSpace(v.Color) == "" {
		return domain.Invalid(fmt.Sprintf("variante %d: el color es requerido", i))
	}
	if v.StockTokyo < 0 || v.StockOsaka < 0 || v.MinStock < 0 {
		return domain.Invalid(fmt.Sprintf("variante %d: las cantidades no pueden ser negativas", i))
	}
	if !quantityInRange(v.StockTokyo) || !quantityInRange(v.StockOsaka) || !quantityInRange(v.MinStock) {
		return domain.Invalid(fmt.Sprintf("variante %d: las cantidades no pueden superar %d", i, MaxQuantity))
	}
	return nil
}

// ValidateStockValue exige un valor de stock entre 0 y MaxQuantity.
func ValidateStockValue(value int) error {
	if value < 0 {
		return domain.Invalid("el stock no puede ser negativo")
	}
	if value > MaxQuantity {
		return domain.Invalid(fmt.Sprintf("el stock no puede superar %d", MaxQuantity))
	}
	return nil
}

// KeepFilledVariants descarta las variantes sin color (filas vacías del formulario de edición).
func KeepFilledVariants(in []VariantSpec) []VariantSpec {
	out := make([]VariantSpec, 0, len(in))
	for _, v := range in {
		if strings.TrimSpace(v.Color) != "" {
			out = append(out, v)
		}
	}
	return out
}
