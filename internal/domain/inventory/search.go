package inventory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
)

// FilterBySearch filtra por coincidencia parcial del nombre del producto, sin distinguir
// mayúsculas (case folding Unicode). Consulta vacía devuelve la lista tal cual.
func FilterBySearch(products []entity.Product, query string) []entity.Product {
	if strings.TrimSpace(query) == "" {
		return products
	}
	// cases.Caser no es seguro entre goroutines: uno por llamada.
	fold := cases.Fold()
	needle := fold.String(query)
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(fold.String(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}
