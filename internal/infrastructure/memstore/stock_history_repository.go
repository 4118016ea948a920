package memstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo registro de auditoría en memoria (solo inserción).
type StockHistoryRepo struct {
	acc access
}

// Create agrega un registro; la variante debe existir.
func (r *StockHistoryRepo) Create(_ context.Context, h *entity.StockHistory) error {
	return r.acc(func(st *state) error {
		if _, ok := st.variants[h.VariantID]; !ok {
			return fmt.Errorf("insert stock history: variante %s no existe", h.VariantID)
		}
		st.history = append(st.history, *h)
		return nil
	})
}

// ListRecent devuelve hasta limit registros, más recientes primero.
func (r *StockHistoryRepo) ListRecent(_ context.Context, limit int) ([]entity.StockHistoryEntry, error) {
	return r.list(limit, func(entity.StockHistory) bool { return true })
}

// ListByVariant devuelve el historial de una variante, más reciente primero.
func (r *StockHistoryRepo) ListByVariant(_ context.Context, variantID string, limit int) ([]entity.StockHistoryEntry, error) {
	return r.list(limit, func(h entity.StockHistory) bool { return h.VariantID == variantID })
}

func (r *StockHistoryRepo) list(limit int, keep func(entity.StockHistory) bool) ([]entity.StockHistoryEntry, error) {
	out := []entity.StockHistoryEntry{}
	err := r.acc(func(st *state) error {
		for i := len(st.history) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
			h := st.history[i]
			if !keep(h) {
				continue
			}
			v, ok := st.variants[h.VariantID]
			if !ok {
				continue
			}
			e := entity.StockHistoryEntry{StockHistory: h, Color: v.Color, ProductID: v.ProductID}
			if p, ok := st.products[v.ProductID]; ok {
				e.ProductName = p.product.Name
			}
			out = append(out, e)
		}
		return nil
	})
	return out, err
}
