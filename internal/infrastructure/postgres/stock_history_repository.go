package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo registro de auditoría de stock (solo INSERT y SELECT).
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

// Create inserta un registro de historial.
func (r *StockHistoryRepo) Create(ctx context.Context, h *entity.StockHistory) error {
	query := `
		INSERT INTO stock_history (id, variant_id, field, old_value, new_value, changed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, h.ID, h.VariantID, string(h.Field), h.OldValue, h.NewValue, h.ChangedBy, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock history: %w", err)
	}
	return nil
}

const historySelect = `
	SELECT h.id, h.variant_id, h.field, h.old_value, h.new_value, h.changed_by, h.created_at,
	       v.color, v.product_id, p.name
	FROM stock_history h
	JOIN variants v ON v.id = h.variant_id
	JOIN products p ON p.id = v.product_id`

// ListRecent devuelve los últimos registros de todas las variantes.
func (r *StockHistoryRepo) ListRecent(ctx context.Context, limit int) ([]entity.StockHistoryEntry, error) {
	return r.list(ctx, historySelect+` ORDER BY h.created_at DESC, h.seq DESC LIMIT $1`, limit)
}

// ListByVariant devuelve los últimos registros de una variante.
func (r *StockHistoryRepo) ListByVariant(ctx context.Context, variantID string, limit int) ([]entity.StockHistoryEntry, error) {
	if !validID(variantID) {
		return []entity.StockHistoryEntry{}, nil
	}
	return r.list(ctx, historySelect+` WHERE h.variant_id = $2 ORDER BY h.created_at DESC, h.seq DESC LIMIT $1`, limit, variantID)
}

func (r *StockHistoryRepo) list(ctx context.Context, query string, args ...any) ([]entity.StockHistoryEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock history: %w", err)
	}
	defer rows.Close()
	list := []entity.StockHistoryEntry{}
	for rows.Next() {
		var (
			e     entity.StockHistoryEntry
			field string
		)
		if err := rows.Scan(&e.ID, &e.VariantID, &field, &e.OldValue, &e.NewValue, &e.ChangedBy, &e.CreatedAt,
			&e.Color, &e.ProductID, &e.ProductName); err != nil {
			return nil, fmt.Errorf("scan stock history: %w", err)
		}
		e.Field = entity.StockField(field)
		list = append(list, e)
	}
	return list, rows.Err()
}
