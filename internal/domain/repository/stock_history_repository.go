package repository

import (
	"context"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
)

// StockHistoryRepository puerto del registro de auditoría: solo inserción y lectura.
type StockHistoryRepository interface {
	Create(ctx context.Context, history *entity.StockHistory) error
	// ListRecent devuelve hasta limit registros, más recientes primero, unidos con variante y producto.
	ListRecent(ctx context.Context, limit int) ([]entity.StockHistoryEntry, error)
	ListByVariant(ctx context.Context, variantID string, limit int) ([]entity.StockHistoryEntry, error)
}
