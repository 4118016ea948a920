package repository

import (
	"context"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
)

// VariantRepository define el puerto del libro de stock: una fila por variante
// con el stock de cada ubicación.
type VariantRepository interface {
	Create(ctx context.Context, variant *entity.Variant) error
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Devuelve (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Variant, error)
	ListByProduct(ctx context.Context, productID string) ([]entity.Variant, error)
	// Update sobrescribe color, stocks y mínimo (edición estructural, sin historial).
	Update(ctx context.Context, variant *entity.Variant) error
	// UpdateStock escribe un solo campo de stock e incrementa Version; devuelve la variante resultante.
	UpdateStock(ctx context.Context, id string, field entity.StockField, value int) (*entity.Variant, error)
}
