package repository

import (
	"context"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos de lectura devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto dentro de la transacción en curso.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// ListWithVariants devuelve todos los productos (más nuevos primero) con sus variantes en orden de alta.
	ListWithVariants(ctx context.Context) ([]entity.Product, error)
	// Delete elimina el producto y, en cascada, sus variantes. Devuelve false si no existía.
	Delete(ctx context.Context, id string) (bool, error)
}
