package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/zaiko-api/internal/domain"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Las variantes se insertan con VariantRepo.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, product.ID, product.Name, product.ImageURL, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con sus variantes.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.get(ctx, `SELECT id, name, image_url, created_at, updated_at FROM products WHERE id = $1`, id)
	if err != nil || p == nil {
		return p, err
	}
	variants, err := NewVariantRepository(r.q).ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT id, name, image_url, created_at, updated_at FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza nombre, imagen y updated_at.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `UPDATE products SET name = $2, image_url = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, product.ID, product.Name, product.ImageURL, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListWithVariants devuelve todos los productos (más nuevos primero) con sus variantes
// en una sola consulta.
func (r *ProductRepo) ListWithVariants(ctx context.Context) ([]entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.image_url, p.created_at, p.updated_at,
		       v.id, v.color, v.stock_tokyo, v.stock_osaka, v.min_stock, v.position, v.version, v.created_at, v.updated_at
		FROM products p
		LEFT JOIN variants v ON v.product_id = p.id
		ORDER BY p.created_at DESC, p.id, v.position, v.created_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := []entity.Product{}
	for rows.Next() {
		var (
			p                          entity.Product
			vID, vColor                *string
			vTokyo, vOsaka, vMin, vPos *int
			vVersion                   *int64
			vCreated, vUpdated         *time.Time
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
			&vID, &vColor, &vTokyo, &vOsaka, &vMin, &vPos, &vVersion, &vCreated, &vUpdated); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if len(list) == 0 || list[len(list)-1].ID != p.ID {
			list = append(list, p)
		}
		if vID == nil {
			continue
		}
		last := &list[len(list)-1]
		last.Variants = append(last.Variants, entity.Variant{
			ID: *vID, ProductID: p.ID, Color: *vColor,
			StockTokyo: *vTokyo, StockOsaka: *vOsaka, MinStock: *vMin,
			Position: *vPos, Version: *vVersion, CreatedAt: *vCreated, UpdatedAt: *vUpdated,
		})
	}
	return list, rows.Err()
}

// Delete elimina el producto; variantes e historial caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
