package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/zaiko-api/internal/domain"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

const variantColumns = `id, product_id, color, stock_tokyo, stock_osaka, min_stock, position, version, created_at, updated_at`

// VariantRepo libro de stock sobre PostgreSQL: una fila por variante (color) con stock por ubicación.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Acepta pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

func scanVariant(row pgx.Row) (*entity.Variant, error) {
	var v entity.Variant
	err := row.Scan(&v.ID, &v.ProductID, &v.Color, &v.StockTokyo, &v.StockOsaka, &v.MinStock,
		&v.Position, &v.Version, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste una variante.
func (r *VariantRepo) Create(ctx context.Context, v *entity.Variant) error {
	query := `
		INSERT INTO variants (` + variantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, v.ID, v.ProductID, v.Color, v.StockTokyo, v.StockOsaka, v.MinStock,
		v.Position, v.Version, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	if !validID(id) {
		return nil, nil
	}
	v, err := scanVariant(r.q.QueryRow(ctx, `SELECT `+variantColumns+` FROM variants WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

// GetForUpdate obtiene la variante y bloquea la fila para update (SELECT FOR UPDATE).
func (r *VariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	if !validID(id) {
		return nil, nil
	}
	v, err := scanVariant(r.q.QueryRow(ctx, `SELECT `+variantColumns+` FROM variants WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant for update: %w", err)
	}
	return v, nil
}

// ListByProduct lista las variantes del producto en orden de alta.
func (r *VariantRepo) ListByProduct(ctx context.Context, productID string) ([]entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE product_id = $1 ORDER BY position, created_at`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []entity.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, *v)
	}
	return list, rows.Err()
}

// Update sobrescribe color, stocks y mínimo (edición del catálogo). Incrementa version.
func (r *VariantRepo) Update(ctx context.Context, v *entity.Variant) error {
	if !validID(v.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE variants
		SET color = $2, stock_tokyo = $3, stock_osaka = $4, min_stock = $5, updated_at = $6, version = version + 1
		WHERE id = $1
		RETURNING version`
	err := r.q.QueryRow(ctx, query, v.ID, v.Color, v.StockTokyo, v.StockOsaka, v.MinStock, v.UpdatedAt).Scan(&v.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update variant: %w", err)
	}
	return nil
}

// UpdateStock escribe un campo de stock e incrementa version (version = version + 1).
func (r *VariantRepo) UpdateStock(ctx context.Context, id string, field entity.StockField, value int) (*entity.Variant, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	col, err := stockColumn(field)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE variants SET ` + col + ` = $2, version = version + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + variantColumns
	v, err := scanVariant(r.q.QueryRow(ctx, query, id, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update stock: %w", err)
	}
	return v, nil
}
