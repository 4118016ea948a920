package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/zaiko-api/internal/domain"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación en memoria de VariantRepository.
type VariantRepo struct {
	acc access
	now func() time.Time
}

// Create persiste la variante; el producto debe existir.
func (r *VariantRepo) Create(_ context.Context, variant *entity.Variant) error {
	return r.acc(func(st *state) error {
		if _, ok := st.products[variant.ProductID]; !ok {
			return fmt.Errorf("insert variant: producto %s no existe", variant.ProductID)
		}
		if _, ok := st.variants[variant.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := checkNonNegative(*variant); err != nil {
			return err
		}
		st.variants[variant.ID] = *variant
		return nil
	})
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	var out *entity.Variant
	err := r.acc(func(st *state) error {
		if v, ok := st.variants[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: la tx ya tiene el lock del almacén.
func (r *VariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	return r.GetByID(ctx, id)
}

// ListByProduct devuelve las variantes del producto en orden de alta.
func (r *VariantRepo) ListByProduct(_ context.Context, productID string) ([]entity.Variant, error) {
	var out []entity.Variant
	err := r.acc(func(st *state) error {
		out = variantsOf(st, productID)
		return nil
	})
	return out, err
}

// Update sobrescribe color, stocks y mínimo; incrementa Version.
func (r *VariantRepo) Update(_ context.Context, variant *entity.Variant) error {
	return r.acc(func(st *state) error {
		cur, ok := st.variants[variant.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkNonNegative(*variant); err != nil {
			return err
		}
		cur.Color = variant.Color
		cur.StockTokyo = variant.StockTokyo
		cur.StockOsaka = variant.StockOsaka
		cur.MinStock = variant.MinStock
		cur.UpdatedAt = variant.UpdatedAt
		cur.Version++
		st.variants[cur.ID] = cur
		variant.Version = cur.Version
		return nil
	})
}

// UpdateStock escribe un campo de stock e incrementa Version.
func (r *VariantRepo) UpdateStock(_ context.Context, id string, field entity.StockField, value int) (*entity.Variant, error) {
	var out *entity.Variant
	err := r.acc(func(st *state) error {
		cur, ok := st.variants[id]
		if !ok {
			return domain.ErrNotFound
		}
		if value < 0 {
			return fmt.Errorf("update stock: valor negativo %d", value)
		}
		cur.SetStock(field, value)
		cur.Version++
		cur.UpdatedAt = r.now()
		st.variants[id] = cur
		out = &cur
		return nil
	})
	return out, err
}

// checkNonNegative replica los CHECK (>= 0) del esquema SQL.
func checkNonNegative(v entity.Variant) error {
	if v.StockTokyo < 0 || v.StockOsaka < 0 || v.MinStock < 0 {
		return fmt.Errorf("variant %s: cantidades negativas", v.ID)
	}
	return nil
}
