package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/zaiko-api/internal/domain"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	acc access
}

// Create persiste un nuevo producto (las variantes se crean con VariantRepo).
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.acc(func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		st.seq++
		p := *product
		p.Variants = nil
		st.products[p.ID] = productRow{product: p, seq: st.seq}
		return nil
	})
}

// GetByID obtiene el producto con sus variantes.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.acc(func(st *state) error {
		row, ok := st.products[id]
		if !ok {
			return nil
		}
		p := row.product
		p.Variants = variantsOf(st, id)
		out = &p
		return nil
	})
	return out, err
}

// GetForUpdate dentro de una tx el lock ya es global; devuelve el producto sin variantes.
func (r *ProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.acc(func(st *state) error {
		if row, ok := st.products[id]; ok {
			p := row.product
			out = &p
		}
		return nil
	})
	return out, err
}

// Update sobrescribe nombre, imagen y updated_at.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.acc(func(st *state) error {
		row, ok := st.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		row.product.Name = product.Name
		row.product.ImageURL = product.ImageURL
		row.product.UpdatedAt = product.UpdatedAt
		st.products[product.ID] = row
		return nil
	})
}

// ListWithVariants devuelve todos los productos, más nuevos primero.
func (r *ProductRepo) ListWithVariants(_ context.Context) ([]entity.Product, error) {
	var out []entity.Product
	err := r.acc(func(st *state) error {
		rows := make([]productRow, 0, len(st.products))
		for _, row := range st.products {
			rows = append(rows, row)
		}
		sort.Slice(rows, func(i, j int) bool {
			if !rows[i].product.CreatedAt.Equal(rows[j].product.CreatedAt) {
				return rows[i].product.CreatedAt.After(rows[j].product.CreatedAt)
			}
			return rows[i].seq > rows[j].seq
		})
		out = make([]entity.Product, 0, len(rows))
		for _, row := range rows {
			p := row.product
			p.Variants = variantsOf(st, p.ID)
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

// Delete elimina el producto, sus variantes y el historial de esas variantes.
func (r *ProductRepo) Delete(_ context.Context, id string) (bool, error) {
	var deleted bool
	err := r.acc(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return nil
		}
		delete(st.products, id)
		gone := make(map[string]bool)
		for vid, v := range st.variants {
			if v.ProductID == id {
				gone[vid] = true
				delete(st.variants, vid)
			}
		}
		kept := st.history[:0:0]
		for _, h := range st.history {
			if !gone[h.VariantID] {
				kept = append(kept, h)
			}
		}
		st.history = kept
		deleted = true
		return nil
	})
	return deleted, err
}

func variantsOf(st *state, productID string) []entity.Variant {
	var out []entity.Variant
	for _, v := range st.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
