package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/zaiko-api/internal/application/dto"
	"github.com/jhoicas/zaiko-api/internal/application/inventory"
	"github.com/jhoicas/zaiko-api/internal/domain"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	domaininv "github.com/jhoicas/zaiko-api/internal/domain/inventory"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
	"github.com/jhoicas/zaiko-api/pkg/logger"
)

// ProductUseCase ciclo de vida del catálogo (producto + variantes).
// La edición sobrescribe los stocks directamente, sin historial; los ajustes
// operativos van por inventory.SetStockUseCase.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, log: log, now: time.Now}
}

// Create crea el producto y todas sus variantes en una transacción.
// No se registra historial para los valores iniciales.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := domaininv.ValidateProductName(in.Name); err != nil {
		return nil, err
	}
	if len(in.Variants) == 0 {
		return nil, domain.Invalid("se requiere al menos una variante")
	}
	specs := toSpecs(in.Variants)
	for i, s := range specs {
		if err := domaininv.ValidateVariant(i, s); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		ImageURL:  normalizeImageURL(in.ImageURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, s := range specs {
		product.Variants = append(product.Variants, newVariant(product.ID, s, i, now))
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		variantRepo repository.VariantRepository,
		_ repository.StockHistoryRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		for i := range product.Variants {
			if err := variantRepo.Create(ctx, &product.Variants[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.StorageError(err)
	}
	uc.log.Info().Str("product_id", product.ID).Int("variants", len(product.Variants)).
		Str("user_id", actor.UserID).Msg("producto creado")
	return inventory.ToProductResponse(product), nil
}

// GetByID obtiene un producto con sus variantes.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return inventory.ToProductResponse(product), nil
}

// Update reemplaza nombre e imagen y reconcilia variantes: las que traen ID se sobrescriben
// (color, stocks, mínimo) sin historial, las que no traen ID se agregan al final y las
// existentes que no vienen en la solicitud se conservan. Las filas sin color se descartan.
func (uc *ProductUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := domaininv.ValidateProductName(in.Name); err != nil {
		return nil, err
	}
	specs := domaininv.KeepFilledVariants(toSpecs(in.Variants))
	if len(specs) == 0 {
		return nil, domain.Invalid("se requiere al menos una variante")
	}
	for i, s := range specs {
		if err := domaininv.ValidateVariant(i, s); err != nil {
			return nil, err
		}
	}

	var result *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		variantRepo repository.VariantRepository,
		_ repository.StockHistoryRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		existing, err := variantRepo.ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		byID := make(map[string]entity.Variant, len(existing))
		nextPos := 0
		for _, v := range existing {
			byID[v.ID] = v
			if v.Position >= nextPos {
				nextPos = v.Position + 1
			}
		}

		now := uc.now()
		product.Name = in.Name
		product.ImageURL = normalizeImageURL(in.ImageURL)
		product.UpdatedAt = now
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}

		for _, s := range specs {
			if s.ID == "" {
				v := newVariant(product.ID, s, nextPos, now)
				nextPos++
				if err := variantRepo.Create(ctx, &v); err != nil {
					return err
				}
				continue
			}
			v, ok := byID[s.ID]
			if !ok {
				return domain.ErrNotFound
			}
			v.Color = s.Color
			v.StockTokyo = s.StockTokyo
			v.StockOsaka = s.StockOsaka
			v.MinStock = s.MinStock
			v.UpdatedAt = now
			if err := variantRepo.Update(ctx, &v); err != nil {
				return err
			}
			byID[v.ID] = v
		}

		variants, err := variantRepo.ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		product.Variants = variants
		result = product
		return nil
	})
	if err != nil {
		return nil, domain.StorageError(err)
	}
	uc.log.Info().Str("product_id", id).Str("user_id", actor.UserID).Msg("producto actualizado")
	return inventory.ToProductResponse(result), nil
}

// List devuelve los productos más nuevos primero; search filtra por nombre (vacío = todos).
func (uc *ProductUseCase) List(ctx context.Context, search string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListWithVariants(ctx)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	list = domaininv.FilterBySearch(list, search)
	items := make([]dto.ProductResponse, 0, len(list))
	for i := range list {
		items = append(items, *inventory.ToProductResponse(&list[i]))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Delete elimina el producto y sus variantes.
func (uc *ProductUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return domain.StorageError(err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	uc.log.Info().Str("product_id", id).Str("user_id", actor.UserID).Msg("producto eliminado")
	return nil
}

func toSpecs(in []dto.VariantInput) []domaininv.VariantSpec {
	out := make([]domaininv.VariantSpec, 0, len(in))
	for _, v := range in {
		out = append(out, domaininv.VariantSpec{
			ID:         v.ID,
			Color:      strings.TrimSpace(v.Color),
			StockTokyo: v.StockTokyo,
			StockOsaka: v.StockOsaka,
			MinStock:   v.MinStock,
		})
	}
	return out
}

func newVariant(productID string, s domaininv.VariantSpec, position int, now time.Time) entity.Variant {
	return entity.Variant{
		ID:         uuid.New().String(),
		ProductID:  productID,
		Color:      s.Color,
		StockTokyo: s.StockTokyo,
		StockOsaka: s.StockOsaka,
		MinStock:   s.MinStock,
		Position:   position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// normalizeImageURL trata la cadena vacía como ausencia de imagen.
func normalizeImageURL(u *string) *string {
	if u == nil || strings.TrimSpace(*u) == "" {
		return nil
	}
	s := strings.TrimSpace(*u)
	return &s
}
