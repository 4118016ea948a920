package inventory

import (
	"context"

	"github.com/jhoicas/zaiko-api/internal/application/dto"
	"github.com/jhoicas/zaiko-api/internal/domain"
	domaininv "github.com/jhoicas/zaiko-api/internal/domain/inventory"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

// LowStockUseCase genera la lista de reposición: variantes con total por debajo del mínimo,
// con la cantidad sugerida para volver al mínimo y una prioridad (1 = más urgente).
type LowStockUseCase struct {
	productRepo repository.ProductRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(productRepo repository.ProductRepository) *LowStockUseCase {
	return &LowStockUseCase{productRepo: productRepo}
}

// List devuelve las variantes en alerta ordenadas por mayor déficit.
func (uc *LowStockUseCase) List(ctx context.Context) ([]dto.LowStockItemResponse, error) {
	products, err := uc.productRepo.ListWithVariants(ctx)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	items := domaininv.LowStockItems(products)
	out := make([]dto.LowStockItemResponse, 0, len(items))
	for i, it := range items {
		out = append(out, dto.LowStockItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			VariantID:   it.Variant.ID,
			Color:       it.Variant.Color,
			StockTokyo:  it.Variant.StockTokyo,
			StockOsaka:  it.Variant.StockOsaka,
			TotalStock:  it.Total,
			MinStock:    it.Variant.MinStock,
			Deficit:     it.Deficit,
			Priority:    i + 1,
		})
	}
	return out, nil
}
