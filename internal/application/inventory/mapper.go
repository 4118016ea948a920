package inventory

import (
	"github.com/jhoicas/zaiko-api/internal/application/dto"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	domaininv "github.com/jhoicas/zaiko-api/internal/domain/inventory"
)

// ToVariantResponse incluye los valores derivados (total y alerta de stock bajo).
func ToVariantResponse(v entity.Variant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:         v.ID,
		ProductID:  v.ProductID,
		Color:      v.Color,
		StockTokyo: v.StockTokyo,
		StockOsaka: v.StockOsaka,
		MinStock:   v.MinStock,
		TotalStock: domaininv.TotalStock(v),
		IsLowStock: domaininv.IsLowStock(v),
		Version:    v.Version,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

// ToProductResponse convierte un producto con sus variantes.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	variants := make([]dto.VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, ToVariantResponse(v))
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		Variants:  variants,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toHistoryResponse(h entity.StockHistoryEntry) dto.StockHistoryResponse {
	return dto.StockHistoryResponse{
		ID:          h.ID,
		VariantID:   h.VariantID,
		Field:       string(h.Field),
		OldValue:    h.OldValue,
		NewValue:    h.NewValue,
		ChangedBy:   h.ChangedBy,
		CreatedAt:   h.CreatedAt,
		Color:       h.Color,
		ProductID:   h.ProductID,
		ProductName: h.ProductName,
	}
}
