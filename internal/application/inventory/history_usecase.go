package inventory

import (
	"context"

	"github.com/jhoicas/zaiko-api/internal/application/dto"
	"github.com/jhoicas/zaiko-api/internal/domain"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

// Límites de consulta del historial.
const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 500
)

// HistoryUseCase lectura del registro de auditoría de stock.
type HistoryUseCase struct {
	historyRepo  repository.StockHistoryRepository
	variantRepo  repository.VariantRepository
	defaultLimit int
}

// NewHistoryUseCase construye el caso de uso. defaultLimit <= 0 usa DefaultHistoryLimit.
func NewHistoryUseCase(historyRepo repository.StockHistoryRepository, variantRepo repository.VariantRepository, defaultLimit int) *HistoryUseCase {
	if defaultLimit <= 0 || defaultLimit > MaxHistoryLimit {
		defaultLimit = DefaultHistoryLimit
	}
	return &HistoryUseCase{historyRepo: historyRepo, variantRepo: variantRepo, defaultLimit: defaultLimit}
}

func (uc *HistoryUseCase) normalize(limit int) int {
	if limit <= 0 {
		return uc.defaultLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

// ListRecent devuelve los cambios más recientes de todas las variantes, más nuevos primero.
func (uc *HistoryUseCase) ListRecent(ctx context.Context, limit int) (*dto.StockHistoryListResponse, error) {
	limit = uc.normalize(limit)
	list, err := uc.historyRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	items := make([]dto.StockHistoryResponse, 0, len(list))
	for _, h := range list {
		items = append(items, toHistoryResponse(h))
	}
	return &dto.StockHistoryListResponse{Items: items, Limit: limit}, nil
}

// ListByVariant devuelve el historial de una variante, más nuevo primero.
func (uc *HistoryUseCase) ListByVariant(ctx context.Context, variantID string, limit int) (*dto.StockHistoryListResponse, error) {
	limit = uc.normalize(limit)
	v, err := uc.variantRepo.GetByID(ctx, variantID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.historyRepo.ListByVariant(ctx, variantID, limit)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	items := make([]dto.StockHistoryResponse, 0, len(list))
	for _, h := range list {
		items = append(items, toHistoryResponse(h))
	}
	return &dto.StockHistoryListResponse{Items: items, Limit: limit}, nil
}
