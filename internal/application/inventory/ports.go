package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	domaininv "github.com/jhoicas/zaiko-api/internal/domain/inventory"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio persistido (ni stock ni historial).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		variantRepo repository.VariantRepository,
		historyRepo repository.StockHistoryRepository,
	) error) error
}

// StockObserver recibe cada cambio de stock confirmado (métricas).
type StockObserver interface {
	StockChanged(field entity.StockField, oldValue, newValue int)
}

// ReportGenerator genera la representación PDF del inventario exportado.
type ReportGenerator interface {
	GenerateInventoryPDF(ctx context.Context, rows []domaininv.ExportRow, generatedAt time.Time) ([]byte, error)
}
