package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/zaiko-api/internal/domain"
	domaininv "github.com/jhoicas/zaiko-api/internal/domain/inventory"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

// ExportUseCase produce el inventario completo como CSV o PDF (la entrega del archivo es del llamador).
type ExportUseCase struct {
	productRepo repository.ProductRepository
	generator   ReportGenerator
	now         func() time.Time
}

// NewExportUseCase construye el caso de uso. generator puede ser nil si no se expone PDF.
func NewExportUseCase(productRepo repository.ProductRepository, generator ReportGenerator) *ExportUseCase {
	return &ExportUseCase{productRepo: productRepo, generator: generator, now: time.Now}
}

func (uc *ExportUseCase) rows(ctx context.Context) ([]domaininv.ExportRow, error) {
	products, err := uc.productRepo.ListWithVariants(ctx)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return domaininv.ExportRows(products), nil
}

// CSV devuelve el texto CSV y un nombre de archivo sugerido (inventory-AAAA-MM-DD.csv).
func (uc *ExportUseCase) CSV(ctx context.Context) (csv string, filename string, err error) {
	rows, err := uc.rows(ctx)
	if err != nil {
		return "", "", err
	}
	return domaininv.FormatCSV(rows), uc.filename("csv"), nil
}

// PDF devuelve el reporte PDF del inventario.
func (uc *ExportUseCase) PDF(ctx context.Context) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("export: generador PDF no configurado")
	}
	rows, err := uc.rows(ctx)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.generator.GenerateInventoryPDF(ctx, rows, uc.now())
	if err != nil {
		return nil, "", fmt.Errorf("export: generar pdf: %w", err)
	}
	return doc, uc.filename("pdf"), nil
}

func (uc *ExportUseCase) filename(ext string) string {
	return fmt.Sprintf("inventory-%s.%s", uc.now().Format("2006-01-02"), ext)
}
