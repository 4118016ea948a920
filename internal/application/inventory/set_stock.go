package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/zaiko-api/internal/application/dto"
	"github.com/jhoicas/zaiko-api/internal/domain"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	domaininv "github.com/jhoicas/zaiko-api/internal/domain/inventory"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
	"github.com/jhoicas/zaiko-api/pkg/logger"
)

// SetStockUseCase es el libro de stock: fija la cantidad de una variante en una ubicación
// y registra el cambio en el historial dentro de la misma transacción.
type SetStockUseCase struct {
	txRunner TxRunner
	observer StockObserver
	log      *logger.Logger
	now      func() time.Time
}

// Option configura un caso de uso de inventario.
type Option func(*SetStockUseCase)

// WithClock reemplaza el reloj usado para el timestamp del historial.
func WithClock(now func() time.Time) Option {
	return func(uc *SetStockUseCase) { uc.now = now }
}

// WithObserver registra un observador de cambios confirmados.
func WithObserver(o StockObserver) Option {
	return func(uc *SetStockUseCase) { uc.observer = o }
}

// NewSetStockUseCase construye el caso de uso.
func NewSetStockUseCase(txRunner TxRunner, log *logger.Logger, opts ...Option) *SetStockUseCase {
	uc := &SetStockUseCase{txRunner: txRunner, log: log, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// SetStockInput entrada de SetStock. Field acepta stockTokyo/stockOsaka o tokyo/osaka.
// ExpectedVersion es opcional: si viene y no coincide con la fila bloqueada, ErrConflict.
type SetStockInput struct {
	VariantID       string
	Field           string
	Value           int
	ExpectedVersion *int64
}

// SetStock valida antes de cualquier I/O, bloquea la fila (SELECT FOR UPDATE), escribe el valor
// y agrega un StockHistory con el valor anterior y el nuevo. Un valor igual al actual también
// se escribe y se registra (old == new). Si algo falla no queda ni escritura ni historial.
func (uc *SetStockUseCase) SetStock(ctx context.Context, actor entity.Actor, in SetStockInput) (*dto.VariantResponse, error) {
	field, ok := entity.ParseStockField(in.Field)
	if !ok {
		return nil, domain.Invalid("campo de stock desconocido: " + in.Field)
	}
	if in.VariantID == "" {
		return nil, domain.Invalid("variant_id es requerido")
	}
	if err := domaininv.ValidateStockValue(in.Value); err != nil {
		return nil, err
	}

	var (
		updated  *entity.Variant
		oldValue int
	)
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		variantRepo repository.VariantRepository,
		historyRepo repository.StockHistoryRepository,
	) error {
		current, err := variantRepo.GetForUpdate(ctx, in.VariantID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if in.ExpectedVersion != nil && *in.ExpectedVersion != current.Version {
			return domain.ErrConflict
		}
		oldValue = current.Stock(field)

		v, err := variantRepo.UpdateStock(ctx, current.ID, field, in.Value)
		if err != nil {
			return err
		}
		// El timestamp se toma con la fila ya bloqueada: por variante+campo queda en orden de commit.
		if err := historyRepo.Create(ctx, &entity.StockHistory{
			ID:        uuid.New().String(),
			VariantID: current.ID,
			Field:     field,
			OldValue:  oldValue,
			NewValue:  in.Value,
			ChangedBy: actor.UserID,
			CreatedAt: uc.now(),
		}); err != nil {
			return err
		}
		updated = v
		return nil
	})
	if err != nil {
		return nil, domain.StorageError(err)
	}

	if uc.observer != nil {
		uc.observer.StockChanged(field, oldValue, in.Value)
	}
	uc.log.Info().
		Str("variant_id", updated.ID).
		Str("field", string(field)).
		Int("old", oldValue).
		Int("new", in.Value).
		Str("user_id", actor.UserID).
		Msg("stock actualizado")

	out := ToVariantResponse(*updated)
	return &out, nil
}
