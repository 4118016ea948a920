package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zaiko-api/internal/application/dto"
	"github.com/jhoicas/zaiko-api/internal/application/inventory"
	"github.com/jhoicas/zaiko-api/internal/application/usecase"
	"github.com/jhoicas/zaiko-api/internal/domain"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
	"github.com/jhoicas/zaiko-api/internal/infrastructure/memstore"
	"github.com/jhoicas/zaiko-api/pkg/logger"
)

var admin = entity.Actor{UserID: "u-admin", Role: entity.RoleAdmin}

// createProduct da de alta un producto vía el caso de uso del catálogo.
func createProduct(t *testing.T, store *memstore.Store, name string, variants ...dto.VariantInput) *dto.ProductResponse {
	t.Helper()
	uc := usecase.NewProductUseCase(store, store.Products(), logger.Nop())
	p, err := uc.Create(context.Background(), admin, dto.CreateProductRequest{Name: name, Variants: variants})
	require.NoError(t, err)
	return p
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) StockChanged(field entity.StockField, oldValue, newValue int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, string(field))
}

// failingHistoryRunner corre la tx del store real pero con un historial que siempre falla.
type failingHistoryRunner struct {
	store *memstore.Store
}

func (r failingHistoryRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.VariantRepository, repository.StockHistoryRepository) error) error {
	return r.store.Run(ctx, func(p repository.ProductRepository, v repository.VariantRepository, h repository.StockHistoryRepository) error {
		return fn(p, v, failingHistory{h})
	})
}

type failingHistory struct {
	repository.StockHistoryRepository
}

func (failingHistory) Create(context.Context, *entity.StockHistory) error {
	return errors.New("disco lleno")
}

func TestSetStock_EscenarioTShirt(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	p := createProduct(t, store, "T-Shirt", dto.VariantInput{Color: "Red", StockTokyo: 50, StockOsaka: 30, MinStock: 60})
	red := p.Variants[0]
	assert.Equal(t, 80, red.TotalStock)
	assert.False(t, red.IsLowStock)

	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	obs := &recordingObserver{}
	uc := inventory.NewSetStockUseCase(store, logger.Nop(), inventory.WithClock(func() time.Time { return at }), inventory.WithObserver(obs))

	v, err := uc.SetStock(ctx, admin, inventory.SetStockInput{VariantID: red.ID, Field: "stockTokyo", Value: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, v.StockTokyo)
	assert.Equal(t, 30, v.StockOsaka)
	assert.Equal(t, 35, v.TotalStock)
	assert.True(t, v.IsLowStock)
	assert.Equal(t, int64(1), v.Version)

	hist, err := store.History().ListByVariant(ctx, red.ID, 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.FieldStockTokyo, hist[0].Field)
	assert.Equal(t, 50, hist[0].OldValue)
	assert.Equal(t, 5, hist[0].NewValue)
	assert.Equal(t, "u-admin", hist[0].ChangedBy)
	assert.Equal(t, at, hist[0].CreatedAt)
	assert.Equal(t, []string{"stockTokyo"}, obs.calls)
}

func TestSetStock_AliasDeUbicacion(t *testing.T) {
	store := memstore.New()
	p := createProduct(t, store, "Hoodie", dto.VariantInput{Color: "Gray", StockTokyo: 1, StockOsaka: 2})
	uc := inventory.NewSetStockUseCase(store, logger.Nop())

	v, err := uc.SetStock(context.Background(), admin, inventory.SetStockInput{VariantID: p.Variants[0].ID, Field: "Osaka", Value: 9})
	require.NoError(t, err)
	assert.Equal(t, 9, v.StockOsaka)
	assert.Equal(t, 1, v.StockTokyo)
}

func TestSetStock_MismoValorTambienSeRegistra(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	p := createProduct(t, store, "Sneakers", dto.VariantInput{Color: "White", StockTokyo: 7})
	uc := inventory.NewSetStockUseCase(store, logger.Nop())

	_, err := uc.SetStock(ctx, admin, inventory.SetStockInput{VariantID: p.Variants[0].ID, Field: "stockTokyo", Value: 7})
	require.NoError(t, err)

	hist, _ := store.History().ListByVariant(ctx, p.Variants[0].ID, 10)
	require.Len(t, hist, 1)
	assert.Equal(t, hist[0].OldValue, hist[0].NewValue)
}

func TestSetStock_RechazosNoEscribenNada(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	p := createProduct(t, store, "Jeans", dto.VariantInput{Color: "Blue", StockTokyo: 10, StockOsaka: 10})
	id := p.Variants[0].ID
	stale := int64(3)
	uc := inventory.NewSetStockUseCase(store, logger.Nop())

	cases := []struct {
		name string
		in   inventory.SetStockInput
		want error
	}{
		{"negativo", inventory.SetStockInput{VariantID: id, Field: "stockTokyo", Value: -1}, domain.ErrInvalidInput},
		{"fuera de rango", inventory.SetStockInput{VariantID: id, Field: "stockOsaka", Value: 3_000_000_000}, domain.ErrInvalidInput},
		{"campo desconocido", inventory.SetStockInput{VariantID: id, Field: "price", Value: 1}, domain.ErrInvalidInput},
		{"sin id", inventory.SetStockInput{Field: "stockTokyo", Value: 1}, domain.ErrInvalidInput},
		{"no existe", inventory.SetStockInput{VariantID: "nope", Field: "stockTokyo", Value: 1}, domain.ErrNotFound},
		{"version vieja", inventory.SetStockInput{VariantID: id, Field: "stockTokyo", Value: 1, ExpectedVersion: &stale}, domain.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.SetStock(ctx, admin, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	v, _ := store.Variants().GetByID(ctx, id)
	assert.Equal(t, 10, v.StockTokyo)
	hist, _ := store.History().ListRecent(ctx, 10)
	assert.Empty(t, hist)
}

func TestSetStock_VersionEsperadaCorrecta(t *testing.T) {
	store := memstore.New()
	p := createProduct(t, store, "Cap", dto.VariantInput{Color: "Red"})
	uc := inventory.NewSetStockUseCase(store, logger.Nop())

	current := p.Variants[0].Version
	v, err := uc.SetStock(context.Background(), admin, inventory.SetStockInput{VariantID: p.Variants[0].ID, Field: "stockTokyo", Value: 4, ExpectedVersion: &current})
	require.NoError(t, err)
	assert.Equal(t, current+1, v.Version)
}

func TestSetStock_FalloDelHistorialDeshaceLaEscritura(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	p := createProduct(t, store, "Scarf", dto.VariantInput{Color: "Green", StockTokyo: 12})
	obs := &recordingObserver{}
	uc := inventory.NewSetStockUseCase(failingHistoryRunner{store: store}, logger.Nop(), inventory.WithObserver(obs))

	_, err := uc.SetStock(ctx, admin, inventory.SetStockInput{VariantID: p.Variants[0].ID, Field: "stockTokyo", Value: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)

	v, _ := store.Variants().GetByID(ctx, p.Variants[0].ID)
	assert.Equal(t, 12, v.StockTokyo)
	assert.Equal(t, int64(0), v.Version)
	assert.Empty(t, obs.calls)
}

func TestSetStock_EscriturasConcurrentes(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	p := createProduct(t, store, "Socks", dto.VariantInput{Color: "Black"})
	id := p.Variants[0].ID
	uc := inventory.NewSetStockUseCase(store, logger.Nop())

	const n = 20
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(value int) {
			defer wg.Done()
			_, err := uc.SetStock(ctx, admin, inventory.SetStockInput{VariantID: id, Field: "stockTokyo", Value: value})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	hist, err := store.History().ListByVariant(ctx, id, 100)
	require.NoError(t, err)
	require.Len(t, hist, n)
	// cada old_value es el new_value del registro anterior: la cadena no tiene huecos
	for i := 0; i < len(hist)-1; i++ {
		assert.Equal(t, hist[i+1].NewValue, hist[i].OldValue)
	}
	assert.Equal(t, 0, hist[n-1].OldValue)

	v, _ := store.Variants().GetByID(ctx, id)
	assert.Equal(t, hist[0].NewValue, v.StockTokyo)
	assert.Equal(t, int64(n), v.Version)
}
