package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
	"github.com/jhoicas/zaiko-api/internal/infrastructure/memstore"
)

func seedProduct(t *testing.T, s *memstore.Store, id string, created time.Time, colors ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: id, Name: "P-" + id, CreatedAt: created, UpdatedAt: created}))
	for i, c := range colors {
		require.NoError(t, s.Variants().Create(ctx, &entity.Variant{
			ID: id + "-" + c, ProductID: id, Color: c, StockTokyo: 10, StockOsaka: 5, MinStock: 20, Position: i,
		}))
	}
}

func TestRun_RollbackSiFnFalla(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	seedProduct(t, s, "p1", time.Now(), "White")

	boom := errors.New("boom")
	err := s.Run(ctx, func(_ repository.ProductRepository, vr repository.VariantRepository, hr repository.StockHistoryRepository) error {
		_, err := vr.UpdateStock(ctx, "p1-White", entity.FieldStockTokyo, 99)
		require.NoError(t, err)
		require.NoError(t, hr.Create(ctx, &entity.StockHistory{ID: "h1", VariantID: "p1-White", Field: entity.FieldStockTokyo, OldValue: 10, NewValue: 99}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	v, err := s.Variants().GetByID(ctx, "p1-White")
	require.NoError(t, err)
	assert.Equal(t, 10, v.StockTokyo)
	assert.Equal(t, int64(0), v.Version)

	hist, err := s.History().ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	seedProduct(t, s, "p1", time.Now(), "White")

	err := s.Run(ctx, func(_ repository.ProductRepository, vr repository.VariantRepository, hr repository.StockHistoryRepository) error {
		if _, err := vr.UpdateStock(ctx, "p1-White", entity.FieldStockOsaka, 7); err != nil {
			return err
		}
		return hr.Create(ctx, &entity.StockHistory{ID: "h1", VariantID: "p1-White", Field: entity.FieldStockOsaka, OldValue: 5, NewValue: 7})
	})
	require.NoError(t, err)

	v, _ := s.Variants().GetByID(ctx, "p1-White")
	assert.Equal(t, 7, v.StockOsaka)
	assert.Equal(t, int64(1), v.Version)

	hist, _ := s.History().ListByVariant(ctx, "p1-White", 10)
	require.Len(t, hist, 1)
	assert.Equal(t, "White", hist[0].Color)
	assert.Equal(t, "P-p1", hist[0].ProductName)
}

func TestListWithVariants_MasNuevosPrimeroYVariantesEnOrden(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedProduct(t, s, "old", base, "Red", "Blue")
	seedProduct(t, s, "new", base.Add(time.Hour), "Black", "Amber", "Zinc")

	list, err := s.Products().ListWithVariants(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, []string{"Black", "Amber", "Zinc"}, []string{list[0].Variants[0].Color, list[0].Variants[1].Color, list[0].Variants[2].Color})
}

func TestDelete_CascadaVariantesEHistorial(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	seedProduct(t, s, "p1", time.Now(), "White")
	seedProduct(t, s, "p2", time.Now(), "Gray")
	require.NoError(t, s.History().Create(ctx, &entity.StockHistory{ID: "h1", VariantID: "p1-White"}))
	require.NoError(t, s.History().Create(ctx, &entity.StockHistory{ID: "h2", VariantID: "p2-Gray"}))

	ok, err := s.Products().Delete(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	v, _ := s.Variants().GetByID(ctx, "p1-White")
	assert.Nil(t, v)
	hist, _ := s.History().ListRecent(ctx, 10)
	require.Len(t, hist, 1)
	assert.Equal(t, "h2", hist[0].ID)

	ok, err = s.Products().Delete(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistory_RecientesPrimeroConLimite(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	seedProduct(t, s, "p1", time.Now(), "White")
	for _, id := range []string{"h1", "h2", "h3"} {
		require.NoError(t, s.History().Create(ctx, &entity.StockHistory{ID: id, VariantID: "p1-White"}))
	}

	hist, err := s.History().ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "h3", hist[0].ID)
	assert.Equal(t, "h2", hist[1].ID)
}

func TestVariantCreate_ProductoInexistente(t *testing.T) {
	s := memstore.New()
	err := s.Variants().Create(context.Background(), &entity.Variant{ID: "v", ProductID: "nope", Color: "Red"})
	assert.Error(t, err)
}

func TestUserUpsert_ConservaID(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	require.NoError(t, s.Users().Upsert(ctx, &entity.User{ID: "u1", Username: "admin", PasswordHash: "a", Role: entity.RoleAdmin}))

	again := &entity.User{ID: "u2", Username: "admin", PasswordHash: "b", Role: entity.RoleGuest}
	require.NoError(t, s.Users().Upsert(ctx, again))
	assert.Equal(t, "u1", again.ID)

	u, err := s.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "b", u.PasswordHash)
	assert.Equal(t, entity.RoleGuest, u.Role)
}
