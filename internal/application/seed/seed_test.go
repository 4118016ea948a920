package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zaiko-api/internal/application/auth"
	"github.com/jhoicas/zaiko-api/internal/application/dto"
	"github.com/jhoicas/zaiko-api/internal/application/inventory"
	"github.com/jhoicas/zaiko-api/internal/application/seed"
	"github.com/jhoicas/zaiko-api/internal/application/usecase"
	"github.com/jhoicas/zaiko-api/internal/infrastructure/memstore"
	"github.com/jhoicas/zaiko-api/pkg/logger"
)

func TestRun_IdempotenteYConAlertas(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	log := logger.Nop()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: "s", ExpMinutes: 5})
	productUC := usecase.NewProductUseCase(store, store.Products(), log)
	opts := seed.Options{AdminUsername: "admin", AdminPassword: "password123", GuestUsername: "guest", GuestPassword: "guest123"}

	res, err := seed.Run(ctx, authUC, productUC, opts, log)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Users)
	assert.Equal(t, 4, res.Products)

	res, err = seed.Run(ctx, authUC, productUC, opts, log)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Products)

	list, err := productUC.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 4, list.Total)

	low, err := inventory.NewLowStockUseCase(store.Products()).List(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	// mismo déficit (10): desempata el nombre
	assert.Equal(t, "Denim Jeans", low[0].ProductName)
	assert.Equal(t, "Black", low[0].Color)
	assert.Equal(t, "Sneakers", low[1].ProductName)
	assert.Equal(t, "Red", low[1].Color)

	_, err = authUC.Login(ctx, dto.LoginRequest{Username: "admin", Password: "password123"})
	assert.NoError(t, err)
}
