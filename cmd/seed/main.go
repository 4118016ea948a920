// seed crea las tablas, el usuario admin y el catálogo de ejemplo en PostgreSQL.
//
// Uso: go run ./cmd/seed
// Credenciales: SEED_ADMIN_USERNAME / SEED_ADMIN_PASSWORD (por defecto admin / password123).
package main

import (
	"context"
	"time"

	"github.com/jhoicas/zaiko-api/internal/application/auth"
	"github.com/jhoicas/zaiko-api/internal/application/seed"
	"github.com/jhoicas/zaiko-api/internal/application/usecase"
	"github.com/jhoicas/zaiko-api/internal/infrastructure/postgres"
	"github.com/jhoicas/zaiko-api/pkg/config"
	"github.com/jhoicas/zaiko-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "zaiko-seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema PostgreSQL")
	}

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(postgres.NewTxRunner(pool), postgres.NewProductRepository(pool), log)

	res, err := seed.Run(ctx, authUC, productUC, seed.Options{
		AdminUsername: cfg.Seed.AdminUsername,
		AdminPassword: cfg.Seed.AdminPassword,
		GuestUsername: cfg.Seed.GuestUsername,
		GuestPassword: cfg.Seed.GuestPassword,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Int("users", res.Users).
		Int("products", res.Products).
		Str("admin", cfg.Seed.AdminUsername).
		Msg("seed completado")
}
