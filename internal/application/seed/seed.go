// Package seed carga el usuario administrador y el catálogo de ejemplo.
package seed

import (
	"context"
	"fmt"

	"github.com/jhoicas/zaiko-api/internal/application/auth"
	"github.com/jhoicas/zaiko-api/internal/application/dto"
	"github.com/jhoicas/zaiko-api/internal/application/usecase"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/pkg/logger"
)

// Options credenciales a sembrar. GuestUsername vacío = no se crea invitado.
type Options struct {
	AdminUsername string
	AdminPassword string
	GuestUsername string
	GuestPassword string
}

// Result resumen de lo sembrado.
type Result struct {
	Users    int
	Products int
}

// Run asegura los usuarios y, solo si el catálogo está vacío, crea los productos de ejemplo.
// Ejecutarlo dos veces no duplica productos.
func Run(ctx context.Context, authUC *auth.AuthUseCase, productUC *usecase.ProductUseCase, opts Options, log *logger.Logger) (*Result, error) {
	res := &Result{}
	if _, err := authUC.EnsureUser(ctx, opts.AdminUsername, opts.AdminPassword, entity.RoleAdmin); err != nil {
		return nil, fmt.Errorf("seed: usuario admin: %w", err)
	}
	res.Users++
	if opts.GuestUsername != "" {
		if _, err := authUC.EnsureUser(ctx, opts.GuestUsername, opts.GuestPassword, entity.RoleGuest); err != nil {
			return nil, fmt.Errorf("seed: usuario invitado: %w", err)
		}
		res.Users++
	}

	existing, err := productUC.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("seed: listar productos: %w", err)
	}
	if existing.Total > 0 {
		log.Info().Int("products", existing.Total).Msg("catálogo no vacío, se omiten productos de ejemplo")
		return res, nil
	}

	actor := entity.Actor{Role: entity.RoleAdmin}
	for _, p := range SampleCatalog() {
		out, err := productUC.Create(ctx, actor, p)
		if err != nil {
			return nil, fmt.Errorf("seed: producto %q: %w", p.Name, err)
		}
		log.Info().Str("product", out.Name).Int("variants", len(out.Variants)).Msg("producto de ejemplo creado")
		res.Products++
	}
	return res, nil
}

// SampleCatalog cuatro productos de ejemplo; Denim Jeans/Black y Sneakers/Red quedan bajo mínimo.
func SampleCatalog() []dto.CreateProductRequest {
	img := func(s string) *string { return &s }
	return []dto.CreateProductRequest{
		{
			Name:     "Cotton T-Shirt",
			ImageURL: img("https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400"),
			Variants: []dto.VariantInput{
				{Color: "Red", StockTokyo: 50, StockOsaka: 30, MinStock: 20},
				{Color: "Blue", StockTokyo: 40, StockOsaka: 25, MinStock: 20},
				{Color: "White", StockTokyo: 60, StockOsaka: 35, MinStock: 20},
			},
		},
		{
			Name:     "Denim Jeans",
			ImageURL: img("https://images.unsplash.com/photo-1542272604-787c3835535d?w=400"),
			Variants: []dto.VariantInput{
				{Color: "Black", StockTokyo: 25, StockOsaka: 15, MinStock: 50},
				{Color: "Blue", StockTokyo: 45, StockOsaka: 35, MinStock: 30},
			},
		},
		{
			Name:     "Hoodie",
			ImageURL: img("https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=400"),
			Variants: []dto.VariantInput{
				{Color: "Gray", StockTokyo: 70, StockOsaka: 50, MinStock: 40},
				{Color: "Navy", StockTokyo: 55, StockOsaka: 45, MinStock: 40},
				{Color: "Black", StockTokyo: 80, StockOsaka: 60, MinStock: 40},
			},
		},
		{
			Name:     "Sneakers",
			ImageURL: img("https://images.unsplash.com/photo-1549298916-b41d501d3772?w=400"),
			Variants: []dto.VariantInput{
				{Color: "White", StockTokyo: 100, StockOsaka: 80, MinStock: 50},
				{Color: "Black", StockTokyo: 90, StockOsaka: 70, MinStock: 50},
				{Color: "Red", StockTokyo: 30, StockOsaka: 20, MinStock: 60},
			},
		},
	}
}
