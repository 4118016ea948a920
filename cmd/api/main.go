package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/zaiko-api/internal/application/auth"
	"github.com/jhoicas/zaiko-api/internal/application/inventory"
	"github.com/jhoicas/zaiko-api/internal/application/seed"
	"github.com/jhoicas/zaiko-api/internal/application/usecase"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
	"github.com/jhoicas/zaiko-api/internal/infrastructure/memstore"
	"github.com/jhoicas/zaiko-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/zaiko-api/internal/infrastructure/pdf"
	"github.com/jhoicas/zaiko-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/zaiko-api/internal/interfaces/http"
	"github.com/jhoicas/zaiko-api/pkg/config"
	"github.com/jhoicas/zaiko-api/pkg/logger"
)

// stores agrupa los adaptadores de persistencia elegidos por STORE_DRIVER.
type stores struct {
	tx       inventory.TxRunner
	products repository.ProductRepository
	variants repository.VariantRepository
	history  repository.StockHistoryRepository
	users    repository.UserRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	st := openStores(ctx, cfg, log)
	defer st.close()

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(st.tx, st.products, log)

	// En memoria no hay persistencia: se siembra al arrancar.
	if cfg.Store.Driver == config.StoreDriverMemory {
		if _, err := seed.Run(ctx, authUC, productUC, seed.Options{
			AdminUsername: cfg.Seed.AdminUsername,
			AdminPassword: cfg.Seed.AdminPassword,
			GuestUsername: cfg.Seed.GuestUsername,
			GuestPassword: cfg.Seed.GuestPassword,
		}, log); err != nil {
			log.Fatal().Err(err).Msg("sembrar almacén en memoria")
		}
	}

	appMetrics := metrics.New("zaiko")
	setStockUC := inventory.NewSetStockUseCase(st.tx, log, inventory.WithObserver(appMetrics))
	historyUC := inventory.NewHistoryUseCase(st.history, st.variants, cfg.Inventory.HistoryDefaultLimit)
	lowStockUC := inventory.NewLowStockUseCase(st.products)
	exportUC := inventory.NewExportUseCase(st.products, infrapdf.NewMarotoReportGenerator(cfg.App.Name+" Inventory"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(appMetrics.Middleware())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs (solo si existe el archivo)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})
	app.Get("/metrics", appMetrics.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		SetStockUC: setStockUC,
		HistoryUC:  historyUC,
		LowStockUC: lowStockUC,
		ExportUC:   exportUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) stores {
	if cfg.Store.Driver == config.StoreDriverMemory {
		m := memstore.New()
		return stores{
			tx:       m,
			products: m.Products(),
			variants: m.Variants(),
			history:  m.History(),
			users:    m.Users(),
			close:    func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if err := postgres.ApplySchema(ctx, pool); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("esquema PostgreSQL")
	}
	return stores{
		tx:       postgres.NewTxRunner(pool),
		products: postgres.NewProductRepository(pool),
		variants: postgres.NewVariantRepository(pool),
		history:  postgres.NewStockHistoryRepository(pool),
		users:    postgres.NewUserRepository(pool),
		close:    pool.Close,
	}
}
