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
	"github.com/tu-usuario/discoteca-api/internal/application/analytics"
	"github.com/tu-usuario/discoteca-api/internal/application/auth"
	apporder "github.com/tu-usuario/discoteca-api/internal/application/order"
	apppurchase "github.com/tu-usuario/discoteca-api/internal/application/purchase"
	"github.com/tu-usuario/discoteca-api/internal/application/usecase"
	"github.com/tu-usuario/discoteca-api/internal/infrastructure/cache"
	infrapdf "github.com/tu-usuario/discoteca-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/discoteca-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/discoteca-api/internal/interfaces/http"
	"github.com/tu-usuario/discoteca-api/pkg/config"
	"github.com/tu-usuario/discoteca-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	genreRepo := postgres.NewGenreRepository(pool)
	artistRepo := postgres.NewArtistRepository(pool)
	albumRepo := postgres.NewAlbumRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de catálogo: REDIS_ADDR vacío la desactiva sin rutas alternas.
	var catalogCache cache.Cache
	if cfg.Redis.Addr != "" {
		catalogCache = cache.NewRedisCache(cfg.Redis.Addr, cfg.App.Name)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché Redis habilitada")
	} else {
		catalogCache = cache.NewNoop()
	}
	cacheTTL := time.Duration(cfg.Redis.TTLSeconds) * time.Second

	pdfGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := usecase.NewCatalogUseCase(genreRepo, artistRepo, albumRepo, productRepo, catalogCache, cacheTTL)
	productUC := usecase.NewProductUseCase(productRepo, albumRepo)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, productRepo)
	orderUC := apporder.NewOrderUseCase(txRunner, orderRepo, productRepo, userRepo, pdfGenerator)
	purchaseUC := apppurchase.NewPurchaseUseCase(txRunner, purchaseRepo, productRepo, supplierRepo, employeeRepo, userRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	employeeUC := usecase.NewEmployeeUseCase(txRunner, userRepo, employeeRepo)
	customerUC := usecase.NewCustomerUseCase(userRepo)
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Discoteca API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		ProductUC:   productUC,
		ReviewUC:    reviewUC,
		OrderUC:     orderUC,
		PurchaseUC:  purchaseUC,
		SupplierUC:  supplierUC,
		EmployeeUC:  employeeUC,
		CustomerUC:  customerUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
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
