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
	"github.com/swaggo/swag"

	"github.com/jhoicas/Backoffice-api/docs"
	appanalytics "github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/auth"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/Backoffice-api/pkg/config"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	}

	redisClient, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	locationRepo := postgres.NewLocationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	handlerRepo := postgres.NewDeliveryHandlerRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	lotRepo := postgres.NewStockLotRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool, cfg.Sales.DefaultCostPerKg)
	txRunner := postgres.NewTxRunner(pool)

	salesCfg := sales.Config{
		DefaultCostPerKg: cfg.Sales.DefaultCostPerKg,
		DraftTTL:         time.Duration(cfg.Sales.DraftTTLMinutes) * time.Minute,
	}
	// PDF: comprobante de venta
	receipts := infrapdf.NewReceiptGenerator(cfg.Receipt.StoreName, cfg.Receipt.Currency, cfg.Receipt.Locale)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	if cfg.JWT.AdminEmail != "" && cfg.JWT.AdminPassword != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.JWT.AdminEmail, cfg.JWT.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.JWT.AdminEmail).Msg("administrador inicial creado")
		}
	}

	deps := httpRouter.RouterDeps{
		AuthUC:            authUC,
		LocationUC:        usecase.NewLocationUseCase(locationRepo),
		ProductUC:         usecase.NewProductUseCase(productRepo),
		ClientUC:          usecase.NewClientUseCase(clientRepo),
		EmployeeUC:        usecase.NewEmployeeUseCase(employeeRepo),
		DeliveryHandlerUC: usecase.NewDeliveryHandlerUseCase(handlerRepo, employeeRepo),
		ExpenseUC:         usecase.NewExpenseUseCase(expenseRepo, locationRepo),
		StockUC:           inventory.NewStockUseCase(lotRepo),
		PurchaseUC: inventory.NewPurchaseUseCase(
			txRunner, productRepo, locationRepo, purchaseRepo, log.Component("purchases"),
		),
		SaleUC: sales.NewSaleUseCase(
			txRunner, saleRepo, productRepo, locationRepo, clientRepo, handlerRepo,
			receipts, salesCfg, log.Component("sales"),
		),
		DraftUC: sales.NewDraftUseCase(
			cache.NewDraftStore(redisClient), lotRepo, productRepo, saleRepo, locationRepo,
			salesCfg, log.Component("drafts"),
		),
		DashboardUC: appanalytics.NewDashboardUseCase(analyticsRepo),
		JWTSecret:   cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: docs.SwaggerInfo.FilePath,
		Path:     "docs",
		Title:    cfg.App.Name,
	}))
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.Name)
		if err != nil {
			return err
		}
		c.Type("json")
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

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
