package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mynt/inventory-tracker/internal/application/inventory"
	"github.com/mynt/inventory-tracker/internal/domain/classify"
	"github.com/mynt/inventory-tracker/internal/infrastructure/email"
	"github.com/mynt/inventory-tracker/internal/infrastructure/postgres"
	"github.com/mynt/inventory-tracker/internal/infrastructure/shopify"
	httpRouter "github.com/mynt/inventory-tracker/internal/interfaces/http"
	"github.com/mynt/inventory-tracker/pkg/config"
	"github.com/mynt/inventory-tracker/pkg/logger"
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

	// Credenciales externas completas antes de cualquier side effect.
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración incompleta")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	startRepo := postgres.NewStartRecordRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	processedRepo := postgres.NewProcessedOrderRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	alertLogRepo := postgres.NewAlertLogRepository(pool)
	tagCacheRepo := postgres.NewTagCacheRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	shopifyClient := shopify.NewClient(
		cfg.Shopify.StoreDomain, cfg.Shopify.AccessToken, cfg.Shopify.APIVersion, log,
	)
	tagResolver := inventory.NewTagResolver(tagCacheRepo, shopifyClient, cfg.Shopify.TagFetchConcurrency)
	classifier := classify.New(classify.Config{}, tagResolver)

	scanUC := inventory.NewScanUseCase(txRunner, processedRepo, settingsRepo, shopifyClient, classifier)
	projectorUC := inventory.NewProjectorUseCase(startRepo, movementRepo)
	adminUC := inventory.NewAdminUseCase(startRepo, settingsRepo)

	sink := email.NewSMTPSink(
		cfg.Alert.SMTPHost, cfg.Alert.SMTPPort, cfg.Alert.SMTPUser, cfg.Alert.SMTPPassword, cfg.Alert.From,
	)
	alertGuard := inventory.NewAlertGuard(projectorUC, alertLogRepo, sink, cfg.Alert.To, cfg.Alert.AppURL)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Minute * 5, // el escaneo puede pagar backoffs largos
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ScanHandler:      httpRouter.NewScanHandler(scanUC, log),
		InventoryHandler: httpRouter.NewInventoryHandler(adminUC, projectorUC, processedRepo, cfg.Secrets.ScanSecret),
		CronHandler:      httpRouter.NewCronHandler(scanUC, alertGuard, adminUC, log),
		ScanSecret:       cfg.Secrets.ScanSecret,
		CronSecret:       cfg.Secrets.CronSecret,
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
