package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mbertrand/facturation-api/internal/application/auth"
	"github.com/mbertrand/facturation-api/internal/application/billing"
	"github.com/mbertrand/facturation-api/internal/domain/tva"
	"github.com/mbertrand/facturation-api/internal/infrastructure/postgres"
	httpRouter "github.com/mbertrand/facturation-api/internal/interfaces/http"
	"github.com/mbertrand/facturation-api/pkg/config"
	"github.com/mbertrand/facturation-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	// Repositories liés au pool (lectures hors transaction)
	clientRepo := postgres.NewClientRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	creditNoteRepo := postgres.NewCreditNoteRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	allocator := billing.NewSequenceAllocator()
	resolver := tva.NewResolver(tva.DefaultRules{})
	guard := billing.NewPaymentPolicyGuard(settingsRepo)

	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, clientRepo, quoteRepo, invoiceRepo, creditNoteRepo, paymentRepo,
		allocator, resolver, guard,
	)
	settingsUC := billing.NewSettingsUseCase(settingsRepo)
	authUC := auth.NewAuthUseCase(userRepo, settingsRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC:  invoiceUC,
		SettingsUC: settingsUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP arrêté")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
