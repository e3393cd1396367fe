package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbertrand/facturation-api/internal/application/auth"
	"github.com/mbertrand/facturation-api/internal/application/billing"
	"github.com/mbertrand/facturation-api/internal/domain/entity"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	InvoiceUC  *billing.InvoiceUseCase
	SettingsUC *billing.SettingsUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Factures : création, acompte/solde, avoir, encaissements, statut
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/acompte", invoiceHandler.CreateAdvance)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/solde", invoiceHandler.CreateFinal)
	invoices.Post("/:id/avoir", invoiceHandler.CreateCreditNote)
	invoices.Post("/:id/payments", invoiceHandler.ApplyPayment)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)

	// Avoirs (lecture)
	creditNotes := protected.Group("/credit-notes")
	creditNotes.Get("/:id", invoiceHandler.GetCreditNote)

	// Paramètres de facturation : lecture pour tous, écriture admin/artisan
	settings := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", RequireRole(entity.RoleAdmin, entity.RoleArtisan), settingsHandler.Update)
}
