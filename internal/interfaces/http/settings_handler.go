package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbertrand/facturation-api/internal/application/billing"
	"github.com/mbertrand/facturation-api/internal/application/dto"
)

// SettingsHandler gère les paramètres de facturation de l'entreprise.
type SettingsHandler struct {
	uc *billing.SettingsUseCase
}

// NewSettingsHandler construit le handler.
func NewSettingsHandler(uc *billing.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get retourne les paramètres de l'entreprise du token.
// GET /api/settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	settings, err := h.uc.Get(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

// Update modifie préfixes et politique d'encaissement en espèces.
// Les compteurs de numérotation ne sont jamais modifiables par l'API.
// PUT /api/settings
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps de requête invalide"})
	}
	settings, err := h.uc.Update(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}
