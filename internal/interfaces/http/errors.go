package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mbertrand/facturation-api/internal/application/billing"
	"github.com/mbertrand/facturation-api/internal/application/dto"
	"github.com/mbertrand/facturation-api/internal/domain"
)

// respondError traduit la taxonomie d'erreurs du domaine en réponses HTTP.
// Toute erreur non reconnue devient un 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *billing.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "lignes invalides", Details: vErr.Errors,
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "données invalides"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ressource introuvable"})
	case errors.Is(err, domain.ErrSettingsNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SETTINGS_NOT_FOUND", Message: "paramètres de facturation introuvables"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "accès refusé à la ressource"})
	case errors.Is(err, domain.ErrInvoiceAlreadyPaid):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: "la facture est déjà soldée"})
	case errors.Is(err, domain.ErrAdvanceExceedsTotal):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ADVANCE_EXCEEDS_TOTAL", Message: "les acomptes couvrent déjà la totalité du montant"})
	case errors.Is(err, domain.ErrCashPaymentsDisabled):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CASH_DISABLED", Message: "les paiements en espèces sont désactivés"})
	case errors.Is(err, domain.ErrCashLimitExceeded):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CASH_LIMIT_EXCEEDED", Message: "montant supérieur au plafond légal des paiements en espèces"})
	case errors.Is(err, domain.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "statut invalide ou transition interdite"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "opération en conflit avec l'état du document"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la ressource existe déjà"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
