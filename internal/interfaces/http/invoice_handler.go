package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbertrand/facturation-api/internal/application/billing"
	"github.com/mbertrand/facturation-api/internal/application/dto"
)

// InvoiceHandler gère les requêtes HTTP de facturation (protégé).
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler construit le handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create crée une facture standard : calculs, TVA, numérotation, persistance
// atomique.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps de requête invalide"})
	}
	invoice, err := h.uc.CreateInvoice(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// CreateAdvance crée une facture d'acompte (numéro PREFIX-AC-YYYY-NNNN).
// POST /api/invoices/acompte
func (h *InvoiceHandler) CreateAdvance(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	var in dto.CreateAdvanceInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps de requête invalide"})
	}
	invoice, err := h.uc.CreateAdvanceInvoice(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// CreateFinal crée la facture de solde déduisant l'acompte parent.
// POST /api/invoices/:id/solde
func (h *InvoiceHandler) CreateFinal(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	parentID := c.Params("id")
	if parentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	var in dto.CreateFinalInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps de requête invalide"})
	}
	in.ParentInvoiceID = parentID
	invoice, err := h.uc.CreateFinalInvoice(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// CreateCreditNote contrepasse intégralement une facture par un avoir.
// POST /api/invoices/:id/avoir
func (h *InvoiceHandler) CreateCreditNote(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	invoiceID := c.Params("id")
	if invoiceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	note, err := h.uc.CreateCreditNoteFromInvoice(c.Context(), companyID, invoiceID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// ApplyPayment enregistre un encaissement sur une facture.
// POST /api/invoices/:id/payments
func (h *InvoiceHandler) ApplyPayment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	invoiceID := c.Params("id")
	if invoiceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps de requête invalide"})
	}
	payment, err := h.uc.ApplyPayment(c.Context(), companyID, invoiceID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// UpdateStatus change manuellement le statut (pending ⇄ overdue).
// PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	invoiceID := c.Params("id")
	if invoiceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps de requête invalide"})
	}
	if err := h.uc.UpdateStatus(c.Context(), companyID, invoiceID, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID retourne le détail complet d'une facture (lignes et encaissements).
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	invoice, err := h.uc.GetInvoice(c.Context(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// List retourne les factures de l'entreprise.
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	invoices, err := h.uc.ListInvoices(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoices)
}

// GetCreditNote retourne le détail d'un avoir.
// GET /api/credit-notes/:id
func (h *InvoiceHandler) GetCreditNote(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	note, err := h.uc.GetCreditNote(c.Context(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}
