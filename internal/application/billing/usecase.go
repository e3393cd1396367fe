package billing

import (
	"github.com/shopspring/decimal"

	"github.com/mbertrand/facturation-api/internal/application/dto"
	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/facturation"
	"github.com/mbertrand/facturation-api/internal/domain/repository"
	"github.com/mbertrand/facturation-api/internal/domain/tva"
)

// InvoiceUseCase orchestre les opérations de facturation : création de
// facture, avoir, couple acompte/solde, encaissements. Chaque opération est
// une unité de travail atomique (TxRunner) ; tout échec annule l'intégralité
// des écritures, numéro de document compris.
type InvoiceUseCase struct {
	txRunner       TxRunner
	clientRepo     repository.ClientRepository
	quoteRepo      repository.QuoteRepository
	invoiceRepo    repository.InvoiceRepository
	creditNoteRepo repository.CreditNoteRepository
	paymentRepo    repository.PaymentRepository
	allocator      *SequenceAllocator
	resolver       *tva.Resolver
	guard          *PaymentPolicyGuard
}

// NewInvoiceUseCase construit l'orchestrateur.
func NewInvoiceUseCase(
	txRunner TxRunner,
	clientRepo repository.ClientRepository,
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	creditNoteRepo repository.CreditNoteRepository,
	paymentRepo repository.PaymentRepository,
	allocator *SequenceAllocator,
	resolver *tva.Resolver,
	guard *PaymentPolicyGuard,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:       txRunner,
		clientRepo:     clientRepo,
		quoteRepo:      quoteRepo,
		invoiceRepo:    invoiceRepo,
		creditNoteRepo: creditNoteRepo,
		paymentRepo:    paymentRepo,
		allocator:      allocator,
		resolver:       resolver,
		guard:          guard,
	}
}

// toLineItems convertit les lignes du DTO vers le moteur de calcul.
// L'ordre de tri fourni par l'appelant est conservé ; à défaut, ordre
// positionnel.
func toLineItems(in []dto.LineItemRequest) []facturation.LineItem {
	items := make([]facturation.LineItem, 0, len(in))
	for i, req := range in {
		var vatRate *decimal.Decimal
		if req.VATRate != nil {
			v := req.VATRate.Decimal
			vatRate = &v
		}
		sortOrder := i
		if req.SortOrder != nil {
			sortOrder = *req.SortOrder
		}
		items = append(items, facturation.LineItem{
			Description:      req.Description,
			Quantity:         req.Quantity.Decimal,
			UnitPriceHT:      req.UnitPriceHT.Decimal,
			VATRate:          vatRate,
			DiscountPercent:  req.DiscountPercent.Decimal,
			MarkupPercent:    req.MarkupPercent.Decimal,
			SurchargePercent: req.SurchargePercent.Decimal,
			SortOrder:        sortOrder,
			SectionID:        req.SectionID,
		})
	}
	return items
}

// overrideVATRate force le taux résolu sur toutes les lignes (autoliquidation
// ou taux réduit : le régime s'applique au document entier).
func overrideVATRate(items []facturation.LineItem, rate decimal.Decimal) {
	for i := range items {
		r := rate
		items[i].VATRate = &r
	}
}

func toInvoiceResponse(inv *entity.Invoice, lines []*entity.InvoiceLine, payments []*entity.Payment, warnings []string) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:               inv.ID,
		ClientID:         inv.ClientID,
		QuoteID:          inv.QuoteID,
		Number:           inv.Number,
		Status:           string(inv.Status),
		Type:             string(inv.Type),
		Date:             inv.Date.Format("2006-01-02"),
		SubtotalHT:       inv.SubtotalHT,
		TotalVAT:         inv.TotalVAT,
		TotalTTC:         inv.TotalTTC,
		PaidAmount:       inv.PaidAmount,
		ParentInvoiceID:  inv.ParentInvoiceID,
		AdvanceAmount:    inv.AdvanceAmount,
		VATJustification: inv.VATJustification,
		Note:             inv.Note,
		Warnings:         warnings,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:              l.ID,
			Description:     l.Description,
			Quantity:        l.Quantity,
			UnitPriceHT:     l.UnitPriceHT,
			VATRate:         l.VATRate,
			DiscountPercent: l.DiscountPercent,
			MarkupPercent:   l.MarkupPercent,
			UnitPriceNetHT:  l.UnitPriceNetHT,
			UnitPriceTTC:    l.UnitPriceTTC,
			TotalHT:         l.TotalHT,
			TotalVAT:        l.TotalVAT,
			TotalTTC:        l.TotalTTC,
			SortOrder:       l.SortOrder,
			SectionID:       l.SectionID,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}
	return resp
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Method:    string(p.Method),
		Date:      p.Date.Format("2006-01-02"),
		Reference: p.Reference,
	}
}
