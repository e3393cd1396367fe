package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbertrand/facturation-api/internal/application/dto"
	"github.com/mbertrand/facturation-api/internal/domain"
	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/facturation"
	"github.com/mbertrand/facturation-api/internal/domain/tva"
)

// CreateInvoice crée une facture standard : validation du client et des
// lignes, résolution du régime de TVA, calcul des totaux, allocation du
// numéro et persistance — le tout dans une seule transaction.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Appartenance du client : vérifiée avant d'ouvrir la transaction.
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	if in.QuoteID != "" {
		quote, err := uc.quoteRepo.GetByID(ctx, in.QuoteID)
		if err != nil {
			return nil, err
		}
		if quote == nil || quote.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}

	items := toLineItems(in.Items)
	if errs := facturation.ValidateItems(items); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	// Régime de TVA du document : autoliquidation > taux réduit > taux des
	// lignes. Les avertissements ne bloquent jamais la création.
	meta := tva.InvoiceMeta{
		ReverseChargeBTP:    in.ReverseChargeBTP,
		ReducedVATApplied:   in.ReducedVATApplied,
		RequestedRate:       in.ReducedVATRate.Decimal,
		ClientVATRegistered: client.VATRegistered,
		ClientVATNumber:     client.VATNumber,
		PropertyType:        in.PropertyType,
		PropertyAgeYears:    in.PropertyAgeYears,
		WorkType:            in.WorkType,
	}
	resolution := uc.resolver.Resolve(meta)
	warnings := uc.resolver.GenerateWarnings(meta)
	if resolution.IsReverseCharge || resolution.IsReducedRate {
		overrideVATRate(items, resolution.Rate)
	}

	now := time.Now()
	var inv *entity.Invoice
	var lines []*entity.InvoiceLine

	err = uc.txRunner.RunBilling(ctx, func(repos TxRepos) error {
		totals := facturation.ComputeTotals(items)

		number, err := uc.allocator.Allocate(ctx, repos, companyID, entity.FamilyInvoice, VariantStandard, now)
		if err != nil {
			return err
		}

		inv = &entity.Invoice{
			ID:               uuid.New().String(),
			CompanyID:        companyID,
			ClientID:         in.ClientID,
			QuoteID:          in.QuoteID,
			Number:           number,
			Status:           entity.StatusPending,
			Type:             entity.TypeStandard,
			Date:             now,
			SubtotalHT:       totals.SubtotalHT,
			TotalVAT:         totals.TotalVAT,
			TotalTTC:         totals.TotalTTC,
			PaidAmount:       decimal.Zero,
			VATJustification: resolution.Justification,
			Note:             in.Note,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := repos.Invoices.Create(ctx, inv); err != nil {
			return err
		}

		lines = lines[:0]
		for _, computed := range totals.Items {
			line := computedToLine(inv.ID, computed)
			if err := repos.Invoices.CreateLine(ctx, line); err != nil {
				return err
			}
			lines = append(lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, lines, nil, warnings), nil
}

// computedToLine matérialise une ligne calculée pour persistance.
func computedToLine(invoiceID string, c facturation.ComputedLineItem) *entity.InvoiceLine {
	return &entity.InvoiceLine{
		ID:              uuid.New().String(),
		InvoiceID:       invoiceID,
		Description:     c.Description,
		Quantity:        c.Quantity,
		UnitPriceHT:     c.UnitPriceHT,
		VATRate:         c.VATRate,
		DiscountPercent: c.DiscountPercent,
		MarkupPercent:   c.MarkupPercent,
		UnitPriceNetHT:  c.UnitPriceNetHT,
		UnitPriceTTC:    c.UnitPriceTTC,
		TotalHT:         c.TotalHT,
		TotalVAT:        c.TotalVAT,
		TotalTTC:        c.TotalTTC,
		SortOrder:       c.SortOrder,
		SectionID:       c.SectionID,
	}
}
