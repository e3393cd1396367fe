package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbertrand/facturation-api/internal/application/dto"
	"github.com/mbertrand/facturation-api/internal/domain"
	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/facturation"
)

// CreateAdvanceInvoice crée une facture d'acompte : décomposition HT/TVA du
// montant TTC à taux fixe, numéro sur la sous-famille AC, une ligne
// synthétique "Acompte sur <chantier>".
func (uc *InvoiceUseCase) CreateAdvanceInvoice(ctx context.Context, companyID string, in dto.CreateAdvanceInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || !in.AmountTTC.Decimal.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.VATRate.Decimal.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

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

	projectName := strings.TrimSpace(in.ProjectName)
	if projectName == "" && in.QuoteID != "" {
		quote, err := uc.quoteRepo.GetByID(ctx, in.QuoteID)
		if err != nil {
			return nil, err
		}
		if quote == nil || quote.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		projectName = quote.ProjectName
	}
	if projectName == "" {
		projectName = "chantier"
	}

	amountTTC := in.AmountTTC.Decimal.Round(2)
	ht, vatAmount := facturation.AdvanceBreakdown(amountTTC, in.VATRate.Decimal)

	now := time.Now()
	var inv *entity.Invoice
	var line *entity.InvoiceLine

	err = uc.txRunner.RunBilling(ctx, func(repos TxRepos) error {
		number, err := uc.allocator.Allocate(ctx, repos, companyID, entity.FamilyInvoice, VariantAdvance, now)
		if err != nil {
			return err
		}
		inv = &entity.Invoice{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			ClientID:      in.ClientID,
			QuoteID:       in.QuoteID,
			Number:        number,
			Status:        entity.StatusPending,
			Type:          entity.TypeAdvance,
			Date:          now,
			SubtotalHT:    ht,
			TotalVAT:      vatAmount,
			TotalTTC:      amountTTC,
			PaidAmount:    decimal.Zero,
			AdvanceAmount: amountTTC,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := repos.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		line = &entity.InvoiceLine{
			ID:             uuid.New().String(),
			InvoiceID:      inv.ID,
			Description:    "Acompte sur " + projectName,
			Quantity:       decimal.NewFromInt(1),
			UnitPriceHT:    ht,
			VATRate:        in.VATRate.Decimal,
			UnitPriceNetHT: ht,
			UnitPriceTTC:   amountTTC,
			TotalHT:        ht,
			TotalVAT:       vatAmount,
			TotalTTC:       amountTTC,
			SortOrder:      0,
		}
		return repos.Invoices.CreateLine(ctx, line)
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, []*entity.InvoiceLine{line}, nil, nil), nil
}

// CreateFinalInvoice crée la facture de solde d'un chantier : totaux calculés
// sur les lignes moins l'acompte parent. Échoue (ErrAdvanceExceedsTotal) si
// l'acompte couvre ou dépasse le total — rien n'est écrit dans ce cas.
func (uc *InvoiceUseCase) CreateFinalInvoice(ctx context.Context, companyID string, in dto.CreateFinalInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ParentInvoiceID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	items := toLineItems(in.Items)
	if errs := facturation.ValidateItems(items); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	now := time.Now()
	var inv *entity.Invoice
	var lines []*entity.InvoiceLine

	err := uc.txRunner.RunBilling(ctx, func(repos TxRepos) error {
		parent, err := repos.Invoices.GetByID(ctx, in.ParentInvoiceID)
		if err != nil {
			return err
		}
		if parent == nil {
			return domain.ErrNotFound
		}
		if parent.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if parent.Type != entity.TypeAdvance {
			return domain.ErrConflict
		}

		totals := facturation.ComputeTotals(items)
		remaining := totals.TotalTTC.Sub(parent.AdvanceAmount)
		if !remaining.GreaterThan(decimal.Zero) {
			return domain.ErrAdvanceExceedsTotal
		}

		number, err := uc.allocator.Allocate(ctx, repos, companyID, entity.FamilyInvoice, VariantFinal, now)
		if err != nil {
			return err
		}

		inv = &entity.Invoice{
			ID:              uuid.New().String(),
			CompanyID:       companyID,
			ClientID:        parent.ClientID,
			QuoteID:         parent.QuoteID,
			Number:          number,
			Status:          entity.StatusPending,
			Type:            entity.TypeFinal,
			Date:            now,
			SubtotalHT:      totals.SubtotalHT.Sub(parent.SubtotalHT),
			TotalVAT:        totals.TotalVAT.Sub(parent.TotalVAT),
			TotalTTC:        remaining,
			PaidAmount:      decimal.Zero,
			ParentInvoiceID: parent.ID,
			AdvanceAmount:   parent.AdvanceAmount,
			Note:            in.Note,
			CreatedAt:       now,
			UpdatedAt:       now,
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

	return toInvoiceResponse(inv, lines, nil, nil), nil
}
