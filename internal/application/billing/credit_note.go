package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbertrand/facturation-api/internal/application/dto"
	"github.com/mbertrand/facturation-api/internal/domain"
	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/facturation"
)

// CreateCreditNoteFromInvoice génère un avoir contrepassant la facture :
// quantités négées, totaux recalculés par le même moteur, numéro alloué sur
// la séquence avoir. Seul moyen autorisé d'"annuler" une facture émise.
func (uc *InvoiceUseCase) CreateCreditNoteFromInvoice(ctx context.Context, companyID, invoiceID string) (*dto.CreditNoteResponse, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var note *entity.CreditNote
	var noteLines []*entity.CreditNoteLine

	err := uc.txRunner.RunBilling(ctx, func(repos TxRepos) error {
		inv, err := repos.Invoices.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		srcLines, err := repos.Invoices.GetLinesByInvoiceID(ctx, invoiceID)
		if err != nil {
			return err
		}

		items := make([]facturation.LineItem, 0, len(srcLines))
		for _, l := range srcLines {
			rate := l.VATRate
			items = append(items, facturation.LineItem{
				Description:     l.Description,
				Quantity:        l.Quantity,
				UnitPriceHT:     l.UnitPriceHT,
				VATRate:         &rate,
				DiscountPercent: l.DiscountPercent,
				MarkupPercent:   l.MarkupPercent,
				SortOrder:       l.SortOrder,
			})
		}
		totals := facturation.ComputeTotals(facturation.NegateItems(items))

		number, err := uc.allocator.Allocate(ctx, repos, companyID, entity.FamilyCreditNote, VariantStandard, now)
		if err != nil {
			return err
		}

		note = &entity.CreditNote{
			ID:         uuid.New().String(),
			CompanyID:  companyID,
			ClientID:   inv.ClientID,
			InvoiceID:  inv.ID,
			Number:     number,
			Date:       now,
			SubtotalHT: totals.SubtotalHT,
			TotalVAT:   totals.TotalVAT,
			TotalTTC:   totals.TotalTTC,
			Note:       "Avoir sur facture " + inv.Number,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := repos.CreditNotes.Create(ctx, note); err != nil {
			return err
		}
		noteLines = noteLines[:0]
		for _, computed := range totals.Items {
			line := &entity.CreditNoteLine{
				ID:              uuid.New().String(),
				CreditNoteID:    note.ID,
				Description:     computed.Description,
				Quantity:        computed.Quantity,
				UnitPriceHT:     computed.UnitPriceHT,
				VATRate:         computed.VATRate,
				DiscountPercent: computed.DiscountPercent,
				MarkupPercent:   computed.MarkupPercent,
				UnitPriceNetHT:  computed.UnitPriceNetHT,
				UnitPriceTTC:    computed.UnitPriceTTC,
				TotalHT:         computed.TotalHT,
				TotalVAT:        computed.TotalVAT,
				TotalTTC:        computed.TotalTTC,
				SortOrder:       computed.SortOrder,
			}
			if err := repos.CreditNotes.CreateLine(ctx, line); err != nil {
				return err
			}
			noteLines = append(noteLines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toCreditNoteResponse(note, noteLines), nil
}

// GetCreditNote retourne un avoir complet.
// Lecture hors transaction : repo lié au pool.
func (uc *InvoiceUseCase) GetCreditNote(ctx context.Context, companyID, id string) (*dto.CreditNoteResponse, error) {
	note, err := uc.creditNoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	if note.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.creditNoteRepo.GetLinesByCreditNoteID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCreditNoteResponse(note, lines), nil
}

func toCreditNoteResponse(note *entity.CreditNote, lines []*entity.CreditNoteLine) *dto.CreditNoteResponse {
	resp := &dto.CreditNoteResponse{
		ID:         note.ID,
		ClientID:   note.ClientID,
		InvoiceID:  note.InvoiceID,
		Number:     note.Number,
		Date:       note.Date.Format("2006-01-02"),
		SubtotalHT: note.SubtotalHT,
		TotalVAT:   note.TotalVAT,
		TotalTTC:   note.TotalTTC,
		Note:       note.Note,
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
		})
	}
	return resp
}
