package billing

import (
	"context"

	"github.com/mbertrand/facturation-api/internal/application/dto"
	"github.com/mbertrand/facturation-api/internal/domain"
)

// GetInvoice retourne une facture complète (lignes et encaissements).
// Lecture hors transaction : repos liés au pool.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, lines, payments, nil), nil
}

// ListInvoices liste les factures de l'entreprise (en-têtes seuls).
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, companyID string) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, nil, nil, nil))
	}
	return out, nil
}
