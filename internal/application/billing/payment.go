package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbertrand/facturation-api/internal/application/dto"
	"github.com/mbertrand/facturation-api/internal/domain"
	"github.com/mbertrand/facturation-api/internal/domain/entity"
)

// ApplyPayment enregistre un encaissement et fait évoluer le statut de la
// facture. La facture est RELUE sous verrou dans la transaction (jamais
// depuis un instantané antérieur) : deux encaissements concurrents ne peuvent
// pas observer le même paidAmount.
func (uc *InvoiceUseCase) ApplyPayment(ctx context.Context, companyID, invoiceID string, in dto.ApplyPaymentRequest) (*dto.PaymentResponse, error) {
	if invoiceID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	method := entity.PaymentMethod(in.Method)
	if !method.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	paymentDate := time.Now()
	if in.Date != "" {
		parsed, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		paymentDate = parsed
	}

	// Plafond légal des espèces : contrôlé avant d'accepter le paiement.
	// Les autres moyens de paiement ne passent pas par ce garde-fou.
	if method == entity.MethodCash {
		if err := uc.guard.CheckCashPayment(ctx, companyID, in.Amount); err != nil {
			return nil, err
		}
	}

	amount := in.Amount.Round(2)
	var payment *entity.Payment

	err := uc.txRunner.RunBilling(ctx, func(repos TxRepos) error {
		inv, err := repos.Invoices.GetByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if inv.Status == entity.StatusPaid {
			return domain.ErrInvoiceAlreadyPaid
		}

		now := time.Now()
		newPaid := inv.PaidAmount.Add(amount)
		inv.PaidAmount = newPaid
		// paid est atteint uniquement en couvrant le total ; un trop-perçu
		// solde aussi la facture (reste ≤ 0), sans statut au-delà de paid.
		if newPaid.GreaterThanOrEqual(inv.TotalTTC) {
			inv.Status = entity.StatusPaid
		}
		inv.UpdatedAt = now

		payment = &entity.Payment{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			InvoiceID: inv.ID,
			Amount:    amount,
			Method:    method,
			Date:      paymentDate,
			Reference: in.Reference,
			CreatedAt: now,
		}
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return err
		}
		return repos.Invoices.UpdatePayment(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	resp := toPaymentResponse(payment)
	return &resp, nil
}

// UpdateStatus transition pilotée de l'extérieur : pending ⇄ overdue
// uniquement. paid ne s'atteint que par encaissement et reste terminal ;
// toute autre valeur (ex : "cancelled") est rejetée.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, companyID, invoiceID string, in dto.UpdateStatusRequest) error {
	status := entity.InvoiceStatus(in.Status)
	if !status.IsValid() || status == entity.StatusPaid {
		return domain.ErrInvalidStatus
	}

	return uc.txRunner.RunBilling(ctx, func(repos TxRepos) error {
		inv, err := repos.Invoices.GetByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if inv.Status == entity.StatusPaid {
			return domain.ErrInvoiceAlreadyPaid
		}
		return repos.Invoices.UpdateStatus(ctx, invoiceID, status, time.Now())
	})
}
