package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mbertrand/facturation-api/internal/domain"
	"github.com/mbertrand/facturation-api/internal/domain/repository"
)

// PaymentPolicyGuard garde-fou des encaissements en espèces : plafond légal
// (art. D112-3 du Code monétaire et financier) et activation par entreprise.
type PaymentPolicyGuard struct {
	settingsRepo repository.SettingsRepository
}

// NewPaymentPolicyGuard construit le garde-fou.
func NewPaymentPolicyGuard(settingsRepo repository.SettingsRepository) *PaymentPolicyGuard {
	return &PaymentPolicyGuard{settingsRepo: settingsRepo}
}

// CheckCashPayment vérifie qu'un paiement en espèces est autorisé pour
// l'entreprise. nil = autorisé ; l'erreur sentinelle porte le motif du refus.
func (g *PaymentPolicyGuard) CheckCashPayment(ctx context.Context, companyID string, amount decimal.Decimal) error {
	settings, err := g.settingsRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	if settings == nil {
		return domain.ErrSettingsNotFound
	}
	if !settings.CashPaymentsEnabled {
		return domain.ErrCashPaymentsDisabled
	}
	if amount.GreaterThan(settings.CashPaymentLimit) {
		return domain.ErrCashLimitExceeded
	}
	return nil
}
