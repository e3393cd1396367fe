package billing

import (
	"context"

	"github.com/mbertrand/facturation-api/internal/application/dto"
	"github.com/mbertrand/facturation-api/internal/domain"
	"github.com/mbertrand/facturation-api/internal/domain/repository"
)

// SettingsUseCase lecture et mise à jour des paramètres de facturation.
// Les compteurs de numérotation ne sont pas exposés en écriture : ils
// n'évoluent qu'à travers le SequenceAllocator.
type SettingsUseCase struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsUseCase construit le cas d'usage.
func NewSettingsUseCase(settingsRepo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settingsRepo: settingsRepo}
}

// Get retourne les paramètres de l'entreprise.
func (uc *SettingsUseCase) Get(ctx context.Context, companyID string) (*dto.SettingsResponse, error) {
	settings, err := uc.settingsRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	return &dto.SettingsResponse{
		InvoicePrefix:       settings.InvoicePrefix,
		CreditNotePrefix:    settings.CreditNotePrefix,
		CashPaymentsEnabled: settings.CashPaymentsEnabled,
		CashPaymentLimit:    settings.CashPaymentLimit,
	}, nil
}

// Update applique les champs fournis (préfixes, politique espèces).
func (uc *SettingsUseCase) Update(ctx context.Context, companyID string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := uc.settingsRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	if in.InvoicePrefix != nil && *in.InvoicePrefix != "" {
		settings.InvoicePrefix = *in.InvoicePrefix
	}
	if in.CreditNotePrefix != nil && *in.CreditNotePrefix != "" {
		settings.CreditNotePrefix = *in.CreditNotePrefix
	}
	if in.CashPaymentsEnabled != nil {
		settings.CashPaymentsEnabled = *in.CashPaymentsEnabled
	}
	if in.CashPaymentLimit != nil && !in.CashPaymentLimit.Decimal.IsNegative() {
		settings.CashPaymentLimit = in.CashPaymentLimit.Decimal
	}
	if err := uc.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return uc.Get(ctx, companyID)
}
