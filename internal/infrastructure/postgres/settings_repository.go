package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implémentation de SettingsRepository. La ligne de paramètres
// porte l'état de numérotation : c'est elle qui est verrouillée pour
// sérialiser l'attribution des numéros.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construit l'adaptateur.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

const settingsColumns = `
	company_id, invoice_prefix, invoice_counter, credit_note_prefix, credit_note_counter,
	cash_payments_enabled, cash_payment_limit, created_at, updated_at`

// Create persiste les paramètres initiaux d'une entreprise.
func (r *SettingsRepo) Create(ctx context.Context, settings *entity.CompanySettings) error {
	const query = `
		INSERT INTO company_settings (company_id, invoice_prefix, invoice_counter,
			credit_note_prefix, credit_note_counter,
			cash_payments_enabled, cash_payment_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		settings.CompanyID, settings.InvoicePrefix, settings.InvoiceCounter,
		settings.CreditNotePrefix, settings.CreditNoteCounter,
		settings.CashPaymentsEnabled, settings.CashPaymentLimit,
		settings.CreatedAt, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company settings: %w", err)
	}
	return nil
}

// GetByCompany obtient les paramètres d'une entreprise. nil, nil si absents.
func (r *SettingsRepo) GetByCompany(ctx context.Context, companyID string) (*entity.CompanySettings, error) {
	query := `SELECT` + settingsColumns + ` FROM company_settings WHERE company_id = $1`
	s, err := scanSettings(r.q.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

// GetForUpdate verrouille la ligne de paramètres (SELECT FOR UPDATE). Les
// allocations concurrentes de la même entreprise attendent ici jusqu'au
// commit ou rollback de la transaction détentrice.
func (r *SettingsRepo) GetForUpdate(ctx context.Context, companyID string) (*entity.CompanySettings, error) {
	query := `SELECT` + settingsColumns + ` FROM company_settings WHERE company_id = $1 FOR UPDATE`
	s, err := scanSettings(r.q.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings for update: %w", err)
	}
	return s, nil
}

// UpdateCounter persiste le compteur de la famille de documents donnée.
func (r *SettingsRepo) UpdateCounter(ctx context.Context, companyID string, family entity.DocumentFamily, counter int64) error {
	var query string
	switch family {
	case entity.FamilyCreditNote:
		query = `UPDATE company_settings SET credit_note_counter = $2, updated_at = $3 WHERE company_id = $1`
	default:
		query = `UPDATE company_settings SET invoice_counter = $2, updated_at = $3 WHERE company_id = $1`
	}
	if _, err := r.q.Exec(ctx, query, companyID, counter, time.Now().UTC()); err != nil {
		return fmt.Errorf("update %s counter: %w", family, err)
	}
	return nil
}

// Update persiste les paramètres modifiables (préfixes, politique espèces).
// Les compteurs ne passent jamais par ici.
func (r *SettingsRepo) Update(ctx context.Context, settings *entity.CompanySettings) error {
	const query = `
		UPDATE company_settings
		SET invoice_prefix = $2, credit_note_prefix = $3,
		    cash_payments_enabled = $4, cash_payment_limit = $5, updated_at = $6
		WHERE company_id = $1`
	_, err := r.q.Exec(ctx, query,
		settings.CompanyID, settings.InvoicePrefix, settings.CreditNotePrefix,
		settings.CashPaymentsEnabled, settings.CashPaymentLimit, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company settings: %w", err)
	}
	return nil
}

func scanSettings(row pgxScanner) (*entity.CompanySettings, error) {
	var s entity.CompanySettings
	err := row.Scan(
		&s.CompanyID, &s.InvoicePrefix, &s.InvoiceCounter,
		&s.CreditNotePrefix, &s.CreditNoteCounter,
		&s.CashPaymentsEnabled, &s.CashPaymentLimit,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
