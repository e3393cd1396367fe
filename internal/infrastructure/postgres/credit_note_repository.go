package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/repository"
)

var _ repository.CreditNoteRepository = (*CreditNoteRepo)(nil)

// CreditNoteRepo implémentation de CreditNoteRepository.
type CreditNoteRepo struct {
	q Querier
}

// NewCreditNoteRepository construit l'adaptateur.
func NewCreditNoteRepository(q Querier) *CreditNoteRepo {
	return &CreditNoteRepo{q: q}
}

// Create persiste l'en-tête de l'avoir.
func (r *CreditNoteRepo) Create(ctx context.Context, note *entity.CreditNote) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO credit_notes (id, company_id, client_id, invoice_id, number, date,
			subtotal_ht, total_vat, total_ttc, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		note.ID, note.CompanyID, note.ClientID, note.InvoiceID, note.Number, note.Date,
		note.SubtotalHT, note.TotalVAT, note.TotalTTC, nullIfEmpty(note.Note),
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("numéro d'avoir déjà attribué: %w", err)
		}
		return fmt.Errorf("insert credit note: %w", err)
	}
	return nil
}

// CreateLine persiste une ligne d'avoir (montants négatifs).
func (r *CreditNoteRepo) CreateLine(ctx context.Context, line *entity.CreditNoteLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO credit_note_lines (id, credit_note_id, description, quantity, unit_price_ht, vat_rate,
			discount_percent, markup_percent, unit_price_net_ht, unit_price_ttc,
			total_ht, total_vat, total_ttc, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.CreditNoteID, line.Description, line.Quantity, line.UnitPriceHT, line.VATRate,
		line.DiscountPercent, line.MarkupPercent, line.UnitPriceNetHT, line.UnitPriceTTC,
		line.TotalHT, line.TotalVAT, line.TotalTTC, line.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("insert credit note line: %w", err)
	}
	return nil
}

// GetByID obtient un avoir par ID. nil, nil si absent.
func (r *CreditNoteRepo) GetByID(ctx context.Context, id string) (*entity.CreditNote, error) {
	const query = `
		SELECT id, company_id, client_id, invoice_id, number, date,
		       subtotal_ht, total_vat, total_ttc, COALESCE(note, ''),
		       created_at, updated_at
		FROM credit_notes WHERE id = $1`
	var n entity.CreditNote
	err := r.q.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.CompanyID, &n.ClientID, &n.InvoiceID, &n.Number, &n.Date,
		&n.SubtotalHT, &n.TotalVAT, &n.TotalTTC, &n.Note,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit note: %w", err)
	}
	return &n, nil
}

// GetLinesByCreditNoteID obtient les lignes d'un avoir, triées.
func (r *CreditNoteRepo) GetLinesByCreditNoteID(ctx context.Context, creditNoteID string) ([]*entity.CreditNoteLine, error) {
	const query = `
		SELECT id, credit_note_id, description, quantity, unit_price_ht, vat_rate,
		       discount_percent, markup_percent, unit_price_net_ht, unit_price_ttc,
		       total_ht, total_vat, total_ttc, sort_order
		FROM credit_note_lines WHERE credit_note_id = $1 ORDER BY sort_order, id`
	rows, err := r.q.Query(ctx, query, creditNoteID)
	if err != nil {
		return nil, fmt.Errorf("list credit note lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditNoteLine
	for rows.Next() {
		var l entity.CreditNoteLine
		if err := rows.Scan(&l.ID, &l.CreditNoteID, &l.Description, &l.Quantity, &l.UnitPriceHT, &l.VATRate,
			&l.DiscountPercent, &l.MarkupPercent, &l.UnitPriceNetHT, &l.UnitPriceTTC,
			&l.TotalHT, &l.TotalVAT, &l.TotalTTC, &l.SortOrder); err != nil {
			return nil, fmt.Errorf("scan credit note line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// CountByCompanyAndYear compte les avoirs de l'année civile pour l'entreprise.
func (r *CreditNoteRepo) CountByCompanyAndYear(ctx context.Context, companyID string, year int) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM credit_notes
		WHERE company_id = $1 AND date_part('year', date) = $2`
	var count int64
	if err := r.q.QueryRow(ctx, query, companyID, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("count credit notes by year: %w", err)
	}
	return count, nil
}
