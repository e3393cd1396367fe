package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implémentation de InvoiceRepository (utilisable avec pool ou tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, company_id, client_id, quote_id, number, status, invoice_type, date,
	subtotal_ht, total_vat, total_ttc, paid_amount,
	parent_invoice_id, advance_amount, vat_justification, note,
	created_at, updated_at`

// Create persiste l'en-tête de la facture.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO invoices (id, company_id, client_id, quote_id, number, status, invoice_type, date,
			subtotal_ht, total_vat, total_ttc, paid_amount,
			parent_invoice_id, advance_amount, vat_justification, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.CompanyID, invoice.ClientID, nullIfEmpty(invoice.QuoteID),
		invoice.Number, string(invoice.Status), string(invoice.Type), invoice.Date,
		invoice.SubtotalHT, invoice.TotalVAT, invoice.TotalTTC, invoice.PaidAmount,
		nullIfEmpty(invoice.ParentInvoiceID), invoice.AdvanceAmount,
		nullIfEmpty(invoice.VATJustification), nullIfEmpty(invoice.Note),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("numéro de facture déjà attribué: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste une ligne calculée.
func (r *InvoiceRepo) CreateLine(ctx context.Context, line *entity.InvoiceLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO invoice_lines (id, invoice_id, description, quantity, unit_price_ht, vat_rate,
			discount_percent, markup_percent, unit_price_net_ht, unit_price_ttc,
			total_ht, total_vat, total_ttc, sort_order, section_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.InvoiceID, line.Description, line.Quantity, line.UnitPriceHT, line.VATRate,
		line.DiscountPercent, line.MarkupPercent, line.UnitPriceNetHT, line.UnitPriceTTC,
		line.TotalHT, line.TotalVAT, line.TotalTTC, line.SortOrder, nullIfEmpty(line.SectionID),
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetByID obtient une facture par ID. nil, nil si absente.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByIDForUpdate relit la facture sous verrou exclusif (SELECT FOR UPDATE).
// Sérialise les encaissements concurrents sur la même facture.
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice for update: %w", err)
	}
	return inv, nil
}

// GetLinesByInvoiceID obtient les lignes d'une facture, triées.
func (r *InvoiceRepo) GetLinesByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	const query = `
		SELECT id, invoice_id, description, quantity, unit_price_ht, vat_rate,
		       discount_percent, markup_percent, unit_price_net_ht, unit_price_ttc,
		       total_ht, total_vat, total_ttc, sort_order, COALESCE(section_id, '')
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY sort_order, id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Description, &l.Quantity, &l.UnitPriceHT, &l.VATRate,
			&l.DiscountPercent, &l.MarkupPercent, &l.UnitPriceNetHT, &l.UnitPriceTTC,
			&l.TotalHT, &l.TotalVAT, &l.TotalTTC, &l.SortOrder, &l.SectionID); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdatePayment persiste paid_amount et status après un encaissement.
func (r *InvoiceRepo) UpdatePayment(ctx context.Context, invoice *entity.Invoice) error {
	const query = `
		UPDATE invoices
		SET paid_amount = $2, status = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, invoice.ID, invoice.PaidAmount, string(invoice.Status), invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice payment: %w", err)
	}
	return nil
}

// UpdateStatus change le statut (transitions pending ⇄ overdue, contrôlées en amont).
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus, updatedAt time.Time) error {
	const query = `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// CountByCompanyAndYear compte les factures de l'année civile pour l'entreprise.
func (r *InvoiceRepo) CountByCompanyAndYear(ctx context.Context, companyID string, year int) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM invoices
		WHERE company_id = $1 AND date_part('year', date) = $2`
	var count int64
	if err := r.q.QueryRow(ctx, query, companyID, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("count invoices by year: %w", err)
	}
	return count, nil
}

// ListByCompany liste les en-têtes de factures de l'entreprise.
func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE company_id = $1 ORDER BY date DESC, number DESC`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// ── helpers ───────────────────────────────────────────────────────────────────

// pgxScanner abstrait pgx.Row et pgx.Rows pour réutiliser scanInvoice.
type pgxScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row pgxScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	var status, invoiceType string
	var quoteID, parentID, justification, note *string
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.ClientID, &quoteID, &inv.Number, &status, &invoiceType, &inv.Date,
		&inv.SubtotalHT, &inv.TotalVAT, &inv.TotalTTC, &inv.PaidAmount,
		&parentID, &inv.AdvanceAmount, &justification, &note,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	inv.Type = entity.InvoiceType(invoiceType)
	inv.QuoteID = derefStr(quoteID)
	inv.ParentInvoiceID = derefStr(parentID)
	inv.VATJustification = derefStr(justification)
	inv.Note = derefStr(note)
	return &inv, nil
}
