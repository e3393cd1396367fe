package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implémentation de PaymentRepository.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construit l'adaptateur.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un encaissement.
func (r *PaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO payments (id, company_id, invoice_id, amount, method, date, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		payment.ID, payment.CompanyID, payment.InvoiceID, payment.Amount,
		string(payment.Method), payment.Date, nullIfEmpty(payment.Reference), payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByInvoice liste les encaissements d'une facture, du plus ancien au plus récent.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	const query = `
		SELECT id, company_id, invoice_id, amount, method, date, COALESCE(reference, ''), created_at
		FROM payments WHERE invoice_id = $1 ORDER BY date, created_at`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var method string
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.InvoiceID, &p.Amount,
			&method, &p.Date, &p.Reference, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Method = entity.PaymentMethod(method)
		list = append(list, &p)
	}
	return list, rows.Err()
}
