package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implémentation de QuoteRepository (lecture seule ici).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construit l'adaptateur.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// GetByID obtient un devis par ID. nil, nil si absent.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	const query = `
		SELECT id, company_id, client_id, number, COALESCE(project_name, ''),
		       subtotal_ht, total_vat, total_ttc, status, created_at, updated_at
		FROM quotes WHERE id = $1`
	var q entity.Quote
	err := r.q.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.CompanyID, &q.ClientID, &q.Number, &q.ProjectName,
		&q.SubtotalHT, &q.TotalVAT, &q.TotalTTC, &q.Status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &q, nil
}
