package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implémentation de ClientRepository.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construit l'adaptateur.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// GetByID obtient un client par ID. nil, nil si absent.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	const query = `
		SELECT id, company_id, name, COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(address, ''), COALESCE(siret, ''),
		       vat_registered, COALESCE(vat_number, ''),
		       created_at, updated_at
		FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone,
		&c.Address, &c.SIRET, &c.VATRegistered, &c.VATNumber,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}
