package repository

import (
	"context"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
)

// QuoteRepository port de lecture des devis (liaison devis → facture).
type QuoteRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
}
