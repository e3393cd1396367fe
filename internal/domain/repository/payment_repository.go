package repository

import (
	"context"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
)

// PaymentRepository port de persistance des encaissements.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error)
}
