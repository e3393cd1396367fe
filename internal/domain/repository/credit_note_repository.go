package repository

import (
	"context"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
)

// CreditNoteRepository port de persistance des avoirs.
type CreditNoteRepository interface {
	Create(ctx context.Context, note *entity.CreditNote) error
	CreateLine(ctx context.Context, line *entity.CreditNoteLine) error
	GetByID(ctx context.Context, id string) (*entity.CreditNote, error)
	GetLinesByCreditNoteID(ctx context.Context, creditNoteID string) ([]*entity.CreditNoteLine, error)
	CountByCompanyAndYear(ctx context.Context, companyID string, year int) (int64, error)
}
