package repository

import (
	"context"
	"time"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
)

// InvoiceRepository port de persistance des factures et de leurs lignes.
// La suppression n'existe pas : une facture émise ne se contrepasse que par avoir.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateLine(ctx context.Context, line *entity.InvoiceLine) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetByIDForUpdate relit la facture sous verrou exclusif (SELECT FOR UPDATE).
	// À n'appeler que dans une transaction : sérialise les encaissements concurrents.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	GetLinesByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error)
	// UpdatePayment persiste paid_amount et status après un encaissement.
	UpdatePayment(ctx context.Context, invoice *entity.Invoice) error
	UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus, updatedAt time.Time) error
	// CountByCompanyAndYear compte les factures de l'entreprise créées dans
	// l'année civile (détection du premier document de l'année).
	CountByCompanyAndYear(ctx context.Context, companyID string, year int) (int64, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Invoice, error)
}
