package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbertrand/facturation-api/internal/application/billing"
)

// Vérifie que TxRunner implémente billing.TxRunner.
var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner exécute les callbacks de facturation dans une transaction
// PostgreSQL : Begin, Rollback différé, Commit si fn retourne nil.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling ouvre une transaction, lie les repositories de facturation à
// cette transaction et les passe à fn. Tout échec de fn (ou du Commit)
// annule l'intégralité des écritures — numéro de document compris.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(repos billing.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := billing.TxRepos{
		Clients:     NewClientRepository(tx),
		Quotes:      NewQuoteRepository(tx),
		Invoices:    NewInvoiceRepository(tx),
		CreditNotes: NewCreditNoteRepository(tx),
		Payments:    NewPaymentRepository(tx),
		Settings:    NewSettingsRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
