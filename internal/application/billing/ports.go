package billing

import (
	"context"

	"github.com/mbertrand/facturation-api/internal/domain/repository"
)

// TxRepos repositories liés à une même transaction SQL. Toutes les écritures
// d'une opération de facturation passent par ce jeu de repos : c'est l'unité
// de travail explicite du moteur.
type TxRepos struct {
	Clients     repository.ClientRepository
	Quotes      repository.QuoteRepository
	Invoices    repository.InvoiceRepository
	CreditNotes repository.CreditNoteRepository
	Payments    repository.PaymentRepository
	Settings    repository.SettingsRepository
}

// TxRunner exécute fn dans une transaction : Commit si fn retourne nil,
// Rollback sinon. Aucune transaction imbriquée — fn reçoit les repos liés à
// la transaction courante et ne doit pas en ouvrir d'autre.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(repos TxRepos) error) error
}
