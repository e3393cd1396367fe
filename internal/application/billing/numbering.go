package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/mbertrand/facturation-api/internal/domain"
	"github.com/mbertrand/facturation-api/internal/domain/entity"
)

// NumberVariant variante de numéro au sein de la famille facture :
// standard, acompte (infixe AC) ou solde (infixe SOL).
type NumberVariant string

const (
	VariantStandard NumberVariant = "standard"
	VariantAdvance  NumberVariant = "advance"
	VariantFinal    NumberVariant = "final"
)

// SequenceAllocator alloue le prochain numéro de document, séquentiel et sans
// trou, par entreprise, famille et année civile. Seul composant autorisé à
// lire et écrire les compteurs de numérotation.
//
// À appeler DANS la transaction de l'opération : le SELECT FOR UPDATE sur la
// ligne de paramètres sérialise les allocations concurrentes de la même
// entreprise ; un rollback de la transaction annule aussi l'incrément, donc
// un échec ne consomme jamais de numéro.
type SequenceAllocator struct{}

// NewSequenceAllocator construit l'allocateur.
func NewSequenceAllocator() *SequenceAllocator {
	return &SequenceAllocator{}
}

// Allocate réserve le prochain numéro formaté :
//
//	PREFIX-YYYY-NNNN      (facture standard)
//	PREFIX-AC-YYYY-NNNN   (facture d'acompte)
//	PREFIX-SOL-YYYY-NNNN  (facture de solde)
//	AVO-YYYY-NNNN         (avoir, préfixe par défaut)
//
// NNNN est le compteur sur 4 chiffres, remis à 1 au premier document de
// l'année civile. Au-delà de 9999 documents/an le zéro-padding déborde sans
// erreur (limite documentée).
func (a *SequenceAllocator) Allocate(
	ctx context.Context,
	repos TxRepos,
	companyID string,
	family entity.DocumentFamily,
	variant NumberVariant,
	now time.Time,
) (string, error) {
	// Verrou exclusif sur la ligne de paramètres : les allocateurs concurrents
	// de la même entreprise attendent ici jusqu'au commit/rollback du détenteur.
	settings, err := repos.Settings.GetForUpdate(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("verrouiller les paramètres de numérotation: %w", err)
	}
	if settings == nil {
		return "", domain.ErrSettingsNotFound
	}

	year := now.Year()
	var existing int64
	switch family {
	case entity.FamilyCreditNote:
		existing, err = repos.CreditNotes.CountByCompanyAndYear(ctx, companyID, year)
	default:
		existing, err = repos.Invoices.CountByCompanyAndYear(ctx, companyID, year)
	}
	if err != nil {
		return "", fmt.Errorf("compter les documents de l'année %d: %w", year, err)
	}

	counter := settings.InvoiceCounter
	prefix := settings.InvoicePrefix
	if family == entity.FamilyCreditNote {
		counter = settings.CreditNoteCounter
		prefix = settings.CreditNotePrefix
	}
	if prefix == "" {
		prefix = entity.DefaultInvoicePrefix
		if family == entity.FamilyCreditNote {
			prefix = entity.DefaultCreditNotePrefix
		}
	}

	// Premier document de l'année : le compteur repart de zéro, quel que soit
	// le dernier numéro de l'année précédente.
	if existing == 0 {
		counter = 0
	}
	counter++

	if err := repos.Settings.UpdateCounter(ctx, companyID, family, counter); err != nil {
		return "", fmt.Errorf("persister le compteur: %w", err)
	}

	switch variant {
	case VariantAdvance:
		return fmt.Sprintf("%s-AC-%d-%04d", prefix, year, counter), nil
	case VariantFinal:
		return fmt.Sprintf("%s-SOL-%d-%04d", prefix, year, counter), nil
	default:
		return fmt.Sprintf("%s-%d-%04d", prefix, year, counter), nil
	}
}
