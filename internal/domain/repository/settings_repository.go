package repository

import (
	"context"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
)

// SettingsRepository port des paramètres d'entreprise, dont l'état de
// numérotation. Les compteurs ne sont accessibles qu'au SequenceAllocator.
type SettingsRepository interface {
	Create(ctx context.Context, settings *entity.CompanySettings) error
	GetByCompany(ctx context.Context, companyID string) (*entity.CompanySettings, error)
	// GetForUpdate verrouille la ligne de paramètres (SELECT FOR UPDATE) :
	// bloque les allocations concurrentes de la même entreprise jusqu'au
	// commit ou rollback de la transaction appelante.
	GetForUpdate(ctx context.Context, companyID string) (*entity.CompanySettings, error)
	// UpdateCounter persiste le compteur de la famille donnée.
	UpdateCounter(ctx context.Context, companyID string, family entity.DocumentFamily, counter int64) error
	Update(ctx context.Context, settings *entity.CompanySettings) error
}
