package repository

import (
	"context"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
)

// ClientRepository port de lecture des clients. Le CRUD complet vit dans le
// back office ; le moteur de facturation ne fait que vérifier l'appartenance.
type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Client, error)
}
