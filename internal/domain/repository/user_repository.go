package repository

import (
	"context"

	"github.com/mbertrand/facturation-api/internal/domain/entity"
)

// UserRepository port de persistance des utilisateurs (frontière auth).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
