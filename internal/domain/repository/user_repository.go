package repository

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndOrganization(ctx context.Context, email, organizationID string) (*entity.User, error)
	ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]*entity.User, error)
}
