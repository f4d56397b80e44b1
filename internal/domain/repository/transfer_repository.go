package repository

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia para traslados entre bodegas.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	List(ctx context.Context, organizationID string, limit, offset int) ([]*entity.Transfer, error)
}
