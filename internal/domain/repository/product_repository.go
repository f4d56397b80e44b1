package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByOrganizationAndCUM(ctx context.Context, organizationID, cum string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateCost solo el costo promedio; lo usa el motor de inventario.
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	// ListByOrganization search filtra por nombre, principio activo o CUM (ILIKE).
	ListByOrganization(ctx context.Context, organizationID, search string, limit, offset int) ([]*entity.Product, error)
}
