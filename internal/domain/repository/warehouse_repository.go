package repository

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// WarehouseFilter filtros opcionales del listado de bodegas.
type WarehouseFilter struct {
	Type       string // dispensario | bodega; vacío = todas
	OnlyActive bool
}

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	ListByOrganization(ctx context.Context, organizationID string, f WarehouseFilter, limit, offset int) ([]*entity.Warehouse, error)
}
