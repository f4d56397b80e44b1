package repository

import (
	"context"
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// DeliveryFilter filtros opcionales del listado de entregas.
type DeliveryFilter struct {
	WarehouseID string
	PatientID   string
	From        *time.Time
	To          *time.Time
}

// DeliveryRepository define el puerto de persistencia para entregas (dispensación).
type DeliveryRepository interface {
	// Create persiste la entrega y sus líneas.
	Create(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	List(ctx context.Context, organizationID string, f DeliveryFilter, limit, offset int) ([]*entity.Delivery, error)
}
