package repository

import (
	"context"
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/rotation"
)

// RotationRepository consultas de lectura para las alertas de rotación.
type RotationRepository interface {
	// ConsumptionSince suma lo entregado desde since por dispensario activo y producto,
	// junto con el stock actual. warehouseID vacío = todos los dispensarios.
	ConsumptionSince(ctx context.Context, organizationID, warehouseID string, since time.Time) ([]rotation.Consumption, error)
	// SupplyStock existencias agregadas por producto en bodegas de abastecimiento activas.
	SupplyStock(ctx context.Context, organizationID string) (rotation.SupplyStock, error)
}
