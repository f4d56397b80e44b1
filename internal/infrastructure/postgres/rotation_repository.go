package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/internal/domain/rotation"
)

var _ repository.RotationRepository = (*RotationRepo)(nil)

// RotationRepo consultas de consumo y existencias para las alertas de rotación.
type RotationRepo struct {
	pool *pgxpool.Pool
}

// NewRotationRepository construye el adaptador.
func NewRotationRepository(pool *pgxpool.Pool) *RotationRepo {
	return &RotationRepo{pool: pool}
}

// ConsumptionSince suma lo entregado desde since por dispensario activo y producto.
// Solo aparecen productos con entregas en la ventana.
func (r *RotationRepo) ConsumptionSince(ctx context.Context, organizationID, warehouseID string, since time.Time) ([]rotation.Consumption, error) {
	const query = `
	SELECT
	    w.id, w.name, p.id, p.name,
	    SUM(di.quantity)            AS consumed,
	    COALESCE(MAX(s.quantity), 0) AS current_stock
	FROM deliveries d
	JOIN warehouses     w  ON w.id           = d.warehouse_id
	JOIN delivery_items di ON di.delivery_id = d.id
	JOIN products       p  ON p.id           = di.product_id
	LEFT JOIN stock     s  ON s.product_id   = di.product_id AND s.warehouse_id = d.warehouse_id
	WHERE d.organization_id = $1
	  AND d.delivered_at >= $3
	  AND w.type = 'dispensario'
	  AND w.is_active
	  AND ($2 = '' OR d.warehouse_id::text = $2)
	GROUP BY w.id, w.name, p.id, p.name
	ORDER BY w.id, p.id`

	rows, err := r.pool.Query(ctx, query, organizationID, warehouseID, since)
	if err != nil {
		return nil, fmt.Errorf("rotation.ConsumptionSince: %w", err)
	}
	defer rows.Close()

	out := make([]rotation.Consumption, 0)
	for rows.Next() {
		var c rotation.Consumption
		if err := rows.Scan(&c.WarehouseID, &c.WarehouseName, &c.ProductID, &c.ProductName,
			&c.Consumed, &c.CurrentStock); err != nil {
			return nil, fmt.Errorf("rotation.ConsumptionSince scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SupplyStock existencias por producto sumadas sobre las bodegas de abastecimiento activas.
func (r *RotationRepo) SupplyStock(ctx context.Context, organizationID string) (rotation.SupplyStock, error) {
	const query = `
	SELECT s.product_id, SUM(s.quantity)
	FROM stock s
	JOIN warehouses w ON w.id = s.warehouse_id
	WHERE w.organization_id = $1 AND w.type = 'bodega' AND w.is_active
	GROUP BY s.product_id`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("rotation.SupplyStock: %w", err)
	}
	defer rows.Close()

	out := rotation.SupplyStock{}
	for rows.Next() {
		var productID string
		var qty decimal.Decimal
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, fmt.Errorf("rotation.SupplyStock scan: %w", err)
		}
		out[productID] = qty
	}
	return out, rows.Err()
}
