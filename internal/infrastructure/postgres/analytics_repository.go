package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

func (r *AnalyticsRepo) CountPatients(ctx context.Context, organizationID string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM patients WHERE organization_id = $1`, organizationID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountPatients: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountDeliveries(ctx context.Context, organizationID string, from, to time.Time) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM deliveries WHERE organization_id = $1 AND delivered_at BETWEEN $2 AND $3`,
		organizationID, from, to,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountDeliveries: %w", err)
	}
	return n, nil
}

// TopDispensed agrupa lo entregado en el período por producto.
// Empates en cantidad se ordenan por nombre.
func (r *AnalyticsRepo) TopDispensed(
	ctx context.Context,
	organizationID string,
	from, to time.Time,
	limit int,
) ([]repository.DispensedProduct, error) {
	const query = `
	SELECT
	    p.id,
	    p.cum,
	    p.name,
	    SUM(di.quantity)        AS quantity,
	    COUNT(DISTINCT d.id)    AS deliveries
	FROM deliveries d
	JOIN delivery_items di ON di.delivery_id = d.id
	JOIN products       p  ON p.id           = di.product_id
	WHERE d.organization_id = $1
	  AND d.delivered_at BETWEEN $2 AND $3
	GROUP BY p.id, p.cum, p.name
	ORDER BY quantity DESC, p.name
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, organizationID, from, to, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("analytics.TopDispensed: %w", err)
	}
	defer rows.Close()

	results := make([]repository.DispensedProduct, 0)
	for rows.Next() {
		var row repository.DispensedProduct
		if err := rows.Scan(&row.ProductID, &row.CUM, &row.ProductName, &row.Quantity, &row.Deliveries); err != nil {
			return nil, fmt.Errorf("analytics.TopDispensed scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
