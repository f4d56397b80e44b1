package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.SupplierScoreRepository = (*SupplierScoreRepo)(nil)

// SupplierScoreRepo calificación acumulada por proveedor (usable con pool o tx).
type SupplierScoreRepo struct {
	q Querier
}

// NewSupplierScoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierScoreRepository(q Querier) *SupplierScoreRepo {
	return &SupplierScoreRepo{q: q}
}

const scoreColumns = `supplier_id, price, delivery, quality, payment, discount, tracking, overall,
	total_orders, on_time_deliveries, updated_at`

func scanScore(row pgx.Row) (*entity.SupplierScore, error) {
	var s entity.SupplierScore
	if err := row.Scan(&s.SupplierID, &s.Price, &s.Delivery, &s.Quality, &s.Payment, &s.Discount,
		&s.Tracking, &s.Overall, &s.TotalOrders, &s.OnTimeDeliveries, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Get devuelve nil si el proveedor aún no tiene calificación.
func (r *SupplierScoreRepo) Get(ctx context.Context, supplierID string) (*entity.SupplierScore, error) {
	return r.get(ctx, supplierID, "")
}

// GetForUpdate serializa actualizaciones concurrentes del mismo proveedor.
// Bloquea la fila del proveedor porque la calificación puede no existir aún.
func (r *SupplierScoreRepo) GetForUpdate(ctx context.Context, supplierID string) (*entity.SupplierScore, error) {
	if _, err := r.q.Exec(ctx, `SELECT 1 FROM suppliers WHERE id = $1 FOR UPDATE`, supplierID); err != nil {
		return nil, fmt.Errorf("lock supplier: %w", err)
	}
	return r.get(ctx, supplierID, " FOR UPDATE")
}

func (r *SupplierScoreRepo) get(ctx context.Context, supplierID, lock string) (*entity.SupplierScore, error) {
	s, err := scanScore(r.q.QueryRow(ctx,
		`SELECT `+scoreColumns+` FROM supplier_scores WHERE supplier_id = $1`+lock, supplierID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier score: %w", err)
	}
	return s, nil
}

// Upsert crea la fila en la primera calificación y la reemplaza en las siguientes.
func (r *SupplierScoreRepo) Upsert(ctx context.Context, s *entity.SupplierScore) error {
	query := `INSERT INTO supplier_scores (` + scoreColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (supplier_id) DO UPDATE SET
			price = EXCLUDED.price, delivery = EXCLUDED.delivery, quality = EXCLUDED.quality,
			payment = EXCLUDED.payment, discount = EXCLUDED.discount, tracking = EXCLUDED.tracking,
			overall = EXCLUDED.overall, total_orders = EXCLUDED.total_orders,
			on_time_deliveries = EXCLUDED.on_time_deliveries, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		s.SupplierID, s.Price, s.Delivery, s.Quality, s.Payment, s.Discount, s.Tracking, s.Overall,
		s.TotalOrders, s.OnTimeDeliveries, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert supplier score: %w", err)
	}
	return nil
}

// ListByOrganization calificaciones indexadas por supplier_id.
func (r *SupplierScoreRepo) ListByOrganization(ctx context.Context, organizationID string) (map[string]*entity.SupplierScore, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sc.supplier_id, sc.price, sc.delivery, sc.quality, sc.payment, sc.discount, sc.tracking,
		       sc.overall, sc.total_orders, sc.on_time_deliveries, sc.updated_at
		FROM supplier_scores sc
		JOIN suppliers s ON s.id = sc.supplier_id
		WHERE s.organization_id = $1`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list supplier scores: %w", err)
	}
	defer rows.Close()
	out := make(map[string]*entity.SupplierScore)
	for rows.Next() {
		s, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier score: %w", err)
		}
		out[s.SupplierID] = s
	}
	return out, rows.Err()
}
