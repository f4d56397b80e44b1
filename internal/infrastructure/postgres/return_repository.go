package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo devoluciones de pacientes (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, organization_id, delivery_id, warehouse_id, reason, created_by, created_at`

func scanReturn(row pgx.Row) (*entity.ProductReturn, error) {
	var r entity.ProductReturn
	if err := row.Scan(&r.ID, &r.OrganizationID, &r.DeliveryID, &r.WarehouseID, &r.Reason,
		&r.CreatedBy, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create persiste la devolución y sus líneas.
func (r *ReturnRepo) Create(ctx context.Context, ret *entity.ProductReturn) error {
	if _, err := r.q.Exec(ctx,
		`INSERT INTO product_returns (`+returnColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ret.ID, ret.OrganizationID, ret.DeliveryID, ret.WarehouseID, ret.Reason, ret.CreatedBy, ret.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	const itemQuery = `
		INSERT INTO product_return_items (id, return_id, product_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range ret.Items {
		it := &ret.Items[i]
		it.ReturnID = ret.ID
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, it.ReturnID, it.ProductID, it.Quantity, it.UnitCost); err != nil {
			return fmt.Errorf("insert return item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la devolución con sus líneas.
func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.ProductReturn, error) {
	ret, err := scanReturn(r.q.QueryRow(ctx, `SELECT `+returnColumns+` FROM product_returns WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	items, err := r.items(ctx, []string{ret.ID})
	if err != nil {
		return nil, err
	}
	ret.Items = items[ret.ID]
	return ret, nil
}

func (r *ReturnRepo) items(ctx context.Context, ids []string) (map[string][]entity.ProductReturnItem, error) {
	const query = `
		SELECT id, return_id, product_id, quantity, unit_cost
		FROM product_return_items WHERE return_id = ANY($1::uuid[]) ORDER BY return_id, id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.ProductReturnItem, len(ids))
	for rows.Next() {
		var it entity.ProductReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.ProductID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		out[it.ReturnID] = append(out[it.ReturnID], it)
	}
	return out, rows.Err()
}

// ListByDelivery devoluciones de una entrega en orden de registro.
func (r *ReturnRepo) ListByDelivery(ctx context.Context, deliveryID string) ([]*entity.ProductReturn, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+returnColumns+` FROM product_returns WHERE delivery_id = $1 ORDER BY created_at`, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	list := make([]*entity.ProductReturn, 0)
	ids := make([]string, 0)
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, ret)
		ids = append(ids, ret.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, ret := range list {
		ret.Items = items[ret.ID]
	}
	return list, nil
}

// ReturnedQuantities cantidad ya devuelta por producto para una entrega.
func (r *ReturnRepo) ReturnedQuantities(ctx context.Context, deliveryID string) (map[string]decimal.Decimal, error) {
	const query = `
		SELECT i.product_id, SUM(i.quantity)
		FROM product_return_items i
		JOIN product_returns r ON r.id = i.return_id
		WHERE r.delivery_id = $1
		GROUP BY i.product_id`
	rows, err := r.q.Query(ctx, query, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("returned quantities: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var productID string
		var qty decimal.Decimal
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, fmt.Errorf("scan returned quantity: %w", err)
		}
		out[productID] = qty
	}
	return out, rows.Err()
}
