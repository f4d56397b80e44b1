package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo entregas a pacientes y sus líneas (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, organization_id, warehouse_id, patient_id, COALESCE(prescription_id::text, ''),
	delivered_at, delivered_by, created_at`

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	if err := row.Scan(&d.ID, &d.OrganizationID, &d.WarehouseID, &d.PatientID, &d.PrescriptionID,
		&d.DeliveredAt, &d.DeliveredBy, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste la cabecera de la entrega y cada línea.
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	const query = `
		INSERT INTO deliveries (id, organization_id, warehouse_id, patient_id, prescription_id, delivered_at, delivered_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.q.Exec(ctx, query,
		d.ID, d.OrganizationID, d.WarehouseID, d.PatientID, nullString(d.PrescriptionID),
		d.DeliveredAt, d.DeliveredBy, d.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	const itemQuery = `
		INSERT INTO delivery_items (id, delivery_id, product_id, prescription_item_id, quantity, unit_cost, lot)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range d.Items {
		it := &d.Items[i]
		it.DeliveryID = d.ID
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.DeliveryID, it.ProductID, nullString(it.PrescriptionItemID), it.Quantity, it.UnitCost, it.Lot,
		); err != nil {
			return fmt.Errorf("insert delivery item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la entrega con sus líneas.
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	d, err := scanDelivery(r.q.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	items, err := r.items(ctx, []string{d.ID})
	if err != nil {
		return nil, err
	}
	d.Items = items[d.ID]
	return d, nil
}

func (r *DeliveryRepo) items(ctx context.Context, ids []string) (map[string][]entity.DeliveryItem, error) {
	const query = `
		SELECT id, delivery_id, product_id, COALESCE(prescription_item_id::text, ''), quantity, unit_cost, lot
		FROM delivery_items WHERE delivery_id = ANY($1::uuid[]) ORDER BY delivery_id, id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list delivery items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.DeliveryItem, len(ids))
	for rows.Next() {
		var it entity.DeliveryItem
		if err := rows.Scan(&it.ID, &it.DeliveryID, &it.ProductID, &it.PrescriptionItemID,
			&it.Quantity, &it.UnitCost, &it.Lot); err != nil {
			return nil, fmt.Errorf("scan delivery item: %w", err)
		}
		out[it.DeliveryID] = append(out[it.DeliveryID], it)
	}
	return out, rows.Err()
}

// List entregas de la organización, la más reciente primero, con filtros opcionales.
func (r *DeliveryRepo) List(ctx context.Context, organizationID string, f repository.DeliveryFilter, limit, offset int) ([]*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE organization_id = $1`
	args := []any{organizationID}
	pos := 2
	if f.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, f.WarehouseID)
		pos++
	}
	if f.PatientID != "" {
		query += fmt.Sprintf(" AND patient_id = $%d", pos)
		args = append(args, f.PatientID)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND delivered_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND delivered_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY delivered_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limitArg(limit), offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	list := make([]*entity.Delivery, 0)
	ids := make([]string, 0)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, d)
		ids = append(ids, d.ID)
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
	for _, d := range list {
		d.Items = items[d.ID]
	}
	return list, nil
}
