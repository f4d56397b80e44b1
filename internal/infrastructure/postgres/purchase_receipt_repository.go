package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.PurchaseReceiptRepository = (*PurchaseReceiptRepo)(nil)

// PurchaseReceiptRepo recepciones de compra (usable con pool o tx).
type PurchaseReceiptRepo struct {
	q Querier
}

// NewPurchaseReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseReceiptRepository(q Querier) *PurchaseReceiptRepo {
	return &PurchaseReceiptRepo{q: q}
}

const receiptColumns = `id, organization_id, supplier_id, warehouse_id, invoice_number, received_at, total, created_by, created_at`

func scanReceipt(row pgx.Row) (*entity.PurchaseReceipt, error) {
	var rc entity.PurchaseReceipt
	if err := row.Scan(&rc.ID, &rc.OrganizationID, &rc.SupplierID, &rc.WarehouseID, &rc.InvoiceNumber,
		&rc.ReceivedAt, &rc.Total, &rc.CreatedBy, &rc.CreatedAt); err != nil {
		return nil, err
	}
	return &rc, nil
}

// Create persiste la recepción y sus líneas. La factura del proveedor es única por organización.
func (r *PurchaseReceiptRepo) Create(ctx context.Context, rc *entity.PurchaseReceipt) error {
	if _, err := r.q.Exec(ctx,
		`INSERT INTO purchase_receipts (`+receiptColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rc.ID, rc.OrganizationID, rc.SupplierID, rc.WarehouseID, rc.InvoiceNumber, rc.ReceivedAt,
		rc.Total, rc.CreatedBy, rc.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase receipt: %w", err)
	}
	const itemQuery = `
		INSERT INTO purchase_receipt_items (id, receipt_id, product_id, quantity, unit_cost, lot, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range rc.Items {
		it := &rc.Items[i]
		it.ReceiptID = rc.ID
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.ReceiptID, it.ProductID, it.Quantity, it.UnitCost, it.Lot, it.ExpirationDate,
		); err != nil {
			return fmt.Errorf("insert purchase receipt item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la recepción con sus líneas.
func (r *PurchaseReceiptRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseReceipt, error) {
	rc, err := scanReceipt(r.q.QueryRow(ctx, `SELECT `+receiptColumns+` FROM purchase_receipts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase receipt: %w", err)
	}
	items, err := r.items(ctx, []string{rc.ID})
	if err != nil {
		return nil, err
	}
	rc.Items = items[rc.ID]
	return rc, nil
}

func (r *PurchaseReceiptRepo) items(ctx context.Context, ids []string) (map[string][]entity.PurchaseReceiptItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, receipt_id, product_id, quantity, unit_cost, lot, expiration_date
		FROM purchase_receipt_items WHERE receipt_id = ANY($1::uuid[]) ORDER BY receipt_id, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list purchase receipt items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.PurchaseReceiptItem, len(ids))
	for rows.Next() {
		var it entity.PurchaseReceiptItem
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.ProductID, &it.Quantity, &it.UnitCost, &it.Lot,
			&it.ExpirationDate); err != nil {
			return nil, fmt.Errorf("scan purchase receipt item: %w", err)
		}
		out[it.ReceiptID] = append(out[it.ReceiptID], it)
	}
	return out, rows.Err()
}

// List recepciones de la organización en el rango opcional, la más reciente primero.
func (r *PurchaseReceiptRepo) List(ctx context.Context, organizationID string, from, to *time.Time, limit, offset int) ([]*entity.PurchaseReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM purchase_receipts WHERE organization_id = $1`
	args := []any{organizationID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND received_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND received_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY received_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limitArg(limit), offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase receipts: %w", err)
	}
	list := make([]*entity.PurchaseReceipt, 0)
	ids := make([]string, 0)
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase receipt: %w", err)
		}
		list = append(list, rc)
		ids = append(ids, rc.ID)
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
	for _, rc := range list {
		rc.Items = items[rc.ID]
	}
	return list, nil
}
