package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo traslados entre bodegas (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, organization_id, from_warehouse_id, to_warehouse_id, notes, created_by, created_at`

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	if err := row.Scan(&t.ID, &t.OrganizationID, &t.FromWarehouseID, &t.ToWarehouseID, &t.Notes,
		&t.CreatedBy, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste el traslado y sus líneas.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	if _, err := r.q.Exec(ctx,
		`INSERT INTO transfers (`+transferColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.OrganizationID, t.FromWarehouseID, t.ToWarehouseID, t.Notes, t.CreatedBy, t.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	for i := range t.Items {
		it := &t.Items[i]
		it.TransferID = t.ID
		if _, err := r.q.Exec(ctx,
			`INSERT INTO transfer_items (id, transfer_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
			it.ID, it.TransferID, it.ProductID, it.Quantity,
		); err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el traslado con sus líneas.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	items, err := r.items(ctx, []string{t.ID})
	if err != nil {
		return nil, err
	}
	t.Items = items[t.ID]
	return t, nil
}

func (r *TransferRepo) items(ctx context.Context, ids []string) (map[string][]entity.TransferItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, transfer_id, product_id, quantity
		FROM transfer_items WHERE transfer_id = ANY($1::uuid[]) ORDER BY transfer_id, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.TransferItem, len(ids))
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		out[it.TransferID] = append(out[it.TransferID], it)
	}
	return out, rows.Err()
}

// List traslados de la organización, el más reciente primero.
func (r *TransferRepo) List(ctx context.Context, organizationID string, limit, offset int) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+transferColumns+` FROM transfers
		WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		organizationID, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	list := make([]*entity.Transfer, 0)
	ids := make([]string, 0)
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
		ids = append(ids, t.ID)
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
	for _, t := range list {
		t.Items = items[t.ID]
	}
	return list, nil
}
