package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.QuoteRepository    = (*QuoteRepo)(nil)
)

// SupplierRepo proveedores de la organización.
type SupplierRepo struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(pool *pgxpool.Pool) *SupplierRepo {
	return &SupplierRepo{pool: pool}
}

const supplierColumns = `id, organization_id, name, nit, contact_name, phone, email, payment_terms_days,
	is_active, created_at, updated_at`

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.OrganizationID, &s.Name, &s.NIT, &s.ContactName, &s.Phone, &s.Email,
		&s.PaymentTermsDays, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un proveedor; el NIT es único por organización.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.OrganizationID, s.Name, s.NIT, s.ContactName, s.Phone, s.Email, s.PaymentTermsDays,
		s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// Update el NIT no cambia.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE suppliers SET name = $2, contact_name = $3, phone = $4, email = $5,
			payment_terms_days = $6, is_active = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.Name, s.ContactName, s.Phone, s.Email, s.PaymentTermsDays, s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) List(ctx context.Context, organizationID string, onlyActive bool, limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers
		WHERE organization_id = $1 AND (NOT $2 OR is_active)
		ORDER BY name LIMIT $3 OFFSET $4`,
		organizationID, onlyActive, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Supplier, 0)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// QuoteRepo cotizaciones de proveedores.
type QuoteRepo struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository construye el adaptador.
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepo {
	return &QuoteRepo{pool: pool}
}

func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO quotes (id, organization_id, supplier_id, product_id, unit_price, discount_pct, valid_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		q.ID, q.OrganizationID, q.SupplierID, q.ProductID, q.UnitPrice, q.DiscountPct, q.ValidUntil, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// ListValidByProduct cotizaciones vigentes en at de proveedores activos.
func (r *QuoteRepo) ListValidByProduct(ctx context.Context, organizationID, productID string, at time.Time) ([]*entity.Quote, error) {
	const query = `
		SELECT q.id, q.organization_id, q.supplier_id, q.product_id, q.unit_price, q.discount_pct, q.valid_until, q.created_at
		FROM quotes q
		JOIN suppliers s ON s.id = q.supplier_id
		WHERE q.organization_id = $1 AND q.product_id = $2 AND q.valid_until >= $3 AND s.is_active
		ORDER BY q.created_at`
	rows, err := r.pool.Query(ctx, query, organizationID, productID, at)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Quote, 0)
	for rows.Next() {
		var q entity.Quote
		if err := rows.Scan(&q.ID, &q.OrganizationID, &q.SupplierID, &q.ProductID, &q.UnitPrice,
			&q.DiscountPct, &q.ValidUntil, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}
