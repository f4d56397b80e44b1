package repository

import (
	"context"
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	List(ctx context.Context, organizationID string, onlyActive bool, limit, offset int) ([]*entity.Supplier, error)
}

// QuoteRepository cotizaciones de proveedores.
type QuoteRepository interface {
	Create(ctx context.Context, q *entity.Quote) error
	// ListValidByProduct cotizaciones vigentes en at (valid_until >= at) de proveedores activos.
	ListValidByProduct(ctx context.Context, organizationID, productID string, at time.Time) ([]*entity.Quote, error)
}

// SupplierScoreRepository calificaciones de proveedores. Get devuelve nil si no existe.
type SupplierScoreRepository interface {
	Get(ctx context.Context, supplierID string) (*entity.SupplierScore, error)
	GetForUpdate(ctx context.Context, supplierID string) (*entity.SupplierScore, error)
	Upsert(ctx context.Context, s *entity.SupplierScore) error
	// ListByOrganization indexado por supplier_id; solo proveedores con fila de calificación.
	ListByOrganization(ctx context.Context, organizationID string) (map[string]*entity.SupplierScore, error)
}
