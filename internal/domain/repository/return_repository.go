package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// ReturnRepository define el puerto de persistencia para devoluciones de pacientes.
type ReturnRepository interface {
	Create(ctx context.Context, r *entity.ProductReturn) error
	GetByID(ctx context.Context, id string) (*entity.ProductReturn, error)
	ListByDelivery(ctx context.Context, deliveryID string) ([]*entity.ProductReturn, error)
	// ReturnedQuantities cantidad ya devuelta por producto para una entrega.
	ReturnedQuantities(ctx context.Context, deliveryID string) (map[string]decimal.Decimal, error)
}
