package repository

import (
	"context"
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// PurchaseReceiptRepository define el puerto de persistencia para recepciones de compra.
type PurchaseReceiptRepository interface {
	Create(ctx context.Context, r *entity.PurchaseReceipt) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseReceipt, error)
	List(ctx context.Context, organizationID string, from, to *time.Time, limit, offset int) ([]*entity.PurchaseReceipt, error)
}
