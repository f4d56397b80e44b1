package dispensing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// ReturnUseCase devoluciones de pacientes al dispensario de la entrega original.
// No modifica lo entregado en la fórmula.
type ReturnUseCase struct {
	txRunner      inventory.TxRunner
	returnRepo    repository.ReturnRepository
	deliveryRepo  repository.DeliveryRepository
	warehouseRepo repository.WarehouseRepository
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(
	txRunner inventory.TxRunner,
	returnRepo repository.ReturnRepository,
	deliveryRepo repository.DeliveryRepository,
	warehouseRepo repository.WarehouseRepository,
) *ReturnUseCase {
	return &ReturnUseCase{txRunner: txRunner, returnRepo: returnRepo, deliveryRepo: deliveryRepo, warehouseRepo: warehouseRepo}
}

// Create reingresa lo devuelto al costo unitario de la entrega. La cantidad por
// producto no puede superar lo entregado menos lo ya devuelto.
func (uc *ReturnUseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if in.DeliveryID == "" || strings.TrimSpace(in.Reason) == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.deliveryRepo.GetByID(ctx, in.DeliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil || d.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, d.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if !wh.IsActive {
		return nil, domain.ErrInactiveWarehouse
	}

	delivered := map[string]decimal.Decimal{}
	unitCost := map[string]decimal.Decimal{}
	for _, it := range d.Items {
		delivered[it.ProductID] = delivered[it.ProductID].Add(it.Quantity)
		if _, ok := unitCost[it.ProductID]; !ok {
			unitCost[it.ProductID] = it.UnitCost
		}
	}
	requested := map[string]decimal.Decimal{}
	for _, it := range in.Items {
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := delivered[it.ProductID]; !ok {
			return nil, fmt.Errorf("%w: el producto no hace parte de la entrega", domain.ErrInvalidInput)
		}
		requested[it.ProductID] = requested[it.ProductID].Add(it.Quantity)
	}

	now := time.Now()
	ret := &entity.ProductReturn{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		DeliveryID:     d.ID,
		WarehouseID:    d.WarehouseID,
		Reason:         strings.TrimSpace(in.Reason),
		CreatedBy:      userID,
		CreatedAt:      now,
	}
	for _, it := range in.Items {
		ret.Items = append(ret.Items, entity.ProductReturnItem{
			ID:        uuid.New().String(),
			ReturnID:  ret.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  unitCost[it.ProductID],
		})
	}

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		returned, err := repos.Returns.ReturnedQuantities(ctx, d.ID)
		if err != nil {
			return err
		}
		for productID, qty := range requested {
			available := delivered[productID].Sub(returned[productID])
			if qty.GreaterThan(available) {
				return fmt.Errorf("%w: disponible %s, solicitado %s", domain.ErrExceedsDelivered, available.String(), qty.String())
			}
		}
		for _, it := range ret.Items {
			if err := inventory.ApplyIN(ctx, repos, inventory.Line{
				TransactionID: ret.ID,
				ProductID:     it.ProductID,
				WarehouseID:   ret.WarehouseID,
				Quantity:      it.Quantity,
				UnitCost:      it.UnitCost,
				ReferenceType: entity.ReferenceReturn,
				ReferenceID:   ret.ID,
				UserID:        userID,
				Date:          now,
			}); err != nil {
				return err
			}
		}
		return repos.Returns.Create(ctx, ret)
	})
	if err != nil {
		return nil, err
	}
	return toReturnResponse(ret), nil
}

// GetByID obtiene una devolución de la organización.
func (uc *ReturnUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.returnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil || ret.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return toReturnResponse(ret), nil
}

// ListByDelivery devoluciones de una entrega.
func (uc *ReturnUseCase) ListByDelivery(ctx context.Context, organizationID, deliveryID string) ([]dto.ReturnResponse, error) {
	d, err := uc.deliveryRepo.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil || d.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.returnRepo.ListByDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReturnResponse(r))
	}
	return out, nil
}

func toReturnResponse(r *entity.ProductReturn) *dto.ReturnResponse {
	items := make([]dto.ReturnItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.ReturnItemResponse{ProductID: it.ProductID, Quantity: it.Quantity, UnitCost: it.UnitCost})
	}
	return &dto.ReturnResponse{
		ID:          r.ID,
		DeliveryID:  r.DeliveryID,
		WarehouseID: r.WarehouseID,
		Reason:      r.Reason,
		Items:       items,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	}
}
