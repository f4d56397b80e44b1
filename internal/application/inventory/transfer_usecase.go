package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// TransferUseCase traslados entre bodegas, típicamente bodega -> dispensario
// después de una alerta "warning".
type TransferUseCase struct {
	txRunner      TxRunner
	transferRepo  repository.TransferRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, transferRepo: transferRepo, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// Create valida ambas bodegas y aplica un par de movimientos TRANSFER por línea.
func (uc *TransferUseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || in.FromWarehouseID == in.ToWarehouseID || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, id := range []string{in.FromWarehouseID, in.ToWarehouseID} {
		wh, err := uc.warehouseRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if wh == nil || wh.OrganizationID != organizationID {
			return nil, domain.ErrNotFound
		}
		if !wh.IsActive {
			return nil, domain.ErrInactiveWarehouse
		}
	}
	for _, it := range in.Items {
		if it.ProductID == "" || !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.OrganizationID != organizationID {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	t := &entity.Transfer{
		ID:              uuid.New().String(),
		OrganizationID:  organizationID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Notes:           in.Notes,
		CreatedBy:       userID,
		CreatedAt:       now,
	}
	for _, it := range in.Items {
		t.Items = append(t.Items, entity.TransferItem{
			ID:         uuid.New().String(),
			TransferID: t.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
		})
	}

	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		for _, it := range t.Items {
			line := Line{
				TransactionID: t.ID,
				ProductID:     it.ProductID,
				WarehouseID:   t.FromWarehouseID,
				Quantity:      it.Quantity,
				ReferenceType: entity.ReferenceTransfer,
				ReferenceID:   t.ID,
				UserID:        userID,
				Date:          now,
			}
			if err := ApplyTransfer(ctx, repos, line, t.ToWarehouseID); err != nil {
				return err
			}
		}
		return repos.Transfers.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(t), nil
}

// GetByID obtiene un traslado de la organización.
func (uc *TransferUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.TransferResponse, error) {
	t, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(t), nil
}

// List traslados de la organización, más recientes primero.
func (uc *TransferUseCase) List(ctx context.Context, organizationID string, limit, offset int) (*dto.TransferListResponse, error) {
	list, err := uc.transferRepo.List(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return &dto.TransferListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	items := make([]dto.TransferItemRequest, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.TransferItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &dto.TransferResponse{
		ID:              t.ID,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		Notes:           t.Notes,
		Items:           items,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
	}
}
