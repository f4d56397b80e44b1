package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// StockUseCase consultas de existencias y kardex por bodega.
type StockUseCase struct {
	stockRepo     repository.StockRepository
	movementRepo  repository.InventoryMovementRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	stockRepo repository.StockRepository,
	movementRepo repository.InventoryMovementRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo, movementRepo: movementRepo, warehouseRepo: warehouseRepo}
}

// ListStock existencias de una bodega con el nombre del producto.
func (uc *StockUseCase) ListStock(ctx context.Context, organizationID, warehouseID string) (*dto.StockListResponse, error) {
	if err := uc.checkWarehouse(ctx, organizationID, warehouseID); err != nil {
		return nil, err
	}
	levels, err := uc.stockRepo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		items = append(items, dto.StockLevelResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			CUM:         l.CUM,
			WarehouseID: l.WarehouseID,
			Quantity:    l.Quantity,
			UnitCost:    l.UnitCost,
			UpdatedAt:   l.UpdatedAt,
		})
	}
	return &dto.StockListResponse{WarehouseID: warehouseID, Items: items}, nil
}

// ListMovements kardex de una bodega en el rango opcional [from, to].
func (uc *StockUseCase) ListMovements(ctx context.Context, organizationID, warehouseID string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	if err := uc.checkWarehouse(ctx, organizationID, warehouseID); err != nil {
		return nil, err
	}
	list, err := uc.movementRepo.ListByWarehouse(ctx, warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			TotalCost:     m.TotalCost,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			Lot:           m.Lot,
			Date:          m.Date,
			CreatedBy:     m.CreatedBy,
		})
	}
	return &dto.MovementListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *StockUseCase) checkWarehouse(ctx context.Context, organizationID, warehouseID string) error {
	if warehouseID == "" {
		return domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if wh == nil || wh.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	return nil
}
