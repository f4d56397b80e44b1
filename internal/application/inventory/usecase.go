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

// RegisterMovementUseCase registra movimientos manuales de inventario (IN, OUT,
// ADJUSTMENT) de forma transaccional con bloqueo de fila (SELECT FOR UPDATE).
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MovementInputDTO entrada para registrar un movimiento manual.
// UnitCost es obligatorio en IN; en ADJUSTMENT positivo es opcional (0 por defecto).
type MovementInputDTO struct {
	OrganizationID string
	UserID         string
	ProductID      string
	WarehouseID    string
	Type           string
	Quantity       decimal.Decimal
	UnitCost       *decimal.Decimal
	Lot            string
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, organizationID, userID string, in dto.RegisterMovementRequest) error {
	return uc.RegisterMovement(ctx, MovementInputDTO{
		OrganizationID: organizationID,
		UserID:         userID,
		ProductID:      in.ProductID,
		WarehouseID:    in.WarehouseID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		UnitCost:       in.UnitCost,
		Lot:            in.Lot,
	})
}

// RegisterMovement valida, abre la transacción y aplica el movimiento con el motor de inventario.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) error {
	if input.ProductID == "" || input.WarehouseID == "" || input.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIN:
		if input.UnitCost == nil || input.UnitCost.LessThan(decimal.Zero) || input.Quantity.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeOUT:
		if input.Quantity.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
	default:
		return domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if product == nil || product.OrganizationID != input.OrganizationID {
		return domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, input.WarehouseID)
	if err != nil {
		return err
	}
	if wh == nil || wh.OrganizationID != input.OrganizationID {
		return domain.ErrNotFound
	}
	if !wh.IsActive {
		return domain.ErrInactiveWarehouse
	}

	now := time.Now()
	line := Line{
		TransactionID: uuid.New().String(),
		ProductID:     input.ProductID,
		WarehouseID:   input.WarehouseID,
		Quantity:      input.Quantity,
		ReferenceType: entity.ReferenceManual,
		Lot:           input.Lot,
		UserID:        input.UserID,
		Date:          now,
	}

	return uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		switch input.Type {
		case entity.MovementTypeIN:
			line.UnitCost = *input.UnitCost
			return ApplyIN(ctx, repos, line)
		case entity.MovementTypeOUT:
			_, err := ApplyOUT(ctx, repos, line)
			return err
		default:
			// ADJUSTMENT: positivo como IN, negativo como OUT.
			line.Type = entity.MovementTypeADJUSTMENT
			if input.Quantity.GreaterThan(decimal.Zero) {
				if input.UnitCost != nil {
					line.UnitCost = *input.UnitCost
				}
				return ApplyIN(ctx, repos, line)
			}
			line.Quantity = input.Quantity.Neg()
			_, err := ApplyOUT(ctx, repos, line)
			return err
		}
	})
}
