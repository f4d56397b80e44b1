package purchasing

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

// ReceiptUseCase recepción técnica de facturas de compra.
type ReceiptUseCase struct {
	txRunner      inventory.TxRunner
	receiptRepo   repository.PurchaseReceiptRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	txRunner inventory.TxRunner,
	receiptRepo repository.PurchaseReceiptRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txRunner:      txRunner,
		receiptRepo:   receiptRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
	}
}

// Create ingresa la mercancía: un movimiento IN por línea con recálculo del
// costo promedio y la recepción con su total, en una sola transacción.
func (uc *ReceiptUseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreatePurchaseReceiptRequest) (*dto.PurchaseReceiptResponse, error) {
	invoice := strings.TrimSpace(in.InvoiceNumber)
	if in.SupplierID == "" || in.WarehouseID == "" || invoice == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if !s.IsActive {
		return nil, fmt.Errorf("%w: el proveedor está inactivo", domain.ErrConflict)
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil || wh.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if !wh.IsActive {
		return nil, domain.ErrInactiveWarehouse
	}

	now := time.Now()
	receivedAt := now
	if in.ReceivedAt != nil {
		receivedAt = *in.ReceivedAt
	}
	rc := &entity.PurchaseReceipt{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		SupplierID:     s.ID,
		WarehouseID:    wh.ID,
		InvoiceNumber:  invoice,
		ReceivedAt:     receivedAt,
		Total:          decimal.Zero,
		CreatedBy:      userID,
		CreatedAt:      now,
	}
	for _, it := range in.Items {
		if !it.Quantity.GreaterThan(decimal.Zero) || it.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.OrganizationID != organizationID {
			return nil, domain.ErrNotFound
		}
		var expiration *time.Time
		if it.ExpirationDate != "" {
			t, err := time.Parse("2006-01-02", it.ExpirationDate)
			if err != nil {
				return nil, fmt.Errorf("%w: expiration_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
			}
			expiration = &t
		}
		item := entity.PurchaseReceiptItem{
			ID:             uuid.New().String(),
			ReceiptID:      rc.ID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitCost:       it.UnitCost,
			Lot:            strings.TrimSpace(it.Lot),
			ExpirationDate: expiration,
		}
		rc.Items = append(rc.Items, item)
		rc.Total = rc.Total.Add(item.Subtotal())
	}

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		for _, it := range rc.Items {
			if err := inventory.ApplyIN(ctx, repos, inventory.Line{
				TransactionID: rc.ID,
				ProductID:     it.ProductID,
				WarehouseID:   rc.WarehouseID,
				Quantity:      it.Quantity,
				UnitCost:      it.UnitCost,
				ReferenceType: entity.ReferencePurchaseReceipt,
				ReferenceID:   rc.ID,
				Lot:           it.Lot,
				UserID:        userID,
				Date:          now,
			}); err != nil {
				return err
			}
		}
		return repos.Receipts.Create(ctx, rc)
	})
	if err != nil {
		return nil, err
	}
	return toReceiptResponse(rc), nil
}

// GetByID obtiene una recepción de la organización.
func (uc *ReceiptUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.PurchaseReceiptResponse, error) {
	rc, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rc == nil || rc.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return toReceiptResponse(rc), nil
}

// List recepciones en el rango de fechas (ambos extremos opcionales).
func (uc *ReceiptUseCase) List(ctx context.Context, organizationID string, from, to *time.Time, limit, offset int) (*dto.PurchaseReceiptListResponse, error) {
	list, err := uc.receiptRepo.List(ctx, organizationID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseReceiptResponse, 0, len(list))
	for _, rc := range list {
		items = append(items, *toReceiptResponse(rc))
	}
	return &dto.PurchaseReceiptListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toReceiptResponse(rc *entity.PurchaseReceipt) *dto.PurchaseReceiptResponse {
	items := make([]dto.PurchaseReceiptItemResponse, 0, len(rc.Items))
	for _, it := range rc.Items {
		items = append(items, dto.PurchaseReceiptItemResponse{
			ID:             it.ID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitCost:       it.UnitCost,
			Subtotal:       it.Subtotal(),
			Lot:            it.Lot,
			ExpirationDate: it.ExpirationDate,
		})
	}
	return &dto.PurchaseReceiptResponse{
		ID:            rc.ID,
		SupplierID:    rc.SupplierID,
		WarehouseID:   rc.WarehouseID,
		InvoiceNumber: rc.InvoiceNumber,
		ReceivedAt:    rc.ReceivedAt,
		Total:         rc.Total,
		Items:         items,
		CreatedBy:     rc.CreatedBy,
	}
}
