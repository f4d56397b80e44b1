package dispensing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// DeliveryUseCase dispensación de medicamentos a pacientes desde un dispensario.
type DeliveryUseCase struct {
	txRunner         inventory.TxRunner
	deliveryRepo     repository.DeliveryRepository
	warehouseRepo    repository.WarehouseRepository
	patientRepo      repository.PatientRepository
	productRepo      repository.ProductRepository
	prescriptionRepo repository.PrescriptionRepository
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(
	txRunner inventory.TxRunner,
	deliveryRepo repository.DeliveryRepository,
	warehouseRepo repository.WarehouseRepository,
	patientRepo repository.PatientRepository,
	productRepo repository.ProductRepository,
	prescriptionRepo repository.PrescriptionRepository,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		txRunner:         txRunner,
		deliveryRepo:     deliveryRepo,
		warehouseRepo:    warehouseRepo,
		patientRepo:      patientRepo,
		productRepo:      productRepo,
		prescriptionRepo: prescriptionRepo,
	}
}

// Create registra la entrega: una salida de inventario por línea al costo
// promedio vigente y, si hay fórmula, el avance de sus cantidades entregadas.
// Todo en una transacción; cualquier error revierte stock, fórmula y entrega.
func (uc *DeliveryUseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if in.WarehouseID == "" || in.PatientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil || wh.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if !wh.IsDispensary() {
		return nil, domain.ErrInvalidWarehouseType
	}
	if !wh.IsActive {
		return nil, domain.ErrInactiveWarehouse
	}
	patient, err := uc.patientRepo.GetByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil || patient.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
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
	if in.PrescriptionID != "" {
		rx, err := uc.prescriptionRepo.GetByID(ctx, in.PrescriptionID)
		if err != nil {
			return nil, err
		}
		if rx == nil || rx.OrganizationID != organizationID {
			return nil, domain.ErrNotFound
		}
		if rx.PatientID != in.PatientID {
			return nil, fmt.Errorf("%w: la fórmula pertenece a otro paciente", domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	d := &entity.Delivery{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		WarehouseID:    in.WarehouseID,
		PatientID:      in.PatientID,
		PrescriptionID: in.PrescriptionID,
		DeliveredAt:    now,
		DeliveredBy:    userID,
		CreatedAt:      now,
	}
	for _, it := range in.Items {
		d.Items = append(d.Items, entity.DeliveryItem{
			ID:                 uuid.New().String(),
			DeliveryID:         d.ID,
			ProductID:          it.ProductID,
			PrescriptionItemID: it.PrescriptionItemID,
			Quantity:           it.Quantity,
			Lot:                it.Lot,
		})
	}

	var rxStatus string
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		if d.PrescriptionID != "" {
			rx, err := repos.Prescriptions.GetForUpdate(ctx, d.PrescriptionID)
			if err != nil {
				return err
			}
			if rx == nil {
				return domain.ErrNotFound
			}
			if err := allocate(rx, d.Items); err != nil {
				return err
			}
			rx.RecomputeStatus()
			rx.UpdatedAt = now
			if err := repos.Prescriptions.UpdateProgress(ctx, rx); err != nil {
				return err
			}
			rxStatus = rx.Status
		}
		for i := range d.Items {
			it := &d.Items[i]
			cost, err := inventory.ApplyOUT(ctx, repos, inventory.Line{
				TransactionID: d.ID,
				ProductID:     it.ProductID,
				WarehouseID:   d.WarehouseID,
				Quantity:      it.Quantity,
				ReferenceType: entity.ReferenceDelivery,
				ReferenceID:   d.ID,
				Lot:           it.Lot,
				UserID:        userID,
				Date:          now,
			})
			if err != nil {
				return err
			}
			it.UnitCost = cost
		}
		return repos.Deliveries.Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	out := toDeliveryResponse(d)
	out.PrescriptionStatus = rxStatus
	return out, nil
}

// allocate suma cada línea entregada a la línea de fórmula indicada o, si no se
// indica, a la primera del mismo producto con saldo pendiente.
func allocate(rx *entity.Prescription, items []entity.DeliveryItem) error {
	if rx.Status == entity.PrescriptionCancelled || rx.Status == entity.PrescriptionCompleted {
		return fmt.Errorf("%w: la fórmula está %s", domain.ErrConflict, rx.Status)
	}
	for i := range items {
		it := &items[i]
		idx := -1
		for j, line := range rx.Items {
			if it.PrescriptionItemID != "" {
				if line.ID == it.PrescriptionItemID {
					idx = j
					break
				}
				continue
			}
			if line.ProductID != it.ProductID {
				continue
			}
			if idx < 0 {
				idx = j
			}
			if line.Pending().GreaterThan(decimal.Zero) {
				idx = j
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: el producto no está en la fórmula", domain.ErrInvalidInput)
		}
		line := &rx.Items[idx]
		if line.ProductID != it.ProductID {
			return fmt.Errorf("%w: la línea de fórmula es de otro producto", domain.ErrInvalidInput)
		}
		if it.Quantity.GreaterThan(line.Pending()) {
			return fmt.Errorf("%w: pendiente %s, solicitado %s", domain.ErrExceedsPrescribed, line.Pending().String(), it.Quantity.String())
		}
		line.QuantityDelivered = line.QuantityDelivered.Add(it.Quantity)
		it.PrescriptionItemID = line.ID
	}
	return nil
}

// GetByID obtiene una entrega de la organización.
func (uc *DeliveryUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.DeliveryResponse, error) {
	d, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || d.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return toDeliveryResponse(d), nil
}

// List entregas con filtros opcionales de dispensario, paciente y rango de fechas.
func (uc *DeliveryUseCase) List(ctx context.Context, organizationID string, f repository.DeliveryFilter, limit, offset int) (*dto.DeliveryListResponse, error) {
	list, err := uc.deliveryRepo.List(ctx, organizationID, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDeliveryResponse(d))
	}
	return &dto.DeliveryListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	items := make([]dto.DeliveryItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, dto.DeliveryItemResponse{
			ID:                 it.ID,
			ProductID:          it.ProductID,
			PrescriptionItemID: it.PrescriptionItemID,
			Quantity:           it.Quantity,
			UnitCost:           it.UnitCost,
			Lot:                it.Lot,
		})
	}
	return &dto.DeliveryResponse{
		ID:             d.ID,
		WarehouseID:    d.WarehouseID,
		PatientID:      d.PatientID,
		PrescriptionID: d.PrescriptionID,
		DeliveredAt:    d.DeliveredAt,
		DeliveredBy:    d.DeliveredBy,
		Items:          items,
	}
}
