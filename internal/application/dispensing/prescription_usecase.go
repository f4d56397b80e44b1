// Package dispensing contiene los casos de uso de fórmulas médicas, entregas a
// pacientes y devoluciones.
package dispensing

import (
	"context"
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

// PrescriptionUseCase registro y consulta de fórmulas médicas.
type PrescriptionUseCase struct {
	txRunner         inventory.TxRunner
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientRepository
	productRepo      repository.ProductRepository
}

// NewPrescriptionUseCase construye el caso de uso.
func NewPrescriptionUseCase(
	txRunner inventory.TxRunner,
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientRepository,
	productRepo repository.ProductRepository,
) *PrescriptionUseCase {
	return &PrescriptionUseCase{
		txRunner:         txRunner,
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		productRepo:      productRepo,
	}
}

// Create registra una fórmula en estado pending.
func (uc *PrescriptionUseCase) Create(ctx context.Context, organizationID string, in dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	if in.PatientID == "" || strings.TrimSpace(in.DiagnosisCode) == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	patient, err := uc.patientRepo.GetByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil || patient.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	for _, it := range in.Items {
		if it.ProductID == "" || !it.QuantityPrescribed.GreaterThan(decimal.Zero) || it.TreatmentDays < 0 {
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
	issued := now
	if in.IssuedAt != nil {
		if in.IssuedAt.After(now) {
			return nil, domain.ErrInvalidInput
		}
		issued = *in.IssuedAt
	}
	rx := &entity.Prescription{
		ID:                   uuid.New().String(),
		OrganizationID:       organizationID,
		PatientID:            in.PatientID,
		PrescriberName:       strings.TrimSpace(in.PrescriberName),
		PrescriberDocument:   strings.TrimSpace(in.PrescriberDocument),
		DiagnosisCode:        strings.ToUpper(strings.TrimSpace(in.DiagnosisCode)),
		RelatedDiagnosisCode: strings.ToUpper(strings.TrimSpace(in.RelatedDiagnosisCode)),
		AuthorizationNumber:  strings.TrimSpace(in.AuthorizationNumber),
		MIPRESID:             strings.TrimSpace(in.MIPRESID),
		IssuedAt:             issued,
		Status:               entity.PrescriptionPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	for _, it := range in.Items {
		rx.Items = append(rx.Items, entity.PrescriptionItem{
			ID:                 uuid.New().String(),
			PrescriptionID:     rx.ID,
			ProductID:          it.ProductID,
			QuantityPrescribed: it.QuantityPrescribed,
			QuantityDelivered:  decimal.Zero,
			TreatmentDays:      it.TreatmentDays,
		})
	}
	if err := uc.prescriptionRepo.Create(ctx, rx); err != nil {
		return nil, err
	}
	return toPrescriptionResponse(rx), nil
}

// GetByID obtiene una fórmula de la organización con sus líneas.
func (uc *PrescriptionUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.PrescriptionResponse, error) {
	rx, err := uc.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rx == nil || rx.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return toPrescriptionResponse(rx), nil
}

// ListByPatient fórmulas de un paciente, más recientes primero.
func (uc *PrescriptionUseCase) ListByPatient(ctx context.Context, organizationID, patientID string, limit, offset int) (*dto.PrescriptionListResponse, error) {
	patient, err := uc.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil || patient.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.prescriptionRepo.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PrescriptionResponse, 0, len(list))
	for _, rx := range list {
		items = append(items, *toPrescriptionResponse(rx))
	}
	return &dto.PrescriptionListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Cancel anula una fórmula sin entregas. Con entregas devuelve ErrConflict.
func (uc *PrescriptionUseCase) Cancel(ctx context.Context, organizationID, id string) (*dto.PrescriptionResponse, error) {
	var out *entity.Prescription
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		rx, err := repos.Prescriptions.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rx == nil || rx.OrganizationID != organizationID {
			return domain.ErrNotFound
		}
		if rx.HasDeliveries() {
			return domain.ErrConflict
		}
		rx.Status = entity.PrescriptionCancelled
		rx.UpdatedAt = time.Now()
		out = rx
		return repos.Prescriptions.UpdateProgress(ctx, rx)
	})
	if err != nil {
		return nil, err
	}
	return toPrescriptionResponse(out), nil
}

func toPrescriptionResponse(rx *entity.Prescription) *dto.PrescriptionResponse {
	items := make([]dto.PrescriptionItemResponse, 0, len(rx.Items))
	for _, it := range rx.Items {
		items = append(items, dto.PrescriptionItemResponse{
			ID:                 it.ID,
			ProductID:          it.ProductID,
			QuantityPrescribed: it.QuantityPrescribed,
			QuantityDelivered:  it.QuantityDelivered,
			QuantityPending:    it.Pending(),
			TreatmentDays:      it.TreatmentDays,
		})
	}
	return &dto.PrescriptionResponse{
		ID:                   rx.ID,
		PatientID:            rx.PatientID,
		PrescriberName:       rx.PrescriberName,
		PrescriberDocument:   rx.PrescriberDocument,
		DiagnosisCode:        rx.DiagnosisCode,
		RelatedDiagnosisCode: rx.RelatedDiagnosisCode,
		AuthorizationNumber:  rx.AuthorizationNumber,
		MIPRESID:             rx.MIPRESID,
		IssuedAt:             rx.IssuedAt,
		Status:               rx.Status,
		Items:                items,
		CreatedAt:            rx.CreatedAt,
	}
}
