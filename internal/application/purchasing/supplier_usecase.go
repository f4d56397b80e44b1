// Package purchasing contiene los casos de uso de compras: proveedores,
// cotizaciones, recepciones de factura y la calificación de proveedores.
package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/pkg/colombia"
)

// SupplierUseCase reglas de negocio para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor activo con el NIT normalizado.
func (uc *SupplierUseCase) Create(ctx context.Context, organizationID string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" || in.PaymentTermsDays < 0 {
		return nil, domain.ErrInvalidInput
	}
	nit, err := colombia.FormatNIT(in.NIT)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:               uuid.New().String(),
		OrganizationID:   organizationID,
		Name:             strings.TrimSpace(in.Name),
		NIT:              nit,
		ContactName:      strings.TrimSpace(in.ContactName),
		Phone:            strings.TrimSpace(in.Phone),
		Email:            strings.ToLower(strings.TrimSpace(in.Email)),
		PaymentTermsDays: in.PaymentTermsDays,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor de la organización.
func (uc *SupplierUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update modifica los campos enviados. El NIT es inmutable.
func (uc *SupplierUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.ContactName != nil {
		s.ContactName = strings.TrimSpace(*in.ContactName)
	}
	if in.Phone != nil {
		s.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		s.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.PaymentTermsDays != nil {
		if *in.PaymentTermsDays < 0 {
			return nil, domain.ErrInvalidInput
		}
		s.PaymentTermsDays = *in.PaymentTermsDays
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List proveedores ordenados por nombre.
func (uc *SupplierUseCase) List(ctx context.Context, organizationID string, onlyActive bool, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.List(ctx, organizationID, onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *SupplierUseCase) get(ctx context.Context, organizationID, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:               s.ID,
		Name:             s.Name,
		NIT:              s.NIT,
		ContactName:      s.ContactName,
		Phone:            s.Phone,
		Email:            s.Email,
		PaymentTermsDays: s.PaymentTermsDays,
		IsActive:         s.IsActive,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
