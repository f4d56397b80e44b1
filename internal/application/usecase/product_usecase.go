package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de medicamentos. Cost y Stock se manejan vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un medicamento. El CUM es único por organización y Cost inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, organizationID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.CUM = strings.TrimSpace(in.CUM)
	if in.CUM == "" || strings.TrimSpace(in.Name) == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.MedicationType == "" {
		in.MedicationType = entity.MedicationTypePOS
	}
	if !validMedicationType(in.MedicationType) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByOrganizationAndCUM(ctx, organizationID, in.CUM)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:                 uuid.New().String(),
		OrganizationID:     organizationID,
		CUM:                in.CUM,
		Name:               strings.TrimSpace(in.Name),
		ActiveIngredient:   in.ActiveIngredient,
		Concentration:      in.Concentration,
		PharmaceuticalForm: in.PharmaceuticalForm,
		UnitMeasure:        in.UnitMeasure,
		MedicationType:     in.MedicationType,
		Price:              in.Price,
		Cost:               decimal.Zero,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un medicamento de la organización.
func (uc *ProductUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un medicamento. No permite modificar CUM ni Cost.
func (uc *ProductUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.ActiveIngredient != nil {
		product.ActiveIngredient = *in.ActiveIngredient
	}
	if in.Concentration != nil {
		product.Concentration = *in.Concentration
	}
	if in.PharmaceuticalForm != nil {
		product.PharmaceuticalForm = *in.PharmaceuticalForm
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.MedicationType != nil {
		if !validMedicationType(*in.MedicationType) {
			return nil, domain.ErrInvalidInput
		}
		product.MedicationType = *in.MedicationType
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista medicamentos por organización; search filtra por nombre, principio activo o CUM.
func (uc *ProductUseCase) List(ctx context.Context, organizationID, search string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, organizationID, strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func validMedicationType(t string) bool {
	return t == entity.MedicationTypePOS || t == entity.MedicationTypeNoPOS
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                 p.ID,
		OrganizationID:     p.OrganizationID,
		CUM:                p.CUM,
		Name:               p.Name,
		ActiveIngredient:   p.ActiveIngredient,
		Concentration:      p.Concentration,
		PharmaceuticalForm: p.PharmaceuticalForm,
		UnitMeasure:        p.UnitMeasure,
		MedicationType:     p.MedicationType,
		Price:              p.Price,
		Cost:               p.Cost,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
