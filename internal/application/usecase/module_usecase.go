package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// ModuleService verifica qué módulos SaaS tiene activos una organización.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
type ModuleService struct {
	repo repository.OrganizationModuleRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(repo repository.OrganizationModuleRepository) *ModuleService {
	return &ModuleService{repo: repo}
}

// HasActiveModule informa si la organización tiene el módulo activo y sin vencer.
// Devuelve false (sin error) si no lo tiene contratado.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *ModuleService) HasActiveModule(ctx context.Context, organizationID, moduleName string) (bool, error) {
	if organizationID == "" || moduleName == "" {
		return false, fmt.Errorf("module: organizationID y moduleName son obligatorios")
	}
	return s.repo.HasActiveModule(ctx, organizationID, moduleName)
}

// Activate activa o desactiva un módulo de la organización.
func (s *ModuleService) Activate(ctx context.Context, organizationID string, in dto.ActivateModuleRequest) (*dto.ModuleResponse, error) {
	switch in.ModuleName {
	case entity.ModuleDispensing, entity.ModulePurchasing, entity.ModuleReports:
	default:
		return nil, domain.ErrInvalidInput
	}
	m := &entity.OrganizationModule{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		ModuleName:     in.ModuleName,
		IsActive:       in.IsActive,
		ActivatedAt:    time.Now(),
		ExpiresAt:      in.ExpiresAt,
	}
	if err := s.repo.Upsert(ctx, m); err != nil {
		return nil, err
	}
	return toModuleResponse(m), nil
}

// List módulos registrados de la organización.
func (s *ModuleService) List(ctx context.Context, organizationID string) ([]dto.ModuleResponse, error) {
	list, err := s.repo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ModuleResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toModuleResponse(m))
	}
	return out, nil
}

func toModuleResponse(m *entity.OrganizationModule) *dto.ModuleResponse {
	return &dto.ModuleResponse{
		ModuleName:  m.ModuleName,
		IsActive:    m.IsActive,
		ActivatedAt: m.ActivatedAt,
		ExpiresAt:   m.ExpiresAt,
	}
}
