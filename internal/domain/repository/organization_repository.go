package repository

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
// La implementación vive en infrastructure.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetByNIT(ctx context.Context, nit string) (*entity.Organization, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Organization, error)
}

// OrganizationModuleRepository activación de módulos SaaS por organización.
type OrganizationModuleRepository interface {
	// HasActiveModule true si el módulo está activo y no ha vencido.
	HasActiveModule(ctx context.Context, organizationID, moduleName string) (bool, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.OrganizationModule, error)
	Upsert(ctx context.Context, m *entity.OrganizationModule) error
}
