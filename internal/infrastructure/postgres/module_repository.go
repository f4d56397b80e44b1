package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.OrganizationModuleRepository = (*ModuleRepo)(nil)

// ModuleRepo activación de módulos SaaS en organization_modules.
type ModuleRepo struct {
	pool *pgxpool.Pool
}

// NewModuleRepository construye el adaptador.
func NewModuleRepository(pool *pgxpool.Pool) *ModuleRepo {
	return &ModuleRepo{pool: pool}
}

// HasActiveModule informa si la organización tiene el módulo activo y sin vencer.
// Consulta directamente organization_modules para una respuesta O(1) vía índice.
func (r *ModuleRepo) HasActiveModule(ctx context.Context, organizationID, moduleName string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM organization_modules
			 WHERE organization_id = $1
			   AND module_name     = $2
			   AND is_active       = true
			   AND (expires_at IS NULL OR expires_at > now())
		)`
	var active bool
	if err := r.pool.QueryRow(ctx, query, organizationID, moduleName).Scan(&active); err != nil {
		return false, fmt.Errorf("check module %s: %w", moduleName, err)
	}
	return active, nil
}

func (r *ModuleRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.OrganizationModule, error) {
	const query = `
		SELECT id, organization_id, module_name, is_active, activated_at, expires_at
		FROM organization_modules WHERE organization_id = $1 ORDER BY module_name`
	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.OrganizationModule, 0)
	for rows.Next() {
		var m entity.OrganizationModule
		if err := rows.Scan(&m.ID, &m.OrganizationID, &m.ModuleName, &m.IsActive, &m.ActivatedAt, &m.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Upsert activa, desactiva o cambia el vencimiento; conserva el id original.
func (r *ModuleRepo) Upsert(ctx context.Context, m *entity.OrganizationModule) error {
	const query = `
		INSERT INTO organization_modules (id, organization_id, module_name, is_active, activated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (organization_id, module_name)
		DO UPDATE SET is_active = EXCLUDED.is_active, activated_at = EXCLUDED.activated_at, expires_at = EXCLUDED.expires_at`
	_, err := r.pool.Exec(ctx, query, m.ID, m.OrganizationID, m.ModuleName, m.IsActive, m.ActivatedAt, m.ExpiresAt)
	if err != nil {
		return fmt.Errorf("upsert module: %w", err)
	}
	return nil
}
