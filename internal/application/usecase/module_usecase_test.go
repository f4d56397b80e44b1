package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

func TestModuleService_ActivarYConsultar(t *testing.T) {
	svc := usecase.NewModuleService(memstore.New().Modules())
	ctx := context.Background()

	ok, err := svc.HasActiveModule(ctx, "org-1", entity.ModuleReports)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Activate(ctx, "org-1", dto.ActivateModuleRequest{ModuleName: entity.ModuleReports, IsActive: true})
	require.NoError(t, err)
	ok, err = svc.HasActiveModule(ctx, "org-1", entity.ModuleReports)
	require.NoError(t, err)
	assert.True(t, ok)

	past := time.Now().Add(-time.Hour)
	_, err = svc.Activate(ctx, "org-1", dto.ActivateModuleRequest{ModuleName: entity.ModuleReports, IsActive: true, ExpiresAt: &past})
	require.NoError(t, err)
	ok, err = svc.HasActiveModule(ctx, "org-1", entity.ModuleReports)
	require.NoError(t, err)
	assert.False(t, ok, "módulo vencido")

	list, err := svc.List(ctx, "org-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestModuleService_Errores(t *testing.T) {
	svc := usecase.NewModuleService(memstore.New().Modules())
	_, err := svc.Activate(context.Background(), "org-1", dto.ActivateModuleRequest{ModuleName: "billing"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.HasActiveModule(context.Background(), "", entity.ModuleReports)
	assert.Error(t, err)
}
