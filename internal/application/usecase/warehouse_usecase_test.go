package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

func TestWarehouseCreate_ValidaTipo(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(memstore.New().Warehouses())
	ctx := context.Background()

	_, err := uc.Create(ctx, "org-1", dto.CreateWarehouseRequest{Name: "Farmacia", Type: "farmacia"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Create(ctx, "org-1", dto.CreateWarehouseRequest{Name: "Dispensario Norte", Type: entity.WarehouseTypeDispensario})
	require.NoError(t, err)
	assert.True(t, out.IsActive)
	assert.Equal(t, entity.WarehouseTypeDispensario, out.Type)
}

func TestWarehouseUpdate_DesactivaYAislaTenant(t *testing.T) {
	s := memstore.New()
	uc := usecase.NewWarehouseUseCase(s.Warehouses())
	ctx := context.Background()
	wh := s.SeedWarehouse("org-1", "Bodega", entity.WarehouseTypeBodega)

	inactive := false
	out, err := uc.Update(ctx, "org-1", wh.ID, dto.UpdateWarehouseRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, out.IsActive)
	assert.Equal(t, entity.WarehouseTypeBodega, out.Type)

	_, err = uc.Update(ctx, "org-2", wh.ID, dto.UpdateWarehouseRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseList_FiltraPorTipo(t *testing.T) {
	s := memstore.New()
	s.SeedWarehouse("org-1", "B", entity.WarehouseTypeBodega)
	s.SeedWarehouse("org-1", "D", entity.WarehouseTypeDispensario)
	s.SeedWarehouse("org-2", "D2", entity.WarehouseTypeDispensario)
	uc := usecase.NewWarehouseUseCase(s.Warehouses())

	out, err := uc.List(context.Background(), "org-1", entity.WarehouseTypeDispensario, false, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "D", out.Items[0].Name)

	_, err = uc.List(context.Background(), "org-1", "otro", false, 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
