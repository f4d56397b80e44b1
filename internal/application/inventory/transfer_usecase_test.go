package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

func newTransferUC(s *memstore.Store) *inventory.TransferUseCase {
	return inventory.NewTransferUseCase(s, s.Transfers(), s.Products(), s.Warehouses())
}

func TestTransfer_MueveStockYRegistraDosMovimientos(t *testing.T) {
	s := memstore.New()
	bodega := s.SeedWarehouse(orgID, "Bodega", entity.WarehouseTypeBodega)
	disp := s.SeedWarehouse(orgID, "Dispensario", entity.WarehouseTypeDispensario)
	p := s.SeedProduct(orgID, "1", "Enalapril 20 mg", d("15"))
	s.SetStock(p.ID, bodega.ID, d("100"))

	out, err := newTransferUC(s).Create(context.Background(), orgID, userID, dto.CreateTransferRequest{
		FromWarehouseID: bodega.ID, ToWarehouseID: disp.ID,
		Items: []dto.TransferItemRequest{{ProductID: p.ID, Quantity: d("30")}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)

	assert.True(t, d("70").Equal(s.StockOf(p.ID, bodega.ID)))
	assert.True(t, d("30").Equal(s.StockOf(p.ID, disp.ID)))

	movs := s.AllMovements()
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeTRANSFER, m.Type)
		assert.Equal(t, entity.ReferenceTransfer, m.ReferenceType)
		assert.Equal(t, out.ID, m.ReferenceID)
	}
	assert.True(t, movs[0].Quantity.Add(movs[1].Quantity).IsZero())
}

func TestTransfer_RollbackSiUnaLineaFalla(t *testing.T) {
	s := memstore.New()
	bodega := s.SeedWarehouse(orgID, "Bodega", entity.WarehouseTypeBodega)
	disp := s.SeedWarehouse(orgID, "Dispensario", entity.WarehouseTypeDispensario)
	p1 := s.SeedProduct(orgID, "1", "A", d("1"))
	p2 := s.SeedProduct(orgID, "2", "B", d("1"))
	s.SetStock(p1.ID, bodega.ID, d("10"))
	s.SetStock(p2.ID, bodega.ID, d("1"))

	_, err := newTransferUC(s).Create(context.Background(), orgID, userID, dto.CreateTransferRequest{
		FromWarehouseID: bodega.ID, ToWarehouseID: disp.ID,
		Items: []dto.TransferItemRequest{
			{ProductID: p1.ID, Quantity: d("5")},
			{ProductID: p2.ID, Quantity: d("5")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, d("10").Equal(s.StockOf(p1.ID, bodega.ID)), "la primera línea debe revertirse")
	assert.True(t, s.StockOf(p1.ID, disp.ID).IsZero())
	assert.Empty(t, s.AllMovements())
}

func TestTransfer_MismaBodega(t *testing.T) {
	s := memstore.New()
	bodega := s.SeedWarehouse(orgID, "Bodega", entity.WarehouseTypeBodega)
	p := s.SeedProduct(orgID, "1", "A", d("1"))

	_, err := newTransferUC(s).Create(context.Background(), orgID, userID, dto.CreateTransferRequest{
		FromWarehouseID: bodega.ID, ToWarehouseID: bodega.ID,
		Items: []dto.TransferItemRequest{{ProductID: p.ID, Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_BodegaInactiva(t *testing.T) {
	s := memstore.New()
	bodega := s.SeedWarehouse(orgID, "Bodega", entity.WarehouseTypeBodega)
	disp := s.SeedWarehouse(orgID, "Dispensario", entity.WarehouseTypeDispensario)
	disp.IsActive = false
	require.NoError(t, s.Warehouses().Update(context.Background(), disp))
	p := s.SeedProduct(orgID, "1", "A", d("1"))

	_, err := newTransferUC(s).Create(context.Background(), orgID, userID, dto.CreateTransferRequest{
		FromWarehouseID: bodega.ID, ToWarehouseID: disp.ID,
		Items: []dto.TransferItemRequest{{ProductID: p.ID, Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInactiveWarehouse)
}
