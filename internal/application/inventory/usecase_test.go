package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

const (
	orgID   = "org-1"
	otherID = "org-2"
	userID  = "user-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newMovementUC(s *memstore.Store) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(s, s.Products(), s.Warehouses())
}

func TestRegisterMovement_EntradaRecalculaCostoPromedio(t *testing.T) {
	s := memstore.New()
	wh := s.SeedWarehouse(orgID, "Bodega central", entity.WarehouseTypeBodega)
	p := s.SeedProduct(orgID, "20012345-01", "Acetaminofén 500 mg", d("100"))
	s.SetStock(p.ID, wh.ID, d("10"))

	cost := d("200")
	err := newMovementUC(s).RegisterMovementFromRequest(context.Background(), orgID, userID, dto.RegisterMovementRequest{
		ProductID: p.ID, WarehouseID: wh.ID, Type: entity.MovementTypeIN, Quantity: d("10"), UnitCost: &cost,
	})
	require.NoError(t, err)

	assert.True(t, d("20").Equal(s.StockOf(p.ID, wh.ID)))
	updated, _ := s.Products().GetByID(context.Background(), p.ID)
	assert.True(t, d("150").Equal(updated.Cost), "costo promedio ponderado: got %s", updated.Cost)

	movs := s.AllMovements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.Equal(t, entity.ReferenceManual, movs[0].ReferenceType)
	assert.True(t, d("2000").Equal(movs[0].TotalCost))
}

func TestRegisterMovement_SalidaSinStockSuficiente(t *testing.T) {
	s := memstore.New()
	wh := s.SeedWarehouse(orgID, "Dispensario norte", entity.WarehouseTypeDispensario)
	p := s.SeedProduct(orgID, "1", "Losartán 50 mg", d("80"))
	s.SetStock(p.ID, wh.ID, d("3"))

	err := newMovementUC(s).RegisterMovement(context.Background(), inventory.MovementInputDTO{
		OrganizationID: orgID, UserID: userID, ProductID: p.ID, WarehouseID: wh.ID,
		Type: entity.MovementTypeOUT, Quantity: d("5"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, d("3").Equal(s.StockOf(p.ID, wh.ID)))
	assert.Empty(t, s.AllMovements())
}

func TestRegisterMovement_AjusteNegativoDescuenta(t *testing.T) {
	s := memstore.New()
	wh := s.SeedWarehouse(orgID, "Dispensario", entity.WarehouseTypeDispensario)
	p := s.SeedProduct(orgID, "1", "Metformina 850 mg", d("50"))
	s.SetStock(p.ID, wh.ID, d("10"))

	err := newMovementUC(s).RegisterMovement(context.Background(), inventory.MovementInputDTO{
		OrganizationID: orgID, UserID: userID, ProductID: p.ID, WarehouseID: wh.ID,
		Type: entity.MovementTypeADJUSTMENT, Quantity: d("-4"),
	})
	require.NoError(t, err)
	assert.True(t, d("6").Equal(s.StockOf(p.ID, wh.ID)))
	movs := s.AllMovements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, movs[0].Type)
	assert.True(t, d("-4").Equal(movs[0].Quantity))
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	s := memstore.New()
	wh := s.SeedWarehouse(orgID, "Dispensario", entity.WarehouseTypeDispensario)
	foreign := s.SeedProduct(otherID, "9", "Otro tenant", d("1"))
	p := s.SeedProduct(orgID, "1", "Ibuprofeno", d("10"))
	uc := newMovementUC(s)
	ctx := context.Background()

	tests := []struct {
		name string
		in   inventory.MovementInputDTO
		want error
	}{
		{"tipo desconocido", inventory.MovementInputDTO{OrganizationID: orgID, ProductID: p.ID, WarehouseID: wh.ID, Type: "X", Quantity: d("1")}, domain.ErrInvalidInput},
		{"entrada sin costo", inventory.MovementInputDTO{OrganizationID: orgID, ProductID: p.ID, WarehouseID: wh.ID, Type: entity.MovementTypeIN, Quantity: d("1")}, domain.ErrInvalidInput},
		{"cantidad cero", inventory.MovementInputDTO{OrganizationID: orgID, ProductID: p.ID, WarehouseID: wh.ID, Type: entity.MovementTypeOUT, Quantity: d("0")}, domain.ErrInvalidInput},
		{"producto de otra organización", inventory.MovementInputDTO{OrganizationID: orgID, ProductID: foreign.ID, WarehouseID: wh.ID, Type: entity.MovementTypeOUT, Quantity: d("1")}, domain.ErrNotFound},
		{"bodega inexistente", inventory.MovementInputDTO{OrganizationID: orgID, ProductID: p.ID, WarehouseID: "nope", Type: entity.MovementTypeOUT, Quantity: d("1")}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.RegisterMovement(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListStock_BodegaDeOtraOrganizacion(t *testing.T) {
	s := memstore.New()
	wh := s.SeedWarehouse(otherID, "Ajena", entity.WarehouseTypeBodega)
	uc := inventory.NewStockUseCase(s.Stock(), s.Movements(), s.Warehouses())

	_, err := uc.ListStock(context.Background(), orgID, wh.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListStock_IncluyeNombreDelProducto(t *testing.T) {
	s := memstore.New()
	wh := s.SeedWarehouse(orgID, "Dispensario", entity.WarehouseTypeDispensario)
	p := s.SeedProduct(orgID, "1", "Amoxicilina 500 mg", d("30"))
	s.SetStock(p.ID, wh.ID, d("12"))
	uc := inventory.NewStockUseCase(s.Stock(), s.Movements(), s.Warehouses())

	out, err := uc.ListStock(context.Background(), orgID, wh.ID)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Amoxicilina 500 mg", out.Items[0].ProductName)
	assert.True(t, d("12").Equal(out.Items[0].Quantity))
}
