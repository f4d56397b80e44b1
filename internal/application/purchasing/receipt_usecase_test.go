package purchasing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/purchasing"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

type receiptFixture struct {
	s        *memstore.Store
	bodega   *entity.Warehouse
	product  *entity.Product
	supplier *entity.Supplier
	uc       *purchasing.ReceiptUseCase
}

func newReceiptFixture() *receiptFixture {
	s := memstore.New()
	f := &receiptFixture{
		s:        s,
		bodega:   s.SeedWarehouse(orgID, "Bodega principal", entity.WarehouseTypeBodega),
		product:  s.SeedProduct(orgID, "19943212-01", "Losartán 50 mg", d("100")),
		supplier: s.SeedSupplier(orgID, "Droguería Andina"),
	}
	s.SetStock(f.product.ID, f.bodega.ID, d("10"))
	f.uc = purchasing.NewReceiptUseCase(s, s.Receipts(), s.Suppliers(), s.Warehouses(), s.Products())
	return f
}

func (f *receiptFixture) request(invoice, qty, cost string) dto.CreatePurchaseReceiptRequest {
	return dto.CreatePurchaseReceiptRequest{
		SupplierID: f.supplier.ID, WarehouseID: f.bodega.ID, InvoiceNumber: invoice,
		Items: []dto.PurchaseReceiptItemRequest{{
			ProductID: f.product.ID, Quantity: d(qty), UnitCost: d(cost), Lot: "L-2026-01", ExpirationDate: "2028-06-30",
		}},
	}
}

func TestReceiptCreate_IngresaConCostoPromedio(t *testing.T) {
	f := newReceiptFixture()
	ctx := context.Background()

	out, err := f.uc.Create(ctx, orgID, userID, f.request("FE-1001", "10", "200"))
	require.NoError(t, err)
	assert.True(t, d("2000").Equal(out.Total))
	require.Len(t, out.Items, 1)
	require.NotNil(t, out.Items[0].ExpirationDate)
	assert.Equal(t, 2028, out.Items[0].ExpirationDate.Year())

	assert.True(t, d("20").Equal(f.s.StockOf(f.product.ID, f.bodega.ID)))
	p, err := f.s.Products().GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.True(t, d("150").Equal(p.Cost), "costo promedio: %s", p.Cost)

	movs, err := f.s.Movements().ListByReference(ctx, entity.ReferencePurchaseReceipt, out.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.Equal(t, "L-2026-01", movs[0].Lot)

	got, err := f.uc.GetByID(ctx, orgID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "FE-1001", got.InvoiceNumber)
	_, err = f.uc.GetByID(ctx, "org-2", out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiptCreate_FacturaDuplicadaRevierteInventario(t *testing.T) {
	f := newReceiptFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, orgID, userID, f.request("FE-1001", "10", "200"))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, orgID, userID, f.request("FE-1001", "5", "300"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.True(t, d("20").Equal(f.s.StockOf(f.product.ID, f.bodega.ID)))
	p, err := f.s.Products().GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.True(t, d("150").Equal(p.Cost))
	assert.Len(t, f.s.AllMovements(), 1)
}

func TestReceiptCreate_Validaciones(t *testing.T) {
	f := newReceiptFixture()
	ctx := context.Background()

	req := f.request("FE-1", "1", "10")
	req.Items[0].ExpirationDate = "30/06/2028"
	_, err := f.uc.Create(ctx, orgID, userID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = f.request("FE-1", "0", "10")
	_, err = f.uc.Create(ctx, orgID, userID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = f.request("", "1", "10")
	_, err = f.uc.Create(ctx, orgID, userID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.supplier.IsActive = false
	require.NoError(t, f.s.Suppliers().Update(ctx, f.supplier))
	_, err = f.uc.Create(ctx, orgID, userID, f.request("FE-2", "1", "10"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Create(ctx, "org-2", userID, f.request("FE-3", "1", "10"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.s.AllMovements())
}
