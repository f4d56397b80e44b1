package dispensing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

func TestReturnCreate_ReingresaAlCostoDeLaEntrega(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rx := f.prescribe(t, "10")
	del, err := f.deliver(rx.ID, "10")
	require.NoError(t, err)

	ret, err := f.returns.Create(ctx, orgID, userID, dto.CreateReturnRequest{
		DeliveryID: del.ID, Reason: "Cambio de tratamiento",
		Items: []dto.ReturnItemRequest{{ProductID: f.product.ID, Quantity: d("4")}},
	})
	require.NoError(t, err)
	assert.Equal(t, f.disp.ID, ret.WarehouseID)
	assert.True(t, d("100").Equal(ret.Items[0].UnitCost))
	assert.True(t, d("44").Equal(f.s.StockOf(f.product.ID, f.disp.ID)))

	movs, err := f.s.Movements().ListByReference(ctx, entity.ReferenceReturn, ret.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)

	got, err := f.rxUC.GetByID(ctx, orgID, rx.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PrescriptionCompleted, got.Status, "la devolución no reabre la fórmula")

	_, err = f.returns.Create(ctx, orgID, userID, dto.CreateReturnRequest{
		DeliveryID: del.ID, Reason: "Sobrante",
		Items: []dto.ReturnItemRequest{{ProductID: f.product.ID, Quantity: d("7")}},
	})
	assert.ErrorIs(t, err, domain.ErrExceedsDelivered)
	assert.True(t, d("44").Equal(f.s.StockOf(f.product.ID, f.disp.ID)))

	_, err = f.returns.Create(ctx, orgID, userID, dto.CreateReturnRequest{
		DeliveryID: del.ID, Reason: "Sobrante",
		Items: []dto.ReturnItemRequest{{ProductID: f.product.ID, Quantity: d("6")}},
	})
	require.NoError(t, err)

	list, err := f.returns.ListByDelivery(ctx, orgID, del.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestReturnCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	del, err := f.deliver("", "3")
	require.NoError(t, err)
	other := f.s.SeedProduct(orgID, "2", "Otro", d("1"))

	_, err = f.returns.Create(ctx, orgID, userID, dto.CreateReturnRequest{
		DeliveryID: del.ID, Reason: "x",
		Items: []dto.ReturnItemRequest{{ProductID: other.ID, Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.returns.Create(ctx, orgID, userID, dto.CreateReturnRequest{
		DeliveryID: del.ID, Reason: "",
		Items: []dto.ReturnItemRequest{{ProductID: f.product.ID, Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.returns.Create(ctx, "org-2", userID, dto.CreateReturnRequest{
		DeliveryID: del.ID, Reason: "x",
		Items: []dto.ReturnItemRequest{{ProductID: f.product.ID, Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
