package rotation_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/rotation"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func row(wh, prod string, consumed, stock int64) rotation.Consumption {
	return rotation.Consumption{
		WarehouseID: wh, WarehouseName: "Dispensario " + wh,
		ProductID: prod, ProductName: "Producto " + prod,
		Consumed: d(consumed), CurrentStock: d(stock),
	}
}

func TestNeedsRestock_Limites(t *testing.T) {
	cases := []struct {
		name            string
		consumed, stock int64
		want            bool
	}{
		{"sin consumo nunca alerta", 0, 0, false},
		{"stock igual a rotación", 40, 10, true},
		{"stock bajo rotación", 40, 3, true},
		{"stock sobre rotación", 40, 11, false},
		{"rotación fraccionaria", 10, 2, true}, // 2.5 semanal
		{"rotación fraccionaria sobre", 10, 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rotation.NeedsRestock(d(tc.consumed), d(tc.stock), rotation.DefaultWeeksInWindow))
		})
	}
}

func TestWeeklyRotation_SemanasInvalidasUsaDefecto(t *testing.T) {
	assert.True(t, rotation.WeeklyRotation(d(28), 0).Equal(d(7)))
	assert.True(t, rotation.WeeklyRotation(d(28), 4).Equal(d(7)))
}

func TestEvaluate_WarningSiHayStockEnBodega(t *testing.T) {
	supply := rotation.SupplyStock{"p1": d(100)}
	alerts := rotation.Evaluate([]rotation.Consumption{row("w1", "p1", 40, 5)}, supply, 4)

	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, entity.AlertWarning, a.Type)
	assert.Equal(t, "w1", a.WarehouseID)
	assert.Equal(t, "p1", a.ProductID)
	require.NotNil(t, a.WeeklyRotation)
	assert.True(t, a.WeeklyRotation.Equal(d(10)))
	require.NotNil(t, a.CurrentStock)
	assert.True(t, a.CurrentStock.Equal(d(5)))
	assert.Contains(t, a.Href, "/transfers/new?")
	assert.Contains(t, a.Href, "to=w1")
	assert.Contains(t, a.Message, "traslado")
}

func TestEvaluate_DangerSinStockEnBodega(t *testing.T) {
	cases := map[string]rotation.SupplyStock{
		"producto ausente":  {},
		"cantidad en cero":  {"p1": decimal.Zero},
		"cantidad negativa": {"p1": d(-2)},
	}
	for name, supply := range cases {
		t.Run(name, func(t *testing.T) {
			alerts := rotation.Evaluate([]rotation.Consumption{row("w1", "p1", 8, 2)}, supply, 4)
			require.Len(t, alerts, 1)
			assert.Equal(t, entity.AlertDanger, alerts[0].Type)
			assert.Equal(t, "/purchases/new?product_id=p1", alerts[0].Href)
		})
	}
}

func TestEvaluate_SinAlertas(t *testing.T) {
	alerts := rotation.Evaluate([]rotation.Consumption{
		row("w1", "p1", 0, 0),
		row("w1", "p2", 40, 50),
	}, rotation.SupplyStock{}, 4)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestEvaluate_OrdenDangerPrimero(t *testing.T) {
	supply := rotation.SupplyStock{"p2": d(1)}
	alerts := rotation.Evaluate([]rotation.Consumption{
		row("w2", "p2", 40, 1),
		row("w1", "p2", 40, 1),
		row("w1", "p1", 40, 1),
	}, supply, 4)

	require.Len(t, alerts, 3)
	assert.Equal(t, entity.AlertDanger, alerts[0].Type)
	assert.Equal(t, "p1", alerts[0].ProductID)
	assert.Equal(t, "w1", alerts[1].WarehouseID)
	assert.Equal(t, "w2", alerts[2].WarehouseID)
}

func TestPendingPrescriptionsAlert(t *testing.T) {
	_, ok := rotation.PendingPrescriptionsAlert(0)
	assert.False(t, ok)

	a, ok := rotation.PendingPrescriptionsAlert(3)
	require.True(t, ok)
	assert.Equal(t, entity.AlertInfo, a.Type)
	assert.Contains(t, a.Message, "3")

	raw, err := json.Marshal(a)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "current_stock")
	assert.NotContains(t, string(raw), "weekly_rotation")
}

func TestEvaluate_SerializaCantidades(t *testing.T) {
	alerts := rotation.Evaluate([]rotation.Consumption{row("w1", "p1", 40, 5)}, rotation.SupplyStock{}, 4)
	require.Len(t, alerts, 1)

	raw, err := json.Marshal(alerts[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"current_stock":"5"`)
	assert.Contains(t, string(raw), `"weekly_rotation":"10"`)
}
