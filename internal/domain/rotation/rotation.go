// Package rotation calcula alertas de reposición a partir del consumo reciente de
// cada dispensario.
//
// Regla: rotación semanal = consumo de la ventana / semanas de la ventana. Si hubo
// consumo y el stock actual es menor o igual a la rotación semanal, se genera una
// alerta: "warning" si alguna bodega de abastecimiento tiene existencias del
// producto (traslado sugerido), "danger" si no (compra requerida).
package rotation

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// Ventana por defecto: 28 días, 4 semanas.
const (
	DefaultWindowDays    = 28
	DefaultWeeksInWindow = 4
)

// Consumption consumo y stock de un producto en un dispensario.
type Consumption struct {
	WarehouseID   string
	WarehouseName string
	ProductID     string
	ProductName   string
	Consumed      decimal.Decimal // cantidad entregada en la ventana
	CurrentStock  decimal.Decimal
}

// SupplyStock existencias agregadas de un producto en bodegas de abastecimiento.
type SupplyStock map[string]decimal.Decimal

// HasStock indica si alguna bodega tiene cantidad > 0 del producto.
func (s SupplyStock) HasStock(productID string) bool {
	q, ok := s[productID]
	return ok && q.GreaterThan(decimal.Zero)
}

// WeeklyRotation consumo de la ventana dividido por las semanas que la componen.
func WeeklyRotation(consumed decimal.Decimal, weeks int) decimal.Decimal {
	if weeks <= 0 {
		weeks = DefaultWeeksInWindow
	}
	return consumed.Div(decimal.NewFromInt(int64(weeks)))
}

// NeedsRestock stock <= rotación semanal, solo si hubo consumo.
func NeedsRestock(consumed, stock decimal.Decimal, weeks int) bool {
	if !consumed.GreaterThan(decimal.Zero) {
		return false
	}
	return stock.LessThanOrEqual(WeeklyRotation(consumed, weeks))
}

// Evaluate genera las alertas para las filas de consumo. El orden de salida es
// estable: primero "danger", luego por dispensario y producto.
func Evaluate(rows []Consumption, supply SupplyStock, weeks int) []entity.Alert {
	alerts := make([]entity.Alert, 0)
	for _, r := range rows {
		if !NeedsRestock(r.Consumed, r.CurrentStock, weeks) {
			continue
		}
		weekly := WeeklyRotation(r.Consumed, weeks).Round(2)
		current := r.CurrentStock
		a := entity.Alert{
			WarehouseID:    r.WarehouseID,
			ProductID:      r.ProductID,
			CurrentStock:   &current,
			WeeklyRotation: &weekly,
		}
		if supply.HasStock(r.ProductID) {
			a.Type = entity.AlertWarning
			a.Message = fmt.Sprintf("%s en %s: stock %s, rotación semanal %s. Hay existencias en bodega, se sugiere traslado.",
				r.ProductName, r.WarehouseName, r.CurrentStock.String(), weekly.String())
			a.Href = "/transfers/new?" + url.Values{"product_id": {r.ProductID}, "to": {r.WarehouseID}}.Encode()
		} else {
			a.Type = entity.AlertDanger
			a.Message = fmt.Sprintf("%s en %s: stock %s, rotación semanal %s. Sin existencias en bodega, se requiere compra.",
				r.ProductName, r.WarehouseName, r.CurrentStock.String(), weekly.String())
			a.Href = "/purchases/new?" + url.Values{"product_id": {r.ProductID}}.Encode()
		}
		alerts = append(alerts, a)
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.Type != b.Type {
			return a.Type == entity.AlertDanger
		}
		if a.WarehouseID != b.WarehouseID {
			return a.WarehouseID < b.WarehouseID
		}
		return a.ProductID < b.ProductID
	})
	return alerts
}

// PendingPrescriptionsAlert alerta informativa por fórmulas pendientes de entrega.
func PendingPrescriptionsAlert(pending int) (entity.Alert, bool) {
	if pending <= 0 {
		return entity.Alert{}, false
	}
	return entity.Alert{
		Type:    entity.AlertInfo,
		Message: fmt.Sprintf("Hay %d fórmulas pendientes o parciales por entregar.", pending),
		Href:    "/prescriptions?status=pending",
	}, true
}
