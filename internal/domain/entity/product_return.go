package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductReturn devolución de medicamentos por parte del paciente al dispensario.
type ProductReturn struct {
	ID             string
	OrganizationID string
	DeliveryID     string
	WarehouseID    string
	Reason         string
	Items          []ProductReturnItem
	CreatedBy      string
	CreatedAt      time.Time
}

// ProductReturnItem línea devuelta.
type ProductReturnItem struct {
	ID        string
	ReturnID  string
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}
