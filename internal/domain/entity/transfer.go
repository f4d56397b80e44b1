package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer traslado de producto entre bodegas de la misma organización.
type Transfer struct {
	ID              string
	OrganizationID  string
	FromWarehouseID string
	ToWarehouseID   string
	Notes           string
	Items           []TransferItem
	CreatedBy       string
	CreatedAt       time.Time
}

// TransferItem línea trasladada.
type TransferItem struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   decimal.Decimal
}
