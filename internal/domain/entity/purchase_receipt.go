package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseReceipt recepción técnica de una compra a proveedor.
type PurchaseReceipt struct {
	ID             string
	OrganizationID string
	SupplierID     string
	WarehouseID    string
	InvoiceNumber  string
	ReceivedAt     time.Time
	Total          decimal.Decimal
	Items          []PurchaseReceiptItem
	CreatedBy      string
	CreatedAt      time.Time
}

// PurchaseReceiptItem línea recibida con lote y vencimiento.
type PurchaseReceiptItem struct {
	ID             string
	ReceiptID      string
	ProductID      string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	Lot            string
	ExpirationDate *time.Time
}

// Subtotal cantidad por costo unitario.
func (i PurchaseReceiptItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitCost)
}
