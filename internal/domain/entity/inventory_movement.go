package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"
	MovementTypeOUT        = "OUT"
	MovementTypeADJUSTMENT = "ADJUSTMENT"
	MovementTypeTRANSFER   = "TRANSFER"
)

// Documento que originó el movimiento.
const (
	ReferenceManual          = "manual"
	ReferenceDelivery        = "delivery"
	ReferenceReturn          = "return"
	ReferencePurchaseReceipt = "purchase_receipt"
	ReferenceTransfer        = "transfer"
)

// InventoryMovement representa un movimiento de inventario.
type InventoryMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	WarehouseID   string
	Type          string
	Quantity      decimal.Decimal // positivo entrada, negativo salida
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	ReferenceType string
	ReferenceID   string
	Lot           string
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
