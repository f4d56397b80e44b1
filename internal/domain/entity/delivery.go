package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Delivery entrega (dispensación) de medicamentos a un paciente desde un dispensario.
type Delivery struct {
	ID             string
	OrganizationID string
	WarehouseID    string
	PatientID      string
	PrescriptionID string // vacío si es entrega sin fórmula vinculada
	DeliveredAt    time.Time
	DeliveredBy    string
	Items          []DeliveryItem
	CreatedAt      time.Time
}

// DeliveryItem línea entregada, con el costo promedio vigente al momento de la entrega.
type DeliveryItem struct {
	ID                 string
	DeliveryID         string
	ProductID          string
	PrescriptionItemID string
	Quantity           decimal.Decimal
	UnitCost           decimal.Decimal
	Lot                string
}
