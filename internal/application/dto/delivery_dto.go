package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDeliveryRequest dispensación desde un dispensario.
type CreateDeliveryRequest struct {
	WarehouseID    string                      `json:"warehouse_id" validate:"required,uuid"`
	PatientID      string                      `json:"patient_id" validate:"required,uuid"`
	PrescriptionID string                      `json:"prescription_id,omitempty"`
	Items          []CreateDeliveryItemRequest `json:"items" validate:"required,min=1"`
}

// CreateDeliveryItemRequest línea entregada; prescription_item_id opcional
// (si falta, se asocia a la primera línea de la fórmula con el mismo producto).
type CreateDeliveryItemRequest struct {
	ProductID          string          `json:"product_id" validate:"required,uuid"`
	Quantity           decimal.Decimal `json:"quantity"`
	PrescriptionItemID string          `json:"prescription_item_id,omitempty"`
	Lot                string          `json:"lot,omitempty"`
}

// DeliveryItemResponse línea de entrega con costo.
type DeliveryItemResponse struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"product_id"`
	PrescriptionItemID string          `json:"prescription_item_id,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	Lot                string          `json:"lot,omitempty"`
}

// DeliveryResponse salida de una entrega.
type DeliveryResponse struct {
	ID                 string                 `json:"id"`
	WarehouseID        string                 `json:"warehouse_id"`
	PatientID          string                 `json:"patient_id"`
	PrescriptionID     string                 `json:"prescription_id,omitempty"`
	PrescriptionStatus string                 `json:"prescription_status,omitempty"`
	DeliveredAt        time.Time              `json:"delivered_at"`
	DeliveredBy        string                 `json:"delivered_by"`
	Items              []DeliveryItemResponse `json:"items"`
}

// DeliveryListResponse lista paginada de entregas.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
