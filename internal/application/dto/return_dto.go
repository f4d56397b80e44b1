package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReturnRequest devolución de un paciente sobre una entrega.
type CreateReturnRequest struct {
	DeliveryID string              `json:"delivery_id" validate:"required,uuid"`
	Reason     string              `json:"reason" validate:"required"`
	Items      []ReturnItemRequest `json:"items" validate:"required,min=1"`
}

// ReturnItemRequest producto y cantidad devuelta.
type ReturnItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ReturnItemResponse línea devuelta con el costo de la entrega.
type ReturnItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ReturnResponse salida de una devolución.
type ReturnResponse struct {
	ID          string               `json:"id"`
	DeliveryID  string               `json:"delivery_id"`
	WarehouseID string               `json:"warehouse_id"`
	Reason      string               `json:"reason"`
	Items       []ReturnItemResponse `json:"items"`
	CreatedBy   string               `json:"created_by"`
	CreatedAt   time.Time            `json:"created_at"`
}
