package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransferRequest traslado entre bodegas de la organización.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id" validate:"required,uuid"`
	ToWarehouseID   string                `json:"to_warehouse_id" validate:"required,uuid"`
	Notes           string                `json:"notes"`
	Items           []TransferItemRequest `json:"items" validate:"required,min=1"`
}

// TransferItemRequest producto y cantidad a trasladar.
type TransferItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID              string                `json:"id"`
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	Notes           string                `json:"notes,omitempty"`
	Items           []TransferItemRequest `json:"items"`
	CreatedBy       string                `json:"created_by"`
	CreatedAt       time.Time             `json:"created_at"`
}

// TransferListResponse lista paginada de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
