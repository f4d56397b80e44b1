package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseReceiptRequest recepción técnica de una factura de proveedor.
type CreatePurchaseReceiptRequest struct {
	SupplierID    string                       `json:"supplier_id" validate:"required,uuid"`
	WarehouseID   string                       `json:"warehouse_id" validate:"required,uuid"`
	InvoiceNumber string                       `json:"invoice_number" validate:"required"`
	ReceivedAt    *time.Time                   `json:"received_at"`
	Items         []PurchaseReceiptItemRequest `json:"items" validate:"required,min=1"`
}

// PurchaseReceiptItemRequest línea recibida; expiration_date en formato YYYY-MM-DD.
type PurchaseReceiptItemRequest struct {
	ProductID      string          `json:"product_id" validate:"required,uuid"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Lot            string          `json:"lot"`
	ExpirationDate string          `json:"expiration_date"`
}

// PurchaseReceiptItemResponse línea recibida con subtotal.
type PurchaseReceiptItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Lot            string          `json:"lot,omitempty"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
}

// PurchaseReceiptResponse salida de una recepción.
type PurchaseReceiptResponse struct {
	ID            string                        `json:"id"`
	SupplierID    string                        `json:"supplier_id"`
	WarehouseID   string                        `json:"warehouse_id"`
	InvoiceNumber string                        `json:"invoice_number"`
	ReceivedAt    time.Time                     `json:"received_at"`
	Total         decimal.Decimal               `json:"total"`
	Items         []PurchaseReceiptItemResponse `json:"items"`
	CreatedBy     string                        `json:"created_by"`
}

// PurchaseReceiptListResponse lista paginada de recepciones.
type PurchaseReceiptListResponse struct {
	Items []PurchaseReceiptResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
