package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierRequest entrada para crear un proveedor.
type SupplierRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=200"`
	NIT              string `json:"nit" validate:"required"`
	ContactName      string `json:"contact_name"`
	Phone            string `json:"phone"`
	Email            string `json:"email" validate:"omitempty,email"`
	PaymentTermsDays int    `json:"payment_terms_days" validate:"min=0"`
}

// UpdateSupplierRequest campos opcionales; el NIT no se modifica.
type UpdateSupplierRequest struct {
	Name             *string `json:"name"`
	ContactName      *string `json:"contact_name"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	PaymentTermsDays *int    `json:"payment_terms_days"`
	IsActive         *bool   `json:"is_active"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	NIT              string    `json:"nit"`
	ContactName      string    `json:"contact_name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	PaymentTermsDays int       `json:"payment_terms_days"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateQuoteRequest cotización de un proveedor; valid_until en formato YYYY-MM-DD.
type CreateQuoteRequest struct {
	SupplierID  string          `json:"supplier_id" validate:"required,uuid"`
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	ValidUntil  string          `json:"valid_until" validate:"required"`
}

// QuoteResponse salida de una cotización.
type QuoteResponse struct {
	ID          string          `json:"id"`
	SupplierID  string          `json:"supplier_id"`
	ProductID   string          `json:"product_id"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	NetPrice    decimal.Decimal `json:"net_price"`
	ValidUntil  time.Time       `json:"valid_until"`
	CreatedAt   time.Time       `json:"created_at"`
}

// QuoteComparisonItem cotización enriquecida con el proveedor y su calificación.
type QuoteComparisonItem struct {
	QuoteResponse
	SupplierName string `json:"supplier_name"`
	OverallScore int    `json:"overall_score"`
	Tier         string `json:"tier"`
}

// QuoteComparisonResponse cotizaciones vigentes de un producto, la mejor primero.
type QuoteComparisonResponse struct {
	ProductID string                `json:"product_id"`
	Items     []QuoteComparisonItem `json:"items"`
}
