package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier proveedor de medicamentos (laboratorio, distribuidor mayorista).
type Supplier struct {
	ID               string
	OrganizationID   string
	Name             string
	NIT              string
	ContactName      string
	Phone            string
	Email            string
	PaymentTermsDays int
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Quote cotización de un proveedor para un producto.
type Quote struct {
	ID             string
	OrganizationID string
	SupplierID     string
	ProductID      string
	UnitPrice      decimal.Decimal
	DiscountPct    decimal.Decimal
	ValidUntil     time.Time
	CreatedAt      time.Time
}

// NetPrice precio unitario después del descuento.
func (q Quote) NetPrice() decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(q.DiscountPct.Div(decimal.NewFromInt(100)))
	return q.UnitPrice.Mul(factor).Round(2)
}
