package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/rips"
)

// PurchaseExportLine una línea de recepción de compra para exportar a Siigo.
type PurchaseExportLine struct {
	ReceiptID      string
	InvoiceNumber  string
	ReceivedAt     time.Time
	SupplierNIT    string
	SupplierName   string
	WarehouseName  string
	CUM            string
	ProductName    string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	Lot            string
	ExpirationDate *time.Time
}

// ReportRepository consultas de lectura para reportes regulatorios y contables.
type ReportRepository interface {
	// DispensedLines entregas del período, netas de devoluciones, ordenadas por fecha.
	// epsCode vacío = todas las EPS.
	DispensedLines(ctx context.Context, organizationID string, from, to time.Time, epsCode string) ([]rips.DispensedLine, error)
	PurchaseLines(ctx context.Context, organizationID string, from, to time.Time) ([]PurchaseExportLine, error)
}
