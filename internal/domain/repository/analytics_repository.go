package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DispensedProduct resultado crudo del top de productos entregados.
type DispensedProduct struct {
	ProductID   string
	CUM         string
	ProductName string
	Quantity    decimal.Decimal
	Deliveries  int
}

// AnalyticsRepository consultas read-only del dashboard.
type AnalyticsRepository interface {
	CountPatients(ctx context.Context, organizationID string) (int, error)
	CountDeliveries(ctx context.Context, organizationID string, from, to time.Time) (int, error)
	// TopDispensed productos con mayor cantidad entregada en el período.
	TopDispensed(ctx context.Context, organizationID string, from, to time.Time, limit int) ([]DispensedProduct, error)
}
