package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// TopProductDTO producto más dispensado del mes.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	CUM         string          `json:"cum"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Deliveries  int             `json:"deliveries"`
}

// DashboardSummaryDTO resumen operativo del tablero principal.
type DashboardSummaryDTO struct {
	Patients          int             `json:"patients"`
	OpenPrescriptions int             `json:"open_prescriptions"`
	DeliveriesToday   int             `json:"deliveries_today"`
	DeliveriesMonth   int             `json:"deliveries_month"`
	TopProducts       []TopProductDTO `json:"top_products"`
	Alerts            []entity.Alert  `json:"alerts"`
	DateLabel         string          `json:"date_label"`
}
