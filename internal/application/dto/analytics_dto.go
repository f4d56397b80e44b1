package dto

import "github.com/shopspring/decimal"

// ConsumptionReportRequest parámetros del reporte de consumo (query string).
type ConsumptionReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD, por defecto el día 1 del mes
	EndDate   string `query:"end_date"`   // YYYY-MM-DD, por defecto hoy
	TopN      int    `query:"top_n"`
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ConsumptionRankingDTO posición de un producto en el ranking de dispensación.
type ConsumptionRankingDTO struct {
	Rank          int             `json:"rank"`
	ProductID     string          `json:"product_id"`
	CUM           string          `json:"cum"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Deliveries    int             `json:"deliveries"`
	SharePct      decimal.Decimal `json:"share_pct"`
	CumulativePct decimal.Decimal `json:"cumulative_pct"`
	IsTopPareto   bool            `json:"is_top_pareto"`
}

// ConsumptionReportDTO ranking completo y subconjunto Pareto.
type ConsumptionReportDTO struct {
	Period         PeriodDTO               `json:"period"`
	TotalUnits     decimal.Decimal         `json:"total_units"`
	Ranking        []ConsumptionRankingDTO `json:"ranking"`
	ParetoProducts []ConsumptionRankingDTO `json:"pareto_products"`
}
