package entity

import "github.com/shopspring/decimal"

// Tipos de alerta del tablero.
const (
	AlertWarning = "warning" // sugerir traslado desde bodega
	AlertDanger  = "danger"  // requiere compra
	AlertInfo    = "info"
)

// Alert alerta efímera; se recalcula en cada consulta y no se persiste.
type Alert struct {
	Type           string          `json:"type"`
	Message        string          `json:"message"`
	Href           string          `json:"href"`
	WarehouseID    string          `json:"warehouse_id,omitempty"`
	ProductID      string          `json:"product_id,omitempty"`
	// Solo en alertas de reposición; nil en las informativas.
	CurrentStock   *decimal.Decimal `json:"current_stock,omitempty"`
	WeeklyRotation *decimal.Decimal `json:"weekly_rotation,omitempty"`
}
