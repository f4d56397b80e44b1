package dto

import "time"

// UpdateSupplierScoreRequest señales de una transacción con el proveedor.
// Acepta supplierId o supplier_id; los campos omitidos no modifican su eje.
type UpdateSupplierScoreRequest struct {
	SupplierID         string   `json:"supplierId"`
	SupplierIDSnake    string   `json:"supplier_id"`
	PriceCompetitive   *bool    `json:"priceCompetitive"`
	DeliveredOnTime    *bool    `json:"deliveredOnTime"`
	QualityOK          *bool    `json:"qualityOk"`
	PaymentScore       *float64 `json:"paymentScore"`
	DiscountScore      *float64 `json:"discountScore"`
	CommunicationScore *float64 `json:"communicationScore"`
}

// Supplier devuelve el identificador sin importar la convención usada.
func (r UpdateSupplierScoreRequest) Supplier() string {
	if r.SupplierID != "" {
		return r.SupplierID
	}
	return r.SupplierIDSnake
}

// SupplierScoreResponse calificación actualizada.
type SupplierScoreResponse struct {
	SupplierID       string    `json:"supplier_id"`
	PriceScore       int       `json:"price_score"`
	DeliveryScore    int       `json:"delivery_score"`
	QualityScore     int       `json:"quality_score"`
	PaymentScore     int       `json:"payment_score"`
	DiscountScore    int       `json:"discount_score"`
	TrackingScore    int       `json:"tracking_score"`
	OverallScore     int       `json:"overall_score"`
	TotalOrders      int       `json:"total_orders"`
	OnTimeDeliveries int       `json:"on_time_deliveries"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SupplierRecommendation proveedor con su calificación, nivel y análisis.
type SupplierRecommendation struct {
	SupplierID     string                `json:"supplier_id"`
	SupplierName   string                `json:"supplier_name"`
	Score          SupplierScoreResponse `json:"score"`
	Tier           string                `json:"tier"`
	Recommendation string                `json:"recommendation"`
	Pros           []string              `json:"pros"`
	Cons           []string              `json:"cons"`
	HasHistory     bool                  `json:"has_history"`
}

// SupplierRecommendationsResponse proveedores activos ordenados por puntaje global.
type SupplierRecommendationsResponse struct {
	Items []SupplierRecommendation `json:"items"`
}
