// Package scoring implementa el modelo de calificación de proveedores: seis ejes
// en [0,100] que se actualizan con una mezcla 70/30 después de cada transacción y
// un puntaje global con pesos fijos.
package scoring

import (
	"math"
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// DefaultAxisScore valor inicial de cada eje para un proveedor sin historial.
const DefaultAxisScore = 50

// Mezcla en décimas: 7 partes del valor anterior, 3 de la nueva señal.
const (
	oldValueTenths  = 7
	newSignalTenths = 3
)

// Pesos porcentuales del puntaje global (suman 100).
const (
	WeightPrice    = 30
	WeightDelivery = 25
	WeightQuality  = 20
	WeightPayment  = 10
	WeightDiscount = 10
	WeightTracking = 5
)

// Metrics señales de una transacción. Los campos nil no modifican su eje.
type Metrics struct {
	PriceCompetitive   *bool
	DeliveredOnTime    *bool
	QualityOK          *bool
	PaymentScore       *float64
	DiscountScore      *float64
	CommunicationScore *float64
}

// IsEmpty indica que no se envió ninguna señal.
func (m Metrics) IsEmpty() bool {
	return m.PriceCompetitive == nil && m.DeliveredOnTime == nil && m.QualityOK == nil &&
		m.PaymentScore == nil && m.DiscountScore == nil && m.CommunicationScore == nil
}

// NewScore crea la calificación por defecto de un proveedor.
func NewScore(supplierID string) *entity.SupplierScore {
	s := &entity.SupplierScore{
		SupplierID: supplierID,
		Price:      DefaultAxisScore,
		Delivery:   DefaultAxisScore,
		Quality:    DefaultAxisScore,
		Payment:    DefaultAxisScore,
		Discount:   DefaultAxisScore,
		Tracking:   DefaultAxisScore,
	}
	s.Overall = Overall(s)
	return s
}

// Blend mezcla el valor anterior con la nueva señal: round(old*0.7 + new*0.3).
// Se calcula en décimas enteras para que x.5 redondee siempre hacia arriba.
func Blend(old int, signal float64) int {
	v := (float64(old)*oldValueTenths + clampSignal(signal)*newSignalTenths) / 10
	return clamp(int(math.Round(v)))
}

// Overall puntaje global ponderado, redondeado. Depende solo de los seis ejes.
func Overall(s *entity.SupplierScore) int {
	sum := s.Price*WeightPrice +
		s.Delivery*WeightDelivery +
		s.Quality*WeightQuality +
		s.Payment*WeightPayment +
		s.Discount*WeightDiscount +
		s.Tracking*WeightTracking
	return clamp(int(math.Round(float64(sum) / 100)))
}

// Apply aplica las métricas de una transacción sobre s y recalcula el global.
// Cada llamada cuenta como una orden; las entregas a tiempo se cuentan aparte.
func Apply(s *entity.SupplierScore, m Metrics, now time.Time) {
	if m.PriceCompetitive != nil {
		s.Price = Blend(s.Price, boolSignal(*m.PriceCompetitive))
	}
	if m.DeliveredOnTime != nil {
		s.Delivery = Blend(s.Delivery, boolSignal(*m.DeliveredOnTime))
		if *m.DeliveredOnTime {
			s.OnTimeDeliveries++
		}
	}
	if m.QualityOK != nil {
		s.Quality = Blend(s.Quality, boolSignal(*m.QualityOK))
	}
	if m.PaymentScore != nil {
		s.Payment = Blend(s.Payment, *m.PaymentScore)
	}
	if m.DiscountScore != nil {
		s.Discount = Blend(s.Discount, *m.DiscountScore)
	}
	if m.CommunicationScore != nil {
		s.Tracking = Blend(s.Tracking, *m.CommunicationScore)
	}
	s.TotalOrders++
	s.Overall = Overall(s)
	s.UpdatedAt = now
}

func boolSignal(b bool) float64 {
	if b {
		return 100
	}
	return 0
}

func clampSignal(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
