package scoring

import "github.com/jhoicas/farmacia-api/internal/domain/entity"

// Umbrales de fortalezas y debilidades por eje.
const (
	StrengthThreshold = 70
	WeaknessThreshold = 40
)

// Niveles de recomendación.
const (
	TierHighlyRecommended = "Altamente recomendado"
	TierRecommended       = "Recomendado"
	TierAcceptable        = "Aceptable"
	TierNotRecommended    = "No recomendado"
)

// NoHistoryNote nota informativa para proveedores sin órdenes registradas.
const NoHistoryNote = "Sin historial de compras"

// Tier clasifica el puntaje global en cuatro niveles.
func Tier(overall int) string {
	switch {
	case overall >= 80:
		return TierHighlyRecommended
	case overall >= 60:
		return TierRecommended
	case overall >= 40:
		return TierAcceptable
	default:
		return TierNotRecommended
	}
}

type axis struct {
	value    int
	strength string
	weakness string
}

func axes(s *entity.SupplierScore) []axis {
	return []axis{
		{s.Price, "Precios competitivos", "Precios poco competitivos"},
		{s.Delivery, "Entregas puntuales", "Retrasos frecuentes en entregas"},
		{s.Quality, "Buena calidad de producto", "Problemas de calidad"},
		{s.Payment, "Condiciones de pago favorables", "Condiciones de pago desfavorables"},
		{s.Discount, "Ofrece buenos descuentos", "Pocos descuentos"},
		{s.Tracking, "Buena comunicación y seguimiento", "Comunicación deficiente"},
	}
}

// ProsCons deriva fortalezas (eje >= 70) y debilidades (eje < 40).
func ProsCons(s *entity.SupplierScore) (pros, cons []string) {
	pros, cons = []string{}, []string{}
	for _, a := range axes(s) {
		if a.value >= StrengthThreshold {
			pros = append(pros, a.strength)
		}
		if a.value < WeaknessThreshold {
			cons = append(cons, a.weakness)
		}
	}
	return pros, cons
}

// RecommendationText texto del nivel más la nota de historial cuando aplica.
func RecommendationText(s *entity.SupplierScore) string {
	text := Tier(s.Overall)
	if s.TotalOrders == 0 {
		text += ". " + NoHistoryNote
	}
	return text
}
