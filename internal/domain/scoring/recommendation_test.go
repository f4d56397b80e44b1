package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/scoring"
)

func TestTier_Limites(t *testing.T) {
	cases := map[int]string{
		100: scoring.TierHighlyRecommended,
		80:  scoring.TierHighlyRecommended,
		79:  scoring.TierRecommended,
		60:  scoring.TierRecommended,
		59:  scoring.TierAcceptable,
		40:  scoring.TierAcceptable,
		39:  scoring.TierNotRecommended,
		0:   scoring.TierNotRecommended,
	}
	for overall, want := range cases {
		assert.Equal(t, want, scoring.Tier(overall), "overall=%d", overall)
	}
}

func TestProsCons_Umbrales(t *testing.T) {
	s := &entity.SupplierScore{Price: 70, Delivery: 69, Quality: 40, Payment: 39, Discount: 100, Tracking: 0}
	pros, cons := scoring.ProsCons(s)

	assert.Equal(t, []string{"Precios competitivos", "Ofrece buenos descuentos"}, pros)
	assert.Equal(t, []string{"Condiciones de pago desfavorables", "Comunicación deficiente"}, cons)
}

func TestProsCons_ProveedorNeutroSinListas(t *testing.T) {
	pros, cons := scoring.ProsCons(scoring.NewScore("x"))
	assert.Empty(t, pros)
	assert.Empty(t, cons)
	assert.NotNil(t, pros, "debe serializar como lista vacía, no null")
}

func TestRecommendationText_SinHistorial(t *testing.T) {
	s := scoring.NewScore("x")
	assert.Equal(t, "Aceptable. Sin historial de compras", scoring.RecommendationText(s))

	s.TotalOrders = 3
	assert.Equal(t, "Aceptable", scoring.RecommendationText(s))
}
