package purchasing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/purchasing"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/scoring"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

func TestUpdateSupplierScore_MezclaIncremental(t *testing.T) {
	s := memstore.New()
	sp := s.SeedSupplier(orgID, "Droguería Andina")
	uc := purchasing.NewScoringUseCase(s, s.Suppliers(), s.Scores())
	ctx := context.Background()

	out, err := uc.UpdateSupplierScore(ctx, orgID, dto.UpdateSupplierScoreRequest{
		SupplierID: sp.ID, PriceCompetitive: ptrBool(true), DeliveredOnTime: ptrBool(true),
	})
	require.NoError(t, err)
	assert.Equal(t, 65, out.PriceScore)
	assert.Equal(t, 65, out.DeliveryScore)
	assert.Equal(t, 50, out.QualityScore)
	assert.Equal(t, 58, out.OverallScore)
	assert.Equal(t, 1, out.TotalOrders)
	assert.Equal(t, 1, out.OnTimeDeliveries)

	out, err = uc.UpdateSupplierScore(ctx, orgID, dto.UpdateSupplierScoreRequest{
		SupplierIDSnake: sp.ID, QualityOK: ptrBool(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 35, out.QualityScore)
	assert.Equal(t, 65, out.PriceScore, "los ejes no enviados no cambian")
	assert.Equal(t, 55, out.OverallScore)
	assert.Equal(t, 2, out.TotalOrders)
	assert.Equal(t, 1, out.OnTimeDeliveries)

	stored, err := s.Scores().Get(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, 55, stored.Overall)
}

func TestUpdateSupplierScore_SenalesNumericasSeRecortan(t *testing.T) {
	s := memstore.New()
	sp := s.SeedSupplier(orgID, "Droguería Andina")
	uc := purchasing.NewScoringUseCase(s, s.Suppliers(), s.Scores())

	out, err := uc.UpdateSupplierScore(context.Background(), orgID, dto.UpdateSupplierScoreRequest{
		SupplierID: sp.ID, PaymentScore: ptrFloat(250), DiscountScore: ptrFloat(-10), CommunicationScore: ptrFloat(80),
	})
	require.NoError(t, err)
	assert.Equal(t, 65, out.PaymentScore)
	assert.Equal(t, 35, out.DiscountScore)
	assert.Equal(t, 59, out.TrackingScore)
	assert.Equal(t, 0, out.OnTimeDeliveries)
	assert.Equal(t, 1, out.TotalOrders)
}

func TestUpdateSupplierScore_Errores(t *testing.T) {
	s := memstore.New()
	sp := s.SeedSupplier(orgID, "Droguería Andina")
	uc := purchasing.NewScoringUseCase(s, s.Suppliers(), s.Scores())
	ctx := context.Background()

	_, err := uc.UpdateSupplierScore(ctx, orgID, dto.UpdateSupplierScoreRequest{SupplierID: sp.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateSupplierScore(ctx, "org-2", dto.UpdateSupplierScoreRequest{SupplierID: sp.ID, QualityOK: ptrBool(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateSupplierScore(ctx, orgID, dto.UpdateSupplierScoreRequest{SupplierID: "nope", QualityOK: ptrBool(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s.FailOn["Scores.Upsert"] = errors.New("timeout")
	_, err = uc.UpdateSupplierScore(ctx, orgID, dto.UpdateSupplierScoreRequest{SupplierID: sp.ID, QualityOK: ptrBool(true)})
	require.Error(t, err)
	stored, err := s.Scores().Get(ctx, sp.ID)
	require.NoError(t, err)
	assert.Nil(t, stored, "la calificación se crea solo cuando la actualización se guarda")
}

func TestGetSupplierRecommendations_OrdenYHistorial(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	scored := s.SeedSupplier(orgID, "Medicamentos del Valle")
	s.SeedSupplier(orgID, "Zeta Pharma")
	s.SeedSupplier(orgID, "Alfa Distribuciones")
	inactive := s.SeedSupplier(orgID, "Inactivo SAS")
	inactive.IsActive = false
	require.NoError(t, s.Suppliers().Update(ctx, inactive))
	s.SeedSupplier("org-2", "Otro tenant")

	uc := purchasing.NewScoringUseCase(s, s.Suppliers(), s.Scores())
	_, err := uc.UpdateSupplierScore(ctx, orgID, dto.UpdateSupplierScoreRequest{
		SupplierID: scored.ID, PriceCompetitive: ptrBool(true), DeliveredOnTime: ptrBool(true),
	})
	require.NoError(t, err)

	out, err := uc.GetSupplierRecommendations(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)

	assert.Equal(t, "Medicamentos del Valle", out.Items[0].SupplierName)
	assert.True(t, out.Items[0].HasHistory)
	assert.Equal(t, scoring.TierAcceptable, out.Items[0].Tier)
	assert.Equal(t, "Aceptable", out.Items[0].Recommendation)

	assert.Equal(t, "Alfa Distribuciones", out.Items[1].SupplierName, "empates por nombre")
	assert.Equal(t, "Zeta Pharma", out.Items[2].SupplierName)
	assert.False(t, out.Items[1].HasHistory)
	assert.Equal(t, "Aceptable. Sin historial de compras", out.Items[1].Recommendation)
	assert.Equal(t, 50, out.Items[1].Score.OverallScore)
	assert.Empty(t, out.Items[1].Pros)
	assert.Empty(t, out.Items[1].Cons)
}

type mockScoreRepo struct{ mock.Mock }

func (m *mockScoreRepo) Get(ctx context.Context, supplierID string) (*entity.SupplierScore, error) {
	args := m.Called(ctx, supplierID)
	sc, _ := args.Get(0).(*entity.SupplierScore)
	return sc, args.Error(1)
}

func (m *mockScoreRepo) GetForUpdate(ctx context.Context, supplierID string) (*entity.SupplierScore, error) {
	args := m.Called(ctx, supplierID)
	sc, _ := args.Get(0).(*entity.SupplierScore)
	return sc, args.Error(1)
}

func (m *mockScoreRepo) Upsert(ctx context.Context, sc *entity.SupplierScore) error {
	return m.Called(ctx, sc).Error(0)
}

func (m *mockScoreRepo) ListByOrganization(ctx context.Context, organizationID string) (map[string]*entity.SupplierScore, error) {
	args := m.Called(ctx, organizationID)
	scores, _ := args.Get(0).(map[string]*entity.SupplierScore)
	return scores, args.Error(1)
}

func TestGetSupplierRecommendations_ProsYContrasDesdeRepositorio(t *testing.T) {
	s := memstore.New()
	sp := s.SeedSupplier(orgID, "Droguería Andina")
	scores := new(mockScoreRepo)
	scores.On("ListByOrganization", mock.Anything, orgID).Return(map[string]*entity.SupplierScore{
		sp.ID: {SupplierID: sp.ID, Price: 90, Delivery: 85, Quality: 80, Payment: 30, Discount: 75, Tracking: 70, Overall: 81, TotalOrders: 12},
	}, nil)

	uc := purchasing.NewScoringUseCase(s, s.Suppliers(), scores)
	out, err := uc.GetSupplierRecommendations(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)

	item := out.Items[0]
	assert.Equal(t, scoring.TierHighlyRecommended, item.Tier)
	assert.Len(t, item.Pros, 5)
	assert.Equal(t, []string{"Condiciones de pago desfavorables"}, item.Cons)
	scores.AssertExpectations(t)
}

func TestGetSupplierRecommendations_PropagaErrorDelRepositorio(t *testing.T) {
	s := memstore.New()
	s.SeedSupplier(orgID, "Droguería Andina")
	scores := new(mockScoreRepo)
	boom := errors.New("conexión rechazada")
	scores.On("ListByOrganization", mock.Anything, orgID).Return(nil, boom)

	uc := purchasing.NewScoringUseCase(s, s.Suppliers(), scores)
	_, err := uc.GetSupplierRecommendations(context.Background(), orgID)
	assert.ErrorIs(t, err, boom)
}
