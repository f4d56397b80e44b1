package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

type mockAlerts struct{ mock.Mock }

func (m *mockAlerts) Generate(ctx context.Context, organizationID, warehouseID string) ([]entity.Alert, error) {
	args := m.Called(ctx, organizationID, warehouseID)
	alerts, _ := args.Get(0).([]entity.Alert)
	return alerts, args.Error(1)
}

func seedDelivery(s *memstore.Store, id, productID string, qty int64, at time.Time) {
	s.AddDelivery(entity.Delivery{
		ID: id, OrganizationID: "org-1", WarehouseID: "w", PatientID: "p", DeliveredAt: at,
		Items: []entity.DeliveryItem{{ID: id + "-1", ProductID: productID, Quantity: decimal.NewFromInt(qty)}},
	})
}

func TestGetSummary_ConteosTopYAlertas(t *testing.T) {
	s := memstore.New()
	s.SeedPatient("org-1", "1001")
	s.SeedPatient("org-1", "1002")
	s.SeedPatient("org-2", "2001")
	losartan := s.SeedProduct("org-1", "1", "Losartán", decimal.NewFromInt(10))
	insulina := s.SeedProduct("org-1", "2", "Insulina", decimal.NewFromInt(10))
	require.NoError(t, s.Prescriptions().Create(context.Background(), &entity.Prescription{
		ID: "rx", OrganizationID: "org-1", Status: entity.PrescriptionPending,
	}))

	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	seedDelivery(s, "d1", losartan.ID, 30, now.Add(-2*time.Hour))
	seedDelivery(s, "d2", insulina.ID, 5, time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))
	seedDelivery(s, "d3", insulina.ID, 500, time.Date(2026, time.February, 20, 9, 0, 0, 0, time.UTC))

	alerts := &mockAlerts{}
	alerts.On("Generate", mock.Anything, "org-1", "").
		Return([]entity.Alert{{Type: entity.AlertDanger, ProductID: insulina.ID}}, nil).Once()

	uc := NewDashboardUseCase(s.Analytics(), s.Prescriptions(), alerts)
	uc.now = func() time.Time { return now }

	out, err := uc.GetSummary(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Patients)
	assert.Equal(t, 1, out.OpenPrescriptions)
	assert.Equal(t, 1, out.DeliveriesToday)
	assert.Equal(t, 2, out.DeliveriesMonth)
	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, losartan.ID, out.TopProducts[0].ProductID)
	assert.True(t, out.TopProducts[1].Quantity.Equal(decimal.NewFromInt(5)), "febrero no cuenta")
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, "Marzo 2026", out.DateLabel)
	alerts.AssertExpectations(t)
}

func TestGetSummary_ErrorDeAlertas(t *testing.T) {
	s := memstore.New()
	alerts := &mockAlerts{}
	alerts.On("Generate", mock.Anything, "org-1", "").Return(nil, errors.New("db caída"))

	_, err := NewDashboardUseCase(s.Analytics(), s.Prescriptions(), alerts).GetSummary(context.Background(), "org-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard: alertas")
}

func TestGetSummary_SinAlertasDevuelveListaVacia(t *testing.T) {
	s := memstore.New()
	alerts := &mockAlerts{}
	alerts.On("Generate", mock.Anything, "org-1", "").Return(nil, nil)

	out, err := NewDashboardUseCase(s.Analytics(), s.Prescriptions(), alerts).GetSummary(context.Background(), "org-1")
	require.NoError(t, err)
	assert.NotNil(t, out.Alerts)
	assert.Empty(t, out.TopProducts)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Diciembre 2025", monthLabel(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Enero 2026", monthLabel(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
