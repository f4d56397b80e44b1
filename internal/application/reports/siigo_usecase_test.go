package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/reports"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

type mockExporter struct{ mock.Mock }

func (m *mockExporter) Export(lines []repository.PurchaseExportLine) ([]byte, error) {
	args := m.Called(lines)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func TestSiigoExport_LineasDelPeriodo(t *testing.T) {
	f := newFixture(t)
	sp := f.s.SeedSupplier(orgID, "Droguería Andina")
	require.NoError(t, f.s.Receipts().Create(context.Background(), &entity.PurchaseReceipt{
		ID: "rc-1", OrganizationID: orgID, SupplierID: sp.ID, WarehouseID: f.disp.ID,
		InvoiceNumber: "FV-88", ReceivedAt: day,
		Items: []entity.PurchaseReceiptItem{{ID: "i1", ProductID: f.product.ID, Quantity: d("10"), UnitCost: d("95")}},
	}))

	exporter := new(mockExporter)
	exporter.On("Export", mock.MatchedBy(func(lines []repository.PurchaseExportLine) bool {
		return len(lines) == 1 && lines[0].InvoiceNumber == "FV-88" && lines[0].SupplierNIT == "900123456-8"
	})).Return([]byte("xlsx"), nil)

	uc := reports.NewSiigoUseCase(f.s.Reports(), exporter)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	content, name, err := uc.Export(context.Background(), orgID, from, to)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), content)
	assert.Equal(t, "compras_siigo_20260301_20260331.xlsx", name)
	exporter.AssertExpectations(t)
}

func TestSiigoExport_RangoInvertido(t *testing.T) {
	f := newFixture(t)
	uc := reports.NewSiigoUseCase(f.s.Reports(), new(mockExporter))

	_, _, err := uc.Export(context.Background(), orgID, day, day.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
