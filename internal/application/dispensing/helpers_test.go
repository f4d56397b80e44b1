package dispensing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dispensing"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

const (
	orgID  = "org-1"
	userID = "user-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	s        *memstore.Store
	disp     *entity.Warehouse
	patient  *entity.Patient
	product  *entity.Product
	rxUC     *dispensing.PrescriptionUseCase
	delivery *dispensing.DeliveryUseCase
	returns  *dispensing.ReturnUseCase
}

// newFixture dispensario con 50 unidades de losartán a costo 100.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memstore.New()
	f := &fixture{
		s:       s,
		disp:    s.SeedWarehouse(orgID, "Dispensario Centro", entity.WarehouseTypeDispensario),
		patient: s.SeedPatient(orgID, "1036654321"),
		product: s.SeedProduct(orgID, "19943212-01", "Losartán 50 mg", d("100")),
	}
	s.SetStock(f.product.ID, f.disp.ID, d("50"))
	f.rxUC = dispensing.NewPrescriptionUseCase(s, s.Prescriptions(), s.Patients(), s.Products())
	f.delivery = dispensing.NewDeliveryUseCase(s, s.Deliveries(), s.Warehouses(), s.Patients(), s.Products(), s.Prescriptions())
	f.returns = dispensing.NewReturnUseCase(s, s.Returns(), s.Deliveries(), s.Warehouses())
	return f
}

func (f *fixture) prescribe(t *testing.T, qty string) *dto.PrescriptionResponse {
	t.Helper()
	rx, err := f.rxUC.Create(context.Background(), orgID, dto.CreatePrescriptionRequest{
		PatientID: f.patient.ID, DiagnosisCode: "i10",
		Items: []dto.CreatePrescriptionItemRequest{{ProductID: f.product.ID, QuantityPrescribed: d(qty), TreatmentDays: 30}},
	})
	require.NoError(t, err)
	return rx
}

func (f *fixture) deliver(rxID, qty string) (*dto.DeliveryResponse, error) {
	return f.delivery.Create(context.Background(), orgID, userID, dto.CreateDeliveryRequest{
		WarehouseID: f.disp.ID, PatientID: f.patient.ID, PrescriptionID: rxID,
		Items: []dto.CreateDeliveryItemRequest{{ProductID: f.product.ID, Quantity: d(qty)}},
	})
}
