package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

const orgID = "org-1"

var day = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	s       *memstore.Store
	disp    *entity.Warehouse
	product *entity.Product
	ana     *entity.Patient
	luis    *entity.Patient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memstore.New()
	require.NoError(t, s.Organizations().Create(context.Background(), &entity.Organization{
		ID: orgID, Name: "IPS Salud Total", NIT: "900123456-8", ProviderCode: "050010123401", Status: "active",
	}))
	return &fixture{
		s:       s,
		disp:    s.SeedWarehouse(orgID, "Dispensario Centro", entity.WarehouseTypeDispensario),
		product: s.SeedProduct(orgID, "19943212-01", "Losartán potásico", d("100")),
		ana:     s.SeedPatient(orgID, "1036654321"),
		luis:    s.SeedPatient(orgID, "71234567"),
	}
}

// dispense siembra una fórmula de un solo ítem y su entrega.
func (f *fixture) dispense(t *testing.T, patient *entity.Patient, qty string, at time.Time) {
	t.Helper()
	rx := &entity.Prescription{
		ID: "rx-" + patient.ID + at.Format("20060102150405"), OrganizationID: orgID, PatientID: patient.ID,
		DiagnosisCode: "I10", IssuedAt: at, Status: entity.PrescriptionPartial,
		Items: []entity.PrescriptionItem{{
			ID: "rxi-" + patient.ID + at.Format("20060102150405"), ProductID: f.product.ID,
			QuantityPrescribed: d("60"), QuantityDelivered: d(qty), TreatmentDays: 30,
		}},
	}
	require.NoError(t, f.s.Prescriptions().Create(context.Background(), rx))
	f.s.AddDelivery(entity.Delivery{
		ID: "del-" + rx.ID, OrganizationID: orgID, WarehouseID: f.disp.ID, PatientID: patient.ID,
		PrescriptionID: rx.ID, DeliveredAt: at,
		Items: []entity.DeliveryItem{{
			ID: "di-" + rx.ID, ProductID: f.product.ID, PrescriptionItemID: rx.Items[0].ID,
			Quantity: d(qty), UnitCost: d("100"),
		}},
	})
}
