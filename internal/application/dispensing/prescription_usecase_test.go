package dispensing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

func TestPrescriptionCreate_EstadoInicialPendiente(t *testing.T) {
	f := newFixture(t)
	rx := f.prescribe(t, "30")

	assert.Equal(t, entity.PrescriptionPending, rx.Status)
	assert.Equal(t, "I10", rx.DiagnosisCode)
	require.Len(t, rx.Items, 1)
	assert.True(t, d("30").Equal(rx.Items[0].QuantityPending))
}

func TestPrescriptionCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	foreign := f.s.SeedProduct("org-2", "9", "Ajeno", d("1"))
	future := time.Now().Add(48 * time.Hour)
	base := func() dto.CreatePrescriptionRequest {
		return dto.CreatePrescriptionRequest{
			PatientID: f.patient.ID, DiagnosisCode: "E11",
			Items: []dto.CreatePrescriptionItemRequest{{ProductID: f.product.ID, QuantityPrescribed: d("1")}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*dto.CreatePrescriptionRequest)
		want   error
	}{
		{"sin líneas", func(r *dto.CreatePrescriptionRequest) { r.Items = nil }, domain.ErrInvalidInput},
		{"sin diagnóstico", func(r *dto.CreatePrescriptionRequest) { r.DiagnosisCode = "" }, domain.ErrInvalidInput},
		{"cantidad cero", func(r *dto.CreatePrescriptionRequest) { r.Items[0].QuantityPrescribed = d("0") }, domain.ErrInvalidInput},
		{"fecha futura", func(r *dto.CreatePrescriptionRequest) { r.IssuedAt = &future }, domain.ErrInvalidInput},
		{"producto de otra organización", func(r *dto.CreatePrescriptionRequest) { r.Items[0].ProductID = foreign.ID }, domain.ErrNotFound},
		{"paciente inexistente", func(r *dto.CreatePrescriptionRequest) { r.PatientID = "nope" }, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			_, err := f.rxUC.Create(context.Background(), orgID, in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPrescriptionCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rx := f.prescribe(t, "10")
	out, err := f.rxUC.Cancel(ctx, orgID, rx.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PrescriptionCancelled, out.Status)

	withDelivery := f.prescribe(t, "10")
	_, err = f.deliver(withDelivery.ID, "2")
	require.NoError(t, err)
	_, err = f.rxUC.Cancel(ctx, orgID, withDelivery.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.rxUC.Cancel(ctx, "org-2", rx.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPrescriptionListByPatient(t *testing.T) {
	f := newFixture(t)
	f.prescribe(t, "1")
	f.prescribe(t, "2")

	out, err := f.rxUC.ListByPatient(context.Background(), orgID, f.patient.ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)

	_, err = f.rxUC.ListByPatient(context.Background(), "org-2", f.patient.ID, 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
