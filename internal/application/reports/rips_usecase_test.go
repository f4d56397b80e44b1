package reports_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/reports"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/rips"
)

func TestRIPSGenerate_UsuariosYConsecutivos(t *testing.T) {
	f := newFixture(t)
	f.dispense(t, f.ana, "2", day)
	f.dispense(t, f.luis, "1", day.Add(time.Hour))
	f.dispense(t, f.ana, "3", day.Add(2*time.Hour))
	f.dispense(t, f.ana, "9", day.AddDate(0, 1, 0)) // fuera del período

	uc := reports.NewRIPSUseCase(f.s.Reports(), f.s.Organizations())
	tx, err := uc.Generate(context.Background(), orgID, dto.RIPSRequest{
		From: day.Add(-time.Hour), To: day.Add(24 * time.Hour), InvoiceNumber: " FE-10 ",
	})
	require.NoError(t, err)

	assert.Equal(t, "9001234568", tx.NumDocumentoIdObligado)
	assert.Equal(t, "FE-10", tx.NumFactura)
	require.Len(t, tx.Usuarios, 2)
	assert.Equal(t, f.ana.DocumentNumber, tx.Usuarios[0].NumDocumentoIdentificacion)
	assert.Equal(t, 1, tx.Usuarios[0].Consecutivo)
	assert.Equal(t, 2, tx.Usuarios[1].Consecutivo)

	meds := tx.Usuarios[0].Servicios.Medicamentos
	require.Len(t, meds, 2)
	assert.Equal(t, 1, meds[0].Consecutivo)
	assert.Equal(t, 2, meds[1].Consecutivo)
	assert.Equal(t, "LOSARTAN POTASICO", meds[0].NomTecnologiaSalud)
	assert.Equal(t, "050010123401", meds[0].CodPrestador)
	assert.Equal(t, 30, meds[0].DiasTratamiento)

	raw, err := json.Marshal(meds[1])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"vrServicio":600`)
}

func TestRIPSGenerate_EntregaSinFormulaNoValida(t *testing.T) {
	f := newFixture(t)
	f.s.AddDelivery(entity.Delivery{
		ID: "del-sin-rx", OrganizationID: orgID, WarehouseID: f.disp.ID, PatientID: f.ana.ID, DeliveredAt: day,
		Items: []entity.DeliveryItem{{ID: "x", ProductID: f.product.ID, Quantity: d("1")}},
	})

	uc := reports.NewRIPSUseCase(f.s.Reports(), f.s.Organizations())
	_, err := uc.Generate(context.Background(), orgID, dto.RIPSRequest{
		From: day.Add(-time.Hour), To: day.Add(time.Hour), InvoiceNumber: "FE-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, rips.ErrInvalidRIPS)
}

func TestRIPSGenerate_Errores(t *testing.T) {
	f := newFixture(t)
	uc := reports.NewRIPSUseCase(f.s.Reports(), f.s.Organizations())
	ctx := context.Background()

	_, err := uc.Generate(ctx, orgID, dto.RIPSRequest{From: day, To: day.Add(time.Hour)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generate(ctx, orgID, dto.RIPSRequest{From: day, To: day.Add(-time.Hour), InvoiceNumber: "FE-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generate(ctx, "org-x", dto.RIPSRequest{From: day, To: day.Add(time.Hour), InvoiceNumber: "FE-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Sin entregas en el período el paquete no tiene usuarios.
	_, err = uc.Generate(ctx, orgID, dto.RIPSRequest{From: day, To: day.Add(time.Hour), InvoiceNumber: "FE-1"})
	assert.ErrorIs(t, err, rips.ErrInvalidRIPS)
}
