package rips_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/rips"
)

var (
	testHeader  = rips.Header{ObligatedNIT: "900.123.456-8", InvoiceNumber: "FE-1001", ProviderCode: "110010000001"}
	deliveredAt = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
)

func testPatient(id, doc string) *entity.Patient {
	return &entity.Patient{
		ID: id, DocumentType: "CC", DocumentNumber: doc, UserType: "01",
		BirthDate: time.Date(1980, 1, 15, 0, 0, 0, 0, time.UTC), Sex: "F",
		MunicipalityCode: "11001", Zone: "01",
	}
}

func testProduct(cum, price string) *entity.Product {
	return &entity.Product{
		ID: "prod-" + cum, CUM: cum, Name: "Acetaminofén  tabletas", Concentration: "500 mg",
		PharmaceuticalForm: "Tableta", UnitMeasure: "tableta", MedicationType: entity.MedicationTypePOS,
		Price: decimal.RequireFromString(price),
	}
}

func testPrescription() *entity.Prescription {
	return &entity.Prescription{DiagnosisCode: "R51X", PrescriberDocument: "79000111", AuthorizationNumber: "AUT-9"}
}

func TestBuild_AgrupaPorPacienteYNumera(t *testing.T) {
	p1, p2 := testPatient("pa-1", "1001"), testPatient("pa-2", "1002")
	lines := []rips.DispensedLine{
		{Patient: p1, Product: testProduct("19943-1", "150"), Prescription: testPrescription(), Quantity: decimal.NewFromInt(30), TreatmentDays: 10, DeliveredAt: deliveredAt},
		{Patient: p2, Product: testProduct("19943-1", "150"), Prescription: testPrescription(), Quantity: decimal.NewFromInt(10), DeliveredAt: deliveredAt},
		{Patient: p1, Product: testProduct("20001-2", "99.999"), Prescription: testPrescription(), Quantity: decimal.NewFromInt(3), DeliveredAt: deliveredAt},
	}

	tx, err := rips.Build(testHeader, lines)
	require.NoError(t, err)

	assert.Equal(t, "9001234568", tx.NumDocumentoIdObligado)
	require.Len(t, tx.Usuarios, 2)
	assert.Equal(t, 1, tx.Usuarios[0].Consecutivo)
	assert.Equal(t, "1001", tx.Usuarios[0].NumDocumentoIdentificacion)
	assert.Equal(t, 2, tx.Usuarios[1].Consecutivo)

	meds := tx.Usuarios[0].Servicios.Medicamentos
	require.Len(t, meds, 2)
	assert.Equal(t, 1, meds[0].Consecutivo)
	assert.Equal(t, 2, meds[1].Consecutivo)
	assert.Equal(t, "ACETAMINOFEN TABLETAS", meds[0].NomTecnologiaSalud)
	assert.Equal(t, "2026-05-04 09:30", meds[0].FechaDispensAdmon)
	assert.True(t, decimal.Decimal(meds[0].VrServicio).Equal(decimal.NewFromInt(4500)))
	assert.True(t, decimal.Decimal(meds[1].VrUnitMedicamento).Equal(decimal.RequireFromString("100")))
	assert.Equal(t, "R51X", meds[0].CodDiagnosticoPrincipal)
	require.NotNil(t, meds[0].NumAutorizacion)
	assert.Equal(t, "AUT-9", *meds[0].NumAutorizacion)
	assert.Nil(t, meds[0].IdMIPRES)

	require.NoError(t, rips.Validate(tx))
}

func TestBuild_SerializaNumerosSinComillas(t *testing.T) {
	tx, err := rips.Build(testHeader, []rips.DispensedLine{
		{Patient: testPatient("pa-1", "1001"), Product: testProduct("1-1", "12.5"), Prescription: testPrescription(), Quantity: decimal.NewFromInt(2), DeliveredAt: deliveredAt},
	})
	require.NoError(t, err)

	raw, err := json.Marshal(tx)
	require.NoError(t, err)
	s := string(raw)
	assert.Contains(t, s, `"vrServicio":25`)
	assert.Contains(t, s, `"cantidadMedicamento":2`)
	assert.Contains(t, s, `"tipoNota":null`)
	assert.Contains(t, s, `"codPaisResidencia":"170"`)
}

func TestBuild_HeaderIncompleto(t *testing.T) {
	_, err := rips.Build(rips.Header{ObligatedNIT: "900123456"}, nil)
	assert.ErrorIs(t, err, rips.ErrInvalidRIPS)
}

func TestBuild_LineaSinPaciente(t *testing.T) {
	_, err := rips.Build(testHeader, []rips.DispensedLine{{Product: testProduct("1", "1")}})
	assert.ErrorIs(t, err, rips.ErrInvalidRIPS)
}

func TestValidate_AcumulaErrores(t *testing.T) {
	p := testPatient("pa-1", "")
	p.MunicipalityCode = "110"
	tx, err := rips.Build(testHeader, []rips.DispensedLine{
		{Patient: p, Product: testProduct("", "1"), Quantity: decimal.NewFromInt(1), DeliveredAt: deliveredAt},
	})
	require.NoError(t, err)

	err = rips.Validate(tx)
	require.Error(t, err)
	assert.ErrorIs(t, err, rips.ErrInvalidRIPS)
	for _, frag := range []string{"sin documento", "municipio inválido", "sin diagnóstico", "sin CUM"} {
		assert.Contains(t, err.Error(), frag)
	}
}

func TestValidate_SinUsuarios(t *testing.T) {
	tx, err := rips.Build(testHeader, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, rips.Validate(tx), rips.ErrInvalidRIPS)
}

func TestNormalizeText(t *testing.T) {
	cases := map[string]string{
		"  Ibuprofeno   400 mg ": "IBUPROFENO 400 MG",
		"Solución oftálmica":     "SOLUCION OFTALMICA",
		"Ampolla niño":           "AMPOLLA NIÑO",
		"":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, rips.NormalizeText(in), "in=%q", in)
	}
}
