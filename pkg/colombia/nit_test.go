package colombia_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/pkg/colombia"
)

func TestVerificationDigit(t *testing.T) {
	// 900123456: suma 586, 586 % 11 = 3, dígito 11-3 = 8
	tests := []struct {
		nit  string
		want byte
	}{
		{"860002964", '4'},
		{"900.123.456", '8'},
		{"800197268", '4'},
	}
	for _, tt := range tests {
		t.Run(tt.nit, func(t *testing.T) {
			got, err := colombia.VerificationDigit(tt.nit)
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), string(got))
		})
	}
}

func TestValidateNIT(t *testing.T) {
	assert.NoError(t, colombia.ValidateNIT("900123456-8"))
	assert.NoError(t, colombia.ValidateNIT("900.123.456-8"))
	assert.NoError(t, colombia.ValidateNIT("8600029644"))

	err := colombia.ValidateNIT("900123456-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, colombia.ErrInvalidNIT))

	assert.Error(t, colombia.ValidateNIT("900123456"), "sin dígito de verificación")
	assert.Error(t, colombia.ValidateNIT("abc"))
}

func TestFormatNIT(t *testing.T) {
	got, err := colombia.FormatNIT("900.123.456 8")
	require.NoError(t, err)
	assert.Equal(t, "900123456-8", got)
}

func TestCatalogos(t *testing.T) {
	assert.True(t, colombia.ValidDocumentType("CC"))
	assert.False(t, colombia.ValidDocumentType("NIT"))
	assert.True(t, colombia.ValidUserType("12"))
	assert.False(t, colombia.ValidUserType("13"))
	assert.True(t, colombia.ValidRegime(colombia.RegimeSubsidiado))
	assert.True(t, colombia.ValidSex("I"))
	assert.True(t, colombia.ValidZone("02"))
	assert.True(t, colombia.ValidMunicipalityCode("05001"))
	assert.False(t, colombia.ValidMunicipalityCode("5001"))
}
