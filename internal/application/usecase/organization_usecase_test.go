package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

func TestOrganizationCreate_NormalizaNIT(t *testing.T) {
	uc := usecase.NewOrganizationUseCase(memstore.New().Organizations())
	out, err := uc.Create(context.Background(), dto.CreateOrganizationRequest{
		Name: " Dispensarios del Valle ", NIT: "900.123.456-8", ProviderCode: "760010000001",
	})
	require.NoError(t, err)
	assert.Equal(t, "900123456-8", out.NIT)
	assert.Equal(t, "Dispensarios del Valle", out.Name)
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, "760010000001", out.ProviderCode)
}

func TestOrganizationCreate_NITInvalidoYDuplicado(t *testing.T) {
	uc := usecase.NewOrganizationUseCase(memstore.New().Organizations())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateOrganizationRequest{Name: "X", NIT: "900123456-5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateOrganizationRequest{Name: "X", NIT: "9001234568"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateOrganizationRequest{Name: "Y", NIT: "900123456-8"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestOrganizationGetByID_NoExiste(t *testing.T) {
	uc := usecase.NewOrganizationUseCase(memstore.New().Organizations())
	_, err := uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
