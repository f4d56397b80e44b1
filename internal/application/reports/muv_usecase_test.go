package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/reports"
	"github.com/jhoicas/farmacia-api/internal/domain"
)

type mockMUV struct{ mock.Mock }

func (m *mockMUV) Submit(ctx context.Context, pkg reports.MUVPackage) (*reports.MUVResult, error) {
	args := m.Called(ctx, pkg)
	res, _ := args.Get(0).(*reports.MUVResult)
	return res, args.Error(1)
}

func muvRequest() dto.SubmitMUVRequest {
	return dto.SubmitMUVRequest{
		From: "2026-03-10", To: "2026-03-10", InvoiceNumber: "FE-10",
		XMLFEVBase64: "PEludm9pY2UvPg==",
	}
}

func TestMUVSubmit_Deshabilitado(t *testing.T) {
	f := newFixture(t)
	uc := reports.NewMUVUseCase(reports.NewRIPSUseCase(f.s.Reports(), f.s.Organizations()), nil)

	_, err := uc.Submit(context.Background(), orgID, muvRequest())
	assert.ErrorIs(t, err, domain.ErrMUVDisabled)
}

func TestMUVSubmit_EnviaPaquete(t *testing.T) {
	f := newFixture(t)
	f.dispense(t, f.ana, "2", day)
	client := new(mockMUV)
	client.On("Submit", mock.Anything, mock.MatchedBy(func(p reports.MUVPackage) bool {
		return p.RIPS.NumFactura == "FE-10" && len(p.RIPS.Usuarios) == 1 && p.XMLFEVBase64 == "PEludm9pY2UvPg=="
	})).Return(&reports.MUVResult{ResultState: true, CUV: "abc123", ProcessID: "77"}, nil)

	uc := reports.NewMUVUseCase(reports.NewRIPSUseCase(f.s.Reports(), f.s.Organizations()), client)
	out, err := uc.Submit(context.Background(), orgID, muvRequest())
	require.NoError(t, err)
	assert.True(t, out.ResultState)
	assert.Equal(t, "abc123", out.CUV)
	assert.NotNil(t, out.Observations)
	client.AssertExpectations(t)
}

func TestMUVSubmit_Errores(t *testing.T) {
	f := newFixture(t)
	f.dispense(t, f.ana, "2", day)
	client := new(mockMUV)
	uc := reports.NewMUVUseCase(reports.NewRIPSUseCase(f.s.Reports(), f.s.Organizations()), client)
	ctx := context.Background()

	req := muvRequest()
	req.XMLFEVBase64 = "no es base64!"
	_, err := uc.Submit(ctx, orgID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = muvRequest()
	req.From = "10/03/2026"
	_, err = uc.Submit(ctx, orgID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	boom := errors.New("503 Service Unavailable")
	client.On("Submit", mock.Anything, mock.Anything).Return(nil, boom)
	_, err = uc.Submit(ctx, orgID, muvRequest())
	assert.ErrorIs(t, err, boom)
	client.AssertNumberOfCalls(t, "Submit", 1)
}

func TestMUVSubmit_IncluyeTodoElDiaFinal(t *testing.T) {
	f := newFixture(t)
	f.dispense(t, f.ana, "2", time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC))
	client := new(mockMUV)
	client.On("Submit", mock.Anything, mock.Anything).Return(&reports.MUVResult{ResultState: false, Observations: []string{"RVG02"}}, nil)

	uc := reports.NewMUVUseCase(reports.NewRIPSUseCase(f.s.Reports(), f.s.Organizations()), client)
	out, err := uc.Submit(context.Background(), orgID, muvRequest())
	require.NoError(t, err)
	assert.False(t, out.ResultState)
	assert.Equal(t, []string{"RVG02"}, out.Observations)
}
