package reports

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
)

// MUVUseCase envía el paquete FEV-RIPS al MUV. Con client nil la integración
// está deshabilitada.
type MUVUseCase struct {
	rips   *RIPSUseCase
	client MUVClient
}

// NewMUVUseCase construye el caso de uso.
func NewMUVUseCase(ripsUC *RIPSUseCase, client MUVClient) *MUVUseCase {
	return &MUVUseCase{rips: ripsUC, client: client}
}

// Submit genera el RIPS del período y lo radica junto con la factura electrónica.
func (uc *MUVUseCase) Submit(ctx context.Context, organizationID string, in dto.SubmitMUVRequest) (*dto.MUVResultResponse, error) {
	if uc.client == nil {
		return nil, domain.ErrMUVDisabled
	}
	from, err := time.Parse("2006-01-02", in.From)
	if err != nil {
		return nil, fmt.Errorf("%w: from debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	to, err := time.Parse("2006-01-02", in.To)
	if err != nil {
		return nil, fmt.Errorf("%w: to debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if _, err := base64.StdEncoding.DecodeString(in.XMLFEVBase64); err != nil || in.XMLFEVBase64 == "" {
		return nil, fmt.Errorf("%w: xml_fev_base64 no es base64 válido", domain.ErrInvalidInput)
	}

	tx, err := uc.rips.Generate(ctx, organizationID, dto.RIPSRequest{
		From:          from,
		To:            to.Add(24*time.Hour - time.Nanosecond),
		EPSCode:       in.EPSCode,
		InvoiceNumber: in.InvoiceNumber,
	})
	if err != nil {
		return nil, err
	}

	res, err := uc.client.Submit(ctx, MUVPackage{RIPS: tx, XMLFEVBase64: in.XMLFEVBase64})
	if err != nil {
		log.Error().Err(err).Str("organization_id", organizationID).Str("invoice", in.InvoiceNumber).Msg("MUV: envío fallido")
		return nil, fmt.Errorf("MUV: %w", err)
	}
	ev := log.Info()
	if !res.ResultState {
		ev = log.Warn()
	}
	ev.Str("organization_id", organizationID).
		Str("invoice", in.InvoiceNumber).
		Bool("result_state", res.ResultState).
		Str("cuv", res.CUV).
		Int("observations", len(res.Observations)).
		Msg("MUV: paquete procesado")

	obs := res.Observations
	if obs == nil {
		obs = []string{}
	}
	return &dto.MUVResultResponse{
		ResultState:  res.ResultState,
		CUV:          res.CUV,
		ProcessID:    res.ProcessID,
		Observations: obs,
	}, nil
}
