package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/internal/domain/rips"
)

// RIPSUseCase arma el RIPS de medicamentos dispensados en un período.
type RIPSUseCase struct {
	reportRepo repository.ReportRepository
	orgRepo    repository.OrganizationRepository
}

// NewRIPSUseCase construye el caso de uso.
func NewRIPSUseCase(reportRepo repository.ReportRepository, orgRepo repository.OrganizationRepository) *RIPSUseCase {
	return &RIPSUseCase{reportRepo: reportRepo, orgRepo: orgRepo}
}

// Generate construye y valida el RIPS. Los errores de validación del paquete
// se devuelven envueltos en domain.ErrInvalidInput.
func (uc *RIPSUseCase) Generate(ctx context.Context, organizationID string, in dto.RIPSRequest) (*rips.Transaction, error) {
	invoice := strings.TrimSpace(in.InvoiceNumber)
	if invoice == "" || in.From.IsZero() || in.To.IsZero() || in.To.Before(in.From) {
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.reportRepo.DispensedLines(ctx, organizationID, in.From, in.To, strings.TrimSpace(in.EPSCode))
	if err != nil {
		return nil, err
	}
	tx, err := rips.Build(rips.Header{
		ObligatedNIT:  org.NIT,
		InvoiceNumber: invoice,
		ProviderCode:  org.ProviderCode,
	}, lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := rips.Validate(tx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return tx, nil
}
