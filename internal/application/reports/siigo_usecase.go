package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// SiigoUseCase exporta las recepciones de compra al formato de importación de Siigo.
type SiigoUseCase struct {
	reportRepo repository.ReportRepository
	exporter   SiigoExporter
}

// NewSiigoUseCase construye el caso de uso.
func NewSiigoUseCase(reportRepo repository.ReportRepository, exporter SiigoExporter) *SiigoUseCase {
	return &SiigoUseCase{reportRepo: reportRepo, exporter: exporter}
}

// Export devuelve el .xlsx y su nombre de archivo.
func (uc *SiigoUseCase) Export(ctx context.Context, organizationID string, from, to time.Time) ([]byte, string, error) {
	if to.Before(from) {
		return nil, "", domain.ErrInvalidInput
	}
	lines, err := uc.reportRepo.PurchaseLines(ctx, organizationID, from, to)
	if err != nil {
		return nil, "", err
	}
	content, err := uc.exporter.Export(lines)
	if err != nil {
		return nil, "", fmt.Errorf("siigo: %w", err)
	}
	filename := fmt.Sprintf("compras_siigo_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	return content, filename, nil
}
