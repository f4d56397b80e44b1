// Package reports genera los reportes regulatorios y contables: RIPS en JSON,
// su envío al MUV y la exportación de compras para Siigo.
package reports

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/internal/domain/rips"
)

// MUVPackage paquete FEV-RIPS: la factura electrónica firmada y su RIPS.
type MUVPackage struct {
	RIPS         *rips.Transaction
	XMLFEVBase64 string
}

// MUVResult respuesta del Mecanismo Único de Validación.
type MUVResult struct {
	ResultState  bool
	CUV          string // código único de validación, vacío si fue rechazado
	ProcessID    string
	Observations []string
}

// MUVClient puerto de salida hacia la API FEV-RIPS de SISPRO.
type MUVClient interface {
	Submit(ctx context.Context, pkg MUVPackage) (*MUVResult, error)
}

// SiigoExporter arma el libro de importación de compras de Siigo.
type SiigoExporter interface {
	Export(lines []repository.PurchaseExportLine) ([]byte, error)
}
