// Package siigo genera el libro de importación de compras de Siigo Nube.
package siigo

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/farmacia-api/internal/application/reports"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ reports.SiigoExporter = (*Exporter)(nil)

const (
	sheetName   = "Compras"
	dateLayout  = "02/01/2006"
	voucherType = "FC"
)

var headers = []string{
	"Tipo de comprobante",
	"Consecutivo",
	"Identificación proveedor",
	"Nombre proveedor",
	"Fecha de elaboración",
	"Factura proveedor",
	"Código producto",
	"Descripción producto",
	"Bodega",
	"Cantidad",
	"Valor unitario",
	"Valor total",
	"Lote",
	"Fecha de vencimiento",
}

var widths = []float64{12, 12, 18, 32, 14, 16, 16, 40, 22, 10, 14, 16, 14, 14}

// Exporter implementa reports.SiigoExporter con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Export escribe una fila por línea recibida; las líneas de una misma
// recepción comparten consecutivo.
func (e *Exporter) Export(lines []repository.PurchaseExportLine) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, err
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(sheetName, "A1", last+"1", headerStyle)
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, w)
	}

	consecutive := 0
	prevReceipt := ""
	for i, l := range lines {
		if l.ReceiptID != prevReceipt {
			consecutive++
			prevReceipt = l.ReceiptID
		}
		row := i + 2
		qty, _ := l.Quantity.Float64()
		unit, _ := l.UnitCost.Float64()
		total, _ := l.Quantity.Mul(l.UnitCost).Round(2).Float64()
		expiration := ""
		if l.ExpirationDate != nil {
			expiration = l.ExpirationDate.Format(dateLayout)
		}
		values := []any{
			voucherType,
			consecutive,
			l.SupplierNIT,
			l.SupplierName,
			l.ReceivedAt.Format(dateLayout),
			l.InvoiceNumber,
			l.CUM,
			l.ProductName,
			l.WarehouseName,
			qty,
			unit,
			total,
			l.Lot,
			expiration,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("fila %d: %w", row, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
