package siigo_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/siigo"
)

func TestExport_FilasYConsecutivos(t *testing.T) {
	received := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	exp := time.Date(2028, 6, 30, 0, 0, 0, 0, time.UTC)
	line := func(receipt, cum, qty, cost string) repository.PurchaseExportLine {
		return repository.PurchaseExportLine{
			ReceiptID: receipt, InvoiceNumber: "FV-" + receipt, ReceivedAt: received,
			SupplierNIT: "900123456-8", SupplierName: "Droguería Andina", WarehouseName: "Bodega principal",
			CUM: cum, ProductName: "Producto " + cum,
			Quantity: decimal.RequireFromString(qty), UnitCost: decimal.RequireFromString(cost),
			Lot: "L1", ExpirationDate: &exp,
		}
	}
	lines := []repository.PurchaseExportLine{
		line("1", "A", "10", "95.5"),
		line("1", "B", "2", "1000"),
		line("2", "A", "1", "90"),
	}

	content, err := siigo.NewExporter().Export(lines)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Compras")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Tipo de comprobante", rows[0][0])
	assert.Equal(t, []string{"1", "1", "2"}, []string{rows[1][1], rows[2][1], rows[3][1]})
	assert.Equal(t, "05/03/2026", rows[1][4])
	assert.Equal(t, "FV-1", rows[1][5])
	assert.Equal(t, "955", rows[1][11])
	assert.Equal(t, "30/06/2028", rows[1][13])
}

func TestExport_SinLineasSoloEncabezado(t *testing.T) {
	content, err := siigo.NewExporter().Export(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Compras")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
