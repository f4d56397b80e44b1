package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de medicamento para RIPS (tipoMedicamento).
const (
	MedicationTypePOS   = "01" // financiado con UPC
	MedicationTypeNoPOS = "02" // no financiado con UPC (MIPRES)
)

// Product representa un medicamento o insumo (multi-bodega).
// Cost es el promedio ponderado calculado desde las recepciones de compra.
type Product struct {
	ID                 string
	OrganizationID     string
	CUM                string // código único de medicamento (INVIMA), único por organización
	Name               string
	ActiveIngredient   string
	Concentration      string
	PharmaceuticalForm string
	UnitMeasure        string
	MedicationType     string
	Price              decimal.Decimal
	Cost               decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
