package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una fórmula médica.
const (
	PrescriptionPending   = "pending"
	PrescriptionPartial   = "partial"
	PrescriptionCompleted = "completed"
	PrescriptionCancelled = "cancelled"
)

// Prescription fórmula médica de un paciente.
type Prescription struct {
	ID                   string
	OrganizationID       string
	PatientID            string
	PrescriberName       string
	PrescriberDocument   string
	DiagnosisCode        string // CIE-10
	RelatedDiagnosisCode string
	AuthorizationNumber  string
	MIPRESID             string
	IssuedAt             time.Time
	Status               string
	Items                []PrescriptionItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PrescriptionItem línea de la fórmula.
type PrescriptionItem struct {
	ID                 string
	PrescriptionID     string
	ProductID          string
	QuantityPrescribed decimal.Decimal
	QuantityDelivered  decimal.Decimal
	TreatmentDays      int
}

// Pending cantidad pendiente por entregar.
func (i PrescriptionItem) Pending() decimal.Decimal {
	p := i.QuantityPrescribed.Sub(i.QuantityDelivered)
	if p.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return p
}

// RecomputeStatus deriva el estado desde las cantidades entregadas.
// Una fórmula anulada conserva su estado.
func (p *Prescription) RecomputeStatus() {
	if p.Status == PrescriptionCancelled {
		return
	}
	var delivered, complete bool
	complete = len(p.Items) > 0
	for _, it := range p.Items {
		if it.QuantityDelivered.GreaterThan(decimal.Zero) {
			delivered = true
		}
		if it.Pending().GreaterThan(decimal.Zero) {
			complete = false
		}
	}
	switch {
	case complete:
		p.Status = PrescriptionCompleted
	case delivered:
		p.Status = PrescriptionPartial
	default:
		p.Status = PrescriptionPending
	}
}

// HasDeliveries indica si alguna línea ya tuvo entregas.
func (p *Prescription) HasDeliveries() bool {
	for _, it := range p.Items {
		if it.QuantityDelivered.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}
