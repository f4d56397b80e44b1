package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePrescriptionRequest fórmula médica con sus líneas.
type CreatePrescriptionRequest struct {
	PatientID            string                          `json:"patient_id" validate:"required,uuid"`
	PrescriberName       string                          `json:"prescriber_name"`
	PrescriberDocument   string                          `json:"prescriber_document"`
	DiagnosisCode        string                          `json:"diagnosis_code" validate:"required"`
	RelatedDiagnosisCode string                          `json:"related_diagnosis_code"`
	AuthorizationNumber  string                          `json:"authorization_number"`
	MIPRESID             string                          `json:"mipres_id"`
	IssuedAt             *time.Time                      `json:"issued_at"`
	Items                []CreatePrescriptionItemRequest `json:"items" validate:"required,min=1"`
}

// CreatePrescriptionItemRequest línea formulada.
type CreatePrescriptionItemRequest struct {
	ProductID          string          `json:"product_id" validate:"required,uuid"`
	QuantityPrescribed decimal.Decimal `json:"quantity_prescribed"`
	TreatmentDays      int             `json:"treatment_days"`
}

// PrescriptionItemResponse línea con lo entregado y lo pendiente.
type PrescriptionItemResponse struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"product_id"`
	QuantityPrescribed decimal.Decimal `json:"quantity_prescribed"`
	QuantityDelivered  decimal.Decimal `json:"quantity_delivered"`
	QuantityPending    decimal.Decimal `json:"quantity_pending"`
	TreatmentDays      int             `json:"treatment_days"`
}

// PrescriptionResponse salida de una fórmula.
type PrescriptionResponse struct {
	ID                   string                     `json:"id"`
	PatientID            string                     `json:"patient_id"`
	PrescriberName       string                     `json:"prescriber_name"`
	PrescriberDocument   string                     `json:"prescriber_document"`
	DiagnosisCode        string                     `json:"diagnosis_code"`
	RelatedDiagnosisCode string                     `json:"related_diagnosis_code,omitempty"`
	AuthorizationNumber  string                     `json:"authorization_number,omitempty"`
	MIPRESID             string                     `json:"mipres_id,omitempty"`
	IssuedAt             time.Time                  `json:"issued_at"`
	Status               string                     `json:"status"`
	Items                []PrescriptionItemResponse `json:"items"`
	CreatedAt            time.Time                  `json:"created_at"`
}

// PrescriptionListResponse fórmulas de un paciente.
type PrescriptionListResponse struct {
	Items []PrescriptionResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
