package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un medicamento.
type CreateProductRequest struct {
	CUM                string          `json:"cum" validate:"required"`
	Name               string          `json:"name" validate:"required,min=1,max=300"`
	ActiveIngredient   string          `json:"active_ingredient"`
	Concentration      string          `json:"concentration"`
	PharmaceuticalForm string          `json:"pharmaceutical_form"`
	UnitMeasure        string          `json:"unit_measure"`
	MedicationType     string          `json:"medication_type" validate:"omitempty,oneof=01 02"`
	Price              decimal.Decimal `json:"price"`
}

// UpdateProductRequest campos opcionales; el CUM y el costo no se modifican.
type UpdateProductRequest struct {
	Name               *string          `json:"name"`
	ActiveIngredient   *string          `json:"active_ingredient"`
	Concentration      *string          `json:"concentration"`
	PharmaceuticalForm *string          `json:"pharmaceutical_form"`
	UnitMeasure        *string          `json:"unit_measure"`
	MedicationType     *string          `json:"medication_type"`
	Price              *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un medicamento.
type ProductResponse struct {
	ID                 string          `json:"id"`
	OrganizationID     string          `json:"organization_id"`
	CUM                string          `json:"cum"`
	Name               string          `json:"name"`
	ActiveIngredient   string          `json:"active_ingredient"`
	Concentration      string          `json:"concentration"`
	PharmaceuticalForm string          `json:"pharmaceutical_form"`
	UnitMeasure        string          `json:"unit_measure"`
	MedicationType     string          `json:"medication_type"`
	Price              decimal.Decimal `json:"price"`
	Cost               decimal.Decimal `json:"cost"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de medicamentos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
