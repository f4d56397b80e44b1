package dto

import "time"

// PatientRequest entrada para crear o reemplazar un paciente.
type PatientRequest struct {
	DocumentType     string `json:"document_type" validate:"required"`
	DocumentNumber   string `json:"document_number" validate:"required"`
	FirstName        string `json:"first_name" validate:"required"`
	SecondName       string `json:"second_name"`
	FirstSurname     string `json:"first_surname" validate:"required"`
	SecondSurname    string `json:"second_surname"`
	BirthDate        string `json:"birth_date"` // YYYY-MM-DD
	Sex              string `json:"sex" validate:"omitempty,oneof=M F I"`
	EPSCode          string `json:"eps_code"`
	Regime           string `json:"regime"`
	UserType         string `json:"user_type"`
	MunicipalityCode string `json:"municipality_code"`
	Zone             string `json:"zone" validate:"omitempty,oneof=01 02"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
}

// PatientResponse salida de un paciente.
type PatientResponse struct {
	ID               string    `json:"id"`
	DocumentType     string    `json:"document_type"`
	DocumentNumber   string    `json:"document_number"`
	FirstName        string    `json:"first_name"`
	SecondName       string    `json:"second_name"`
	FirstSurname     string    `json:"first_surname"`
	SecondSurname    string    `json:"second_surname"`
	FullName         string    `json:"full_name"`
	BirthDate        string    `json:"birth_date,omitempty"`
	Sex              string    `json:"sex"`
	EPSCode          string    `json:"eps_code"`
	Regime           string    `json:"regime"`
	UserType         string    `json:"user_type"`
	MunicipalityCode string    `json:"municipality_code"`
	Zone             string    `json:"zone"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PatientListResponse lista paginada de pacientes.
type PatientListResponse struct {
	Items []PatientResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
