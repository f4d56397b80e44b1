package dto

import "time"

// CreateOrganizationRequest entrada para crear una organización (tenant).
type CreateOrganizationRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	NIT          string `json:"nit" validate:"required"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	ProviderCode string `json:"provider_code"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	NIT          string    `json:"nit"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	ProviderCode string    `json:"provider_code"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OrganizationListResponse lista paginada de organizaciones.
type OrganizationListResponse struct {
	Items []OrganizationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// ActivateModuleRequest activa (o desactiva) un módulo para la organización del token.
type ActivateModuleRequest struct {
	ModuleName string     `json:"module_name" validate:"required,oneof=dispensing purchasing reports"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// ModuleResponse estado de un módulo.
type ModuleResponse struct {
	ModuleName  string     `json:"module_name"`
	IsActive    bool       `json:"is_active"`
	ActivatedAt time.Time  `json:"activated_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
