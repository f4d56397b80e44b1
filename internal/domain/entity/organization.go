package entity

import "time"

// Organization representa un tenant: IPS, gestor farmacéutico o cadena de dispensarios.
type Organization struct {
	ID      string
	Name    string
	NIT     string // NIT con dígito de verificación
	Address string
	Phone   string
	Email   string
	// ProviderCode código de habilitación REPS, usado como codPrestador en RIPS.
	ProviderCode string
	Status       string // active, suspended, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Módulos SaaS contratables (deben coincidir con el CHECK de organization_modules).
const (
	ModuleDispensing = "dispensing"
	ModulePurchasing = "purchasing"
	ModuleReports    = "reports"
)

// OrganizationModule activación de un módulo para una organización.
type OrganizationModule struct {
	ID             string
	OrganizationID string
	ModuleName     string
	IsActive       bool
	ActivatedAt    time.Time
	ExpiresAt      *time.Time // nil = sin vencimiento
}
