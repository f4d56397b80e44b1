package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleRegente  = "regente"  // químico farmacéutico / regente de farmacia
	RoleAuxiliar = "auxiliar" // auxiliar de dispensación
)

// User representa un usuario del sistema (pertenece a una Organization).
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string // bcrypt
	Name           string
	Role           string
	Status         string // active, inactive, suspended
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
