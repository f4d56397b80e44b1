package entity

import "time"

// Tipos de bodega.
const (
	WarehouseTypeDispensario = "dispensario" // punto de entrega a pacientes
	WarehouseTypeBodega      = "bodega"      // bodega central de abastecimiento
)

// Warehouse representa un dispensario o una bodega de abastecimiento.
type Warehouse struct {
	ID             string
	OrganizationID string
	Name           string
	Address        string
	Type           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDispensary indica si la bodega entrega medicamentos a pacientes.
func (w *Warehouse) IsDispensary() bool { return w.Type == WarehouseTypeDispensario }

// ValidWarehouseType valida el tipo de bodega.
func ValidWarehouseType(t string) bool {
	return t == WarehouseTypeDispensario || t == WarehouseTypeBodega
}
