package entity

import "time"

// SupplierScore calificación acumulada de un proveedor. Una fila por proveedor,
// creada en la primera actualización y nunca eliminada. Cada eje está en [0,100].
type SupplierScore struct {
	SupplierID       string
	Price            int
	Delivery         int
	Quality          int
	Payment          int
	Discount         int
	Tracking         int
	Overall          int
	TotalOrders      int
	OnTimeDeliveries int
	UpdatedAt        time.Time
}
