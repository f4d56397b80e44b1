package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	ErrInvalidWarehouseType = errors.New("tipo de bodega inválido para la operación")
	ErrInactiveWarehouse    = errors.New("la bodega no está activa")
	ErrExceedsPrescribed    = errors.New("la cantidad supera lo formulado pendiente")
	ErrExceedsDelivered     = errors.New("la cantidad supera lo entregado pendiente de devolución")
	ErrMUVDisabled          = errors.New("integración MUV deshabilitada")
)
