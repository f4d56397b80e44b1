package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// StockLevel stock de un producto en una bodega con datos del producto para listados.
type StockLevel struct {
	ProductID   string
	ProductName string
	CUM         string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	UpdatedAt   time.Time
}

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
// Get y GetForUpdate devuelven cantidad cero si no existe la fila.
type StockRepository interface {
	Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	ListByWarehouse(ctx context.Context, warehouseID string) ([]StockLevel, error)
}
