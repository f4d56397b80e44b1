package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	domaininv "github.com/jhoicas/farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// Line un movimiento a aplicar dentro de una transacción abierta.
// Quantity siempre positiva; el signo lo define la operación.
type Line struct {
	TransactionID string
	ProductID     string
	WarehouseID   string
	Type          string // por defecto IN u OUT según la operación
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal // solo entradas
	ReferenceType string
	ReferenceID   string
	Lot           string
	UserID        string
	Date          time.Time
}

// ApplyIN bloquea la fila de stock, recalcula el costo promedio ponderado del
// producto, suma la cantidad y guarda el movimiento.
func ApplyIN(ctx context.Context, repos repository.TxRepos, l Line) error {
	if !l.Quantity.GreaterThan(decimal.Zero) || l.UnitCost.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	product, err := repos.Products.GetByID(ctx, l.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	stock, err := repos.Stock.GetForUpdate(ctx, l.ProductID, l.WarehouseID)
	if err != nil {
		return err
	}
	newCost := domaininv.CostCalculator(stock.Quantity, product.Cost, l.Quantity, l.UnitCost)
	if err := repos.Products.UpdateCost(ctx, l.ProductID, newCost); err != nil {
		return err
	}
	stock.Quantity = stock.Quantity.Add(l.Quantity)
	stock.UpdatedAt = l.Date
	if err := repos.Stock.Upsert(ctx, stock); err != nil {
		return err
	}
	return repos.Movements.Create(ctx, newMovement(l, entity.MovementTypeIN, l.Quantity, l.UnitCost))
}

// ApplyOUT bloquea la fila, verifica stock suficiente y descuenta al costo
// promedio vigente, que se devuelve para registrarlo en el documento.
func ApplyOUT(ctx context.Context, repos repository.TxRepos, l Line) (decimal.Decimal, error) {
	if !l.Quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	product, err := repos.Products.GetByID(ctx, l.ProductID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	stock, err := repos.Stock.GetForUpdate(ctx, l.ProductID, l.WarehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	if stock.Quantity.LessThan(l.Quantity) {
		return decimal.Zero, fmt.Errorf("%w: %s tiene %s, se requieren %s",
			domain.ErrInsufficientStock, product.Name, stock.Quantity.String(), l.Quantity.String())
	}
	stock.Quantity = stock.Quantity.Sub(l.Quantity)
	stock.UpdatedAt = l.Date
	if err := repos.Stock.Upsert(ctx, stock); err != nil {
		return decimal.Zero, err
	}
	cost := product.Cost
	if err := repos.Movements.Create(ctx, newMovement(l, entity.MovementTypeOUT, l.Quantity.Neg(), cost)); err != nil {
		return decimal.Zero, err
	}
	return cost, nil
}

// ApplyTransfer resta de l.WarehouseID y suma en toWarehouseID en la misma
// transacción; guarda dos movimientos TRANSFER al costo promedio.
func ApplyTransfer(ctx context.Context, repos repository.TxRepos, l Line, toWarehouseID string) error {
	if !l.Quantity.GreaterThan(decimal.Zero) || l.WarehouseID == toWarehouseID {
		return domain.ErrInvalidInput
	}
	product, err := repos.Products.GetByID(ctx, l.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	origin, err := repos.Stock.GetForUpdate(ctx, l.ProductID, l.WarehouseID)
	if err != nil {
		return err
	}
	if origin.Quantity.LessThan(l.Quantity) {
		return fmt.Errorf("%w: %s tiene %s en origen, se requieren %s",
			domain.ErrInsufficientStock, product.Name, origin.Quantity.String(), l.Quantity.String())
	}
	dest, err := repos.Stock.GetForUpdate(ctx, l.ProductID, toWarehouseID)
	if err != nil {
		return err
	}
	origin.Quantity = origin.Quantity.Sub(l.Quantity)
	dest.Quantity = dest.Quantity.Add(l.Quantity)
	origin.UpdatedAt = l.Date
	dest.UpdatedAt = l.Date
	if err := repos.Stock.Upsert(ctx, origin); err != nil {
		return err
	}
	if err := repos.Stock.Upsert(ctx, dest); err != nil {
		return err
	}
	l.Type = entity.MovementTypeTRANSFER
	if err := repos.Movements.Create(ctx, newMovement(l, entity.MovementTypeTRANSFER, l.Quantity.Neg(), product.Cost)); err != nil {
		return err
	}
	in := l
	in.WarehouseID = toWarehouseID
	return repos.Movements.Create(ctx, newMovement(in, entity.MovementTypeTRANSFER, l.Quantity, product.Cost))
}

func newMovement(l Line, defaultType string, qty, unitCost decimal.Decimal) *entity.InventoryMovement {
	typ := l.Type
	if typ == "" {
		typ = defaultType
	}
	refType := l.ReferenceType
	if refType == "" {
		refType = entity.ReferenceManual
	}
	return &entity.InventoryMovement{
		ID:            uuid.New().String(),
		TransactionID: l.TransactionID,
		ProductID:     l.ProductID,
		WarehouseID:   l.WarehouseID,
		Type:          typ,
		Quantity:      qty,
		UnitCost:      unitCost,
		TotalCost:     qty.Mul(unitCost),
		ReferenceType: refType,
		ReferenceID:   l.ReferenceID,
		Lot:           l.Lot,
		Date:          l.Date,
		CreatedAt:     l.Date,
		CreatedBy:     l.UserID,
	}
}
