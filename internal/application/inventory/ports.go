package inventory

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario y los documentos que lo usan
// (entregas, devoluciones, recepciones, traslados).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}
