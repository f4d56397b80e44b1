package repository

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// PrescriptionRepository define el puerto de persistencia para fórmulas médicas.
// GetByID y GetForUpdate cargan las líneas.
type PrescriptionRepository interface {
	Create(ctx context.Context, p *entity.Prescription) error
	GetByID(ctx context.Context, id string) (*entity.Prescription, error)
	// GetForUpdate bloquea la fórmula y sus líneas hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Prescription, error)
	// UpdateProgress persiste estado y cantidades entregadas de cada línea.
	UpdateProgress(ctx context.Context, p *entity.Prescription) error
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*entity.Prescription, error)
	// CountOpen fórmulas pendientes o parciales de la organización.
	CountOpen(ctx context.Context, organizationID string) (int, error)
}
