package repository

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// PatientRepository define el puerto de persistencia para pacientes.
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	GetByID(ctx context.Context, id string) (*entity.Patient, error)
	GetByDocument(ctx context.Context, organizationID, documentType, documentNumber string) (*entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	// List search filtra por número de documento o nombre.
	List(ctx context.Context, organizationID, search string, limit, offset int) ([]*entity.Patient, error)
	// MunicipalityExists consulta el catálogo DIVIPOLA.
	MunicipalityExists(ctx context.Context, code string) (bool, error)
}
