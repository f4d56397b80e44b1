package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// SeedWarehouse crea una bodega activa del tipo indicado.
func (s *Store) SeedWarehouse(orgID, name, typ string) *entity.Warehouse {
	w := &entity.Warehouse{
		ID: uuid.New().String(), OrganizationID: orgID, Name: name, Type: typ, IsActive: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	_ = s.Warehouses().Create(context.Background(), w)
	return w
}

// SeedProduct crea un medicamento con costo promedio inicial.
func (s *Store) SeedProduct(orgID, cum, name string, cost decimal.Decimal) *entity.Product {
	p := &entity.Product{
		ID: uuid.New().String(), OrganizationID: orgID, CUM: cum, Name: name,
		MedicationType: entity.MedicationTypePOS, Price: cost.Mul(decimal.NewFromInt(2)), Cost: cost,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	_ = s.Products().Create(context.Background(), p)
	return p
}

// SeedPatient crea un paciente con documento CC.
func (s *Store) SeedPatient(orgID, document string) *entity.Patient {
	p := &entity.Patient{
		ID: uuid.New().String(), OrganizationID: orgID, DocumentType: "CC", DocumentNumber: document,
		FirstName: "Ana", FirstSurname: "Pérez", Sex: "F", UserType: "01", MunicipalityCode: "05001",
		Zone: "01", EPSCode: "EPS001", BirthDate: time.Date(1980, 5, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	_ = s.Patients().Create(context.Background(), p)
	return p
}

// SeedSupplier crea un proveedor activo.
func (s *Store) SeedSupplier(orgID, name string) *entity.Supplier {
	sp := &entity.Supplier{
		ID: uuid.New().String(), OrganizationID: orgID, Name: name, NIT: "900123456-8", IsActive: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	_ = s.Suppliers().Create(context.Background(), sp)
	return sp
}
