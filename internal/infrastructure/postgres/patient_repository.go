package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

// PatientRepo implementación de PatientRepository (usable con pool o tx).
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

const patientColumns = `id, organization_id, document_type, document_number, first_name, second_name,
	first_surname, second_surname, birth_date, sex, eps_code, regime, user_type, municipality_code,
	zone, phone, address, created_at, updated_at`

func scanPatient(row pgx.Row) (*entity.Patient, error) {
	var p entity.Patient
	if err := row.Scan(&p.ID, &p.OrganizationID, &p.DocumentType, &p.DocumentNumber, &p.FirstName,
		&p.SecondName, &p.FirstSurname, &p.SecondSurname, &p.BirthDate, &p.Sex, &p.EPSCode, &p.Regime,
		&p.UserType, &p.MunicipalityCode, &p.Zone, &p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo paciente.
func (r *PatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	query := `INSERT INTO patients (` + patientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OrganizationID, p.DocumentType, p.DocumentNumber, p.FirstName, p.SecondName,
		p.FirstSurname, p.SecondSurname, p.BirthDate, p.Sex, p.EPSCode, p.Regime, p.UserType,
		p.MunicipalityCode, p.Zone, p.Phone, p.Address, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

// GetByID obtiene un paciente por ID.
func (r *PatientRepo) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	p, err := scanPatient(r.q.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

// GetByDocument obtiene un paciente por organización y documento de identidad.
func (r *PatientRepo) GetByDocument(ctx context.Context, organizationID, documentType, documentNumber string) (*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients
		WHERE organization_id = $1 AND document_type = $2 AND document_number = $3`
	p, err := scanPatient(r.q.QueryRow(ctx, query, organizationID, documentType, documentNumber))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient by document: %w", err)
	}
	return p, nil
}

// Update actualiza datos demográficos y de afiliación; el documento no cambia.
func (r *PatientRepo) Update(ctx context.Context, p *entity.Patient) error {
	query := `
		UPDATE patients SET first_name = $2, second_name = $3, first_surname = $4, second_surname = $5,
			birth_date = $6, sex = $7, eps_code = $8, regime = $9, user_type = $10, municipality_code = $11,
			zone = $12, phone = $13, address = $14, updated_at = $15
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.FirstName, p.SecondName, p.FirstSurname, p.SecondSurname, p.BirthDate, p.Sex,
		p.EPSCode, p.Regime, p.UserType, p.MunicipalityCode, p.Zone, p.Phone, p.Address, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List pacientes de la organización; search filtra por documento o nombre.
func (r *PatientRepo) List(ctx context.Context, organizationID, search string, limit, offset int) ([]*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients
		WHERE organization_id = $1
		  AND ($2 = '' OR document_number LIKE $2 || '%'
		       OR concat_ws(' ', first_name, second_name, first_surname, second_surname) ILIKE '%' || $2 || '%')
		ORDER BY first_surname, first_name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, organizationID, search, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// MunicipalityExists consulta el catálogo DIVIPOLA cargado por seed_municipios.
func (r *PatientRepo) MunicipalityExists(ctx context.Context, code string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM municipalities WHERE code = $1)`, code).Scan(&ok); err != nil {
		return false, fmt.Errorf("check municipality: %w", err)
	}
	return ok, nil
}
