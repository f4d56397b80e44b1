package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/pkg/colombia"
)

const dateLayout = "2006-01-02"

// PatientUseCase registro de afiliados con los códigos que exige RIPS.
type PatientUseCase struct {
	repo repository.PatientRepository
}

// NewPatientUseCase construye el caso de uso.
func NewPatientUseCase(repo repository.PatientRepository) *PatientUseCase {
	return &PatientUseCase{repo: repo}
}

// Create registra un paciente. (organización, tipo y número de documento) es único.
func (uc *PatientUseCase) Create(ctx context.Context, organizationID string, in dto.PatientRequest) (*dto.PatientResponse, error) {
	p := &entity.Patient{ID: uuid.New().String(), OrganizationID: organizationID}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByDocument(ctx, organizationID, p.DocumentType, p.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// GetByID obtiene un paciente de la organización.
func (uc *PatientUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.PatientResponse, error) {
	p, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// Update reemplaza los datos del paciente.
func (uc *PatientUseCase) Update(ctx context.Context, organizationID, id string, in dto.PatientRequest) (*dto.PatientResponse, error) {
	p, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// List pacientes; search filtra por documento o nombre.
func (uc *PatientUseCase) List(ctx context.Context, organizationID, search string, limit, offset int) (*dto.PatientListResponse, error) {
	list, err := uc.repo.List(ctx, organizationID, strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PatientResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPatientResponse(p))
	}
	return &dto.PatientListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *PatientUseCase) get(ctx context.Context, organizationID, id string) (*entity.Patient, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// apply valida el request contra los catálogos y lo copia en la entidad.
func (uc *PatientUseCase) apply(ctx context.Context, p *entity.Patient, in dto.PatientRequest) error {
	in.DocumentType = strings.ToUpper(strings.TrimSpace(in.DocumentType))
	in.DocumentNumber = strings.TrimSpace(in.DocumentNumber)
	in.Sex = strings.ToUpper(strings.TrimSpace(in.Sex))
	in.Regime = strings.ToLower(strings.TrimSpace(in.Regime))

	switch {
	case !colombia.ValidDocumentType(in.DocumentType):
		return fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, in.DocumentType)
	case in.DocumentNumber == "":
		return fmt.Errorf("%w: número de documento requerido", domain.ErrInvalidInput)
	case strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.FirstSurname) == "":
		return fmt.Errorf("%w: primer nombre y primer apellido requeridos", domain.ErrInvalidInput)
	case in.Sex != "" && !colombia.ValidSex(in.Sex):
		return fmt.Errorf("%w: sexo %q", domain.ErrInvalidInput, in.Sex)
	case in.Regime != "" && !colombia.ValidRegime(in.Regime):
		return fmt.Errorf("%w: régimen %q", domain.ErrInvalidInput, in.Regime)
	case in.UserType != "" && !colombia.ValidUserType(in.UserType):
		return fmt.Errorf("%w: tipo de usuario %q", domain.ErrInvalidInput, in.UserType)
	case in.Zone != "" && !colombia.ValidZone(in.Zone):
		return fmt.Errorf("%w: zona %q", domain.ErrInvalidInput, in.Zone)
	}

	var birth time.Time
	if in.BirthDate != "" {
		t, err := time.Parse(dateLayout, in.BirthDate)
		if err != nil || t.After(time.Now()) {
			return fmt.Errorf("%w: fecha de nacimiento %q", domain.ErrInvalidInput, in.BirthDate)
		}
		birth = t
	}
	if in.MunicipalityCode != "" {
		if !colombia.ValidMunicipalityCode(in.MunicipalityCode) {
			return fmt.Errorf("%w: código de municipio %q", domain.ErrInvalidInput, in.MunicipalityCode)
		}
		ok, err := uc.repo.MunicipalityExists(ctx, in.MunicipalityCode)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: municipio %s no existe", domain.ErrInvalidInput, in.MunicipalityCode)
		}
	}

	p.DocumentType = in.DocumentType
	p.DocumentNumber = in.DocumentNumber
	p.FirstName = strings.TrimSpace(in.FirstName)
	p.SecondName = strings.TrimSpace(in.SecondName)
	p.FirstSurname = strings.TrimSpace(in.FirstSurname)
	p.SecondSurname = strings.TrimSpace(in.SecondSurname)
	p.BirthDate = birth
	p.Sex = in.Sex
	p.EPSCode = strings.TrimSpace(in.EPSCode)
	p.Regime = in.Regime
	p.UserType = in.UserType
	p.MunicipalityCode = in.MunicipalityCode
	p.Zone = in.Zone
	p.Phone = in.Phone
	p.Address = in.Address
	return nil
}

func toPatientResponse(p *entity.Patient) *dto.PatientResponse {
	out := &dto.PatientResponse{
		ID:               p.ID,
		DocumentType:     p.DocumentType,
		DocumentNumber:   p.DocumentNumber,
		FirstName:        p.FirstName,
		SecondName:       p.SecondName,
		FirstSurname:     p.FirstSurname,
		SecondSurname:    p.SecondSurname,
		FullName:         p.FullName(),
		Sex:              p.Sex,
		EPSCode:          p.EPSCode,
		Regime:           p.Regime,
		UserType:         p.UserType,
		MunicipalityCode: p.MunicipalityCode,
		Zone:             p.Zone,
		Phone:            p.Phone,
		Address:          p.Address,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if !p.BirthDate.IsZero() {
		out.BirthDate = p.BirthDate.Format(dateLayout)
	}
	return out
}
