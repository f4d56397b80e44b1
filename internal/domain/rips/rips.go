// Package rips construye el Registro Individual de Prestación de Servicios de Salud
// en formato JSON (Resolución 2275 de 2023) para la dispensación de medicamentos.
package rips

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// Valores fijos de la tabla de referencia usados por un dispensario.
const (
	CountryColombia       = "170"
	NoDisability          = "NO"
	ConceptNotApplicable  = "05"
	DispenseDateLayout    = "2006-01-02 15:04"
	BirthDateLayout       = "2006-01-02"
	defaultPrescriberType = "CC"
)

// ErrInvalidRIPS agrupa los errores de validación del paquete.
var ErrInvalidRIPS = errors.New("RIPS inválido")

// Number valor numérico que se serializa sin comillas.
type Number decimal.Decimal

// MarshalJSON implementa json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

// Transaction raíz del JSON RIPS asociado a una factura.
type Transaction struct {
	NumDocumentoIdObligado string  `json:"numDocumentoIdObligado"`
	NumFactura             string  `json:"numFactura"`
	TipoNota               *string `json:"tipoNota"`
	NumNota                *string `json:"numNota"`
	Usuarios               []User  `json:"usuarios"`
}

// User usuario (paciente) atendido.
type User struct {
	TipoDocumentoIdentificacion  string   `json:"tipoDocumentoIdentificacion"`
	NumDocumentoIdentificacion   string   `json:"numDocumentoIdentificacion"`
	TipoUsuario                  string   `json:"tipoUsuario"`
	FechaNacimiento              string   `json:"fechaNacimiento"`
	CodSexo                      string   `json:"codSexo"`
	CodPaisResidencia            string   `json:"codPaisResidencia"`
	CodMunicipioResidencia       string   `json:"codMunicipioResidencia"`
	CodZonaTerritorialResidencia string   `json:"codZonaTerritorialResidencia"`
	Incapacidad                  string   `json:"incapacidad"`
	Consecutivo                  int      `json:"consecutivo"`
	CodPaisOrigen                string   `json:"codPaisOrigen"`
	Servicios                    Services `json:"servicios"`
}

// Services servicios prestados; solo medicamentos en un dispensario.
type Services struct {
	Medicamentos []Medication `json:"medicamentos"`
}

// Medication registro de medicamento dispensado.
type Medication struct {
	CodPrestador                string  `json:"codPrestador"`
	NumAutorizacion             *string `json:"numAutorizacion"`
	IdMIPRES                    *string `json:"idMIPRES"`
	FechaDispensAdmon           string  `json:"fechaDispensAdmon"`
	CodDiagnosticoPrincipal     string  `json:"codDiagnosticoPrincipal"`
	CodDiagnosticoRelacionado   *string `json:"codDiagnosticoRelacionado"`
	TipoMedicamento             string  `json:"tipoMedicamento"`
	CodTecnologiaSalud          string  `json:"codTecnologiaSalud"`
	NomTecnologiaSalud          string  `json:"nomTecnologiaSalud"`
	ConcentracionMedicamento    string  `json:"concentracionMedicamento"`
	UnidadMedida                string  `json:"unidadMedida"`
	FormaFarmaceutica           string  `json:"formaFarmaceutica"`
	UnidadMinDispensa           string  `json:"unidadMinDispensa"`
	CantidadMedicamento         Number  `json:"cantidadMedicamento"`
	DiasTratamiento             int     `json:"diasTratamiento"`
	TipoDocumentoIdentificacion string  `json:"tipoDocumentoIdentificacion"`
	NumDocumentoIdentificacion  string  `json:"numDocumentoIdentificacion"`
	VrUnitMedicamento           Number  `json:"vrUnitMedicamento"`
	VrServicio                  Number  `json:"vrServicio"`
	ConceptoRecaudo             string  `json:"conceptoRecaudo"`
	ValorPagoModerador          Number  `json:"valorPagoModerador"`
	NumFEVPagoModerador         *string `json:"numFEVPagoModerador"`
	Consecutivo                 int     `json:"consecutivo"`
}

// DispensedLine una línea entregada con el contexto necesario para el RIPS.
type DispensedLine struct {
	Patient       *entity.Patient
	Product       *entity.Product
	Prescription  *entity.Prescription // nil si la entrega no tiene fórmula
	TreatmentDays int
	Quantity      decimal.Decimal
	DeliveredAt   time.Time
}

// Header datos del obligado a reportar.
type Header struct {
	ObligatedNIT  string
	InvoiceNumber string
	ProviderCode  string // código de habilitación REPS del dispensario
}

// Build agrupa las líneas por paciente, en orden de primera aparición, y numera
// usuarios y medicamentos desde 1.
func Build(h Header, lines []DispensedLine) (*Transaction, error) {
	if h.ObligatedNIT == "" || h.InvoiceNumber == "" || h.ProviderCode == "" {
		return nil, fmt.Errorf("%w: NIT, número de factura y código de prestador son requeridos", ErrInvalidRIPS)
	}
	tx := &Transaction{
		NumDocumentoIdObligado: onlyDigits(h.ObligatedNIT),
		NumFactura:             h.InvoiceNumber,
		Usuarios:               []User{},
	}
	index := make(map[string]int)
	for i, l := range lines {
		if l.Patient == nil || l.Product == nil {
			return nil, fmt.Errorf("%w: línea %d sin paciente o producto", ErrInvalidRIPS, i+1)
		}
		pos, ok := index[l.Patient.ID]
		if !ok {
			tx.Usuarios = append(tx.Usuarios, newUser(l.Patient, len(tx.Usuarios)+1))
			pos = len(tx.Usuarios) - 1
			index[l.Patient.ID] = pos
		}
		u := &tx.Usuarios[pos]
		u.Servicios.Medicamentos = append(u.Servicios.Medicamentos,
			newMedication(h.ProviderCode, l, len(u.Servicios.Medicamentos)+1))
	}
	return tx, nil
}

func newUser(p *entity.Patient, consecutive int) User {
	birth := ""
	if !p.BirthDate.IsZero() {
		birth = p.BirthDate.Format(BirthDateLayout)
	}
	return User{
		TipoDocumentoIdentificacion:  p.DocumentType,
		NumDocumentoIdentificacion:   p.DocumentNumber,
		TipoUsuario:                  p.UserType,
		FechaNacimiento:              birth,
		CodSexo:                      p.Sex,
		CodPaisResidencia:            CountryColombia,
		CodMunicipioResidencia:       p.MunicipalityCode,
		CodZonaTerritorialResidencia: p.Zone,
		Incapacidad:                  NoDisability,
		Consecutivo:                  consecutive,
		CodPaisOrigen:                CountryColombia,
		Servicios:                    Services{Medicamentos: []Medication{}},
	}
}

func newMedication(providerCode string, l DispensedLine, consecutive int) Medication {
	unit := l.Product.Price
	m := Medication{
		CodPrestador:                providerCode,
		FechaDispensAdmon:           l.DeliveredAt.Format(DispenseDateLayout),
		TipoMedicamento:             l.Product.MedicationType,
		CodTecnologiaSalud:          l.Product.CUM,
		NomTecnologiaSalud:          NormalizeText(l.Product.Name),
		ConcentracionMedicamento:    NormalizeText(l.Product.Concentration),
		UnidadMedida:                NormalizeText(l.Product.UnitMeasure),
		FormaFarmaceutica:           NormalizeText(l.Product.PharmaceuticalForm),
		UnidadMinDispensa:           NormalizeText(l.Product.UnitMeasure),
		CantidadMedicamento:         Number(l.Quantity),
		DiasTratamiento:             l.TreatmentDays,
		TipoDocumentoIdentificacion: defaultPrescriberType,
		VrUnitMedicamento:           Number(unit.Round(2)),
		VrServicio:                  Number(unit.Mul(l.Quantity).Round(2)),
		ConceptoRecaudo:             ConceptNotApplicable,
		ValorPagoModerador:          Number(decimal.Zero),
		Consecutivo:                 consecutive,
	}
	if p := l.Prescription; p != nil {
		m.CodDiagnosticoPrincipal = p.DiagnosisCode
		m.CodDiagnosticoRelacionado = optional(p.RelatedDiagnosisCode)
		m.NumAutorizacion = optional(p.AuthorizationNumber)
		m.IdMIPRES = optional(p.MIPRESID)
		m.NumDocumentoIdentificacion = p.PrescriberDocument
	}
	return m
}

// Validate revisa los campos obligatorios del paquete y acumula todos los errores.
func Validate(tx *Transaction) error {
	var errs []error
	if len(tx.Usuarios) == 0 {
		errs = append(errs, fmt.Errorf("%w: sin usuarios", ErrInvalidRIPS))
	}
	for _, u := range tx.Usuarios {
		if u.NumDocumentoIdentificacion == "" || u.TipoDocumentoIdentificacion == "" {
			errs = append(errs, fmt.Errorf("%w: usuario %d sin documento", ErrInvalidRIPS, u.Consecutivo))
		}
		if len(u.CodMunicipioResidencia) != 5 {
			errs = append(errs, fmt.Errorf("%w: usuario %d con municipio inválido %q", ErrInvalidRIPS, u.Consecutivo, u.CodMunicipioResidencia))
		}
		for _, m := range u.Servicios.Medicamentos {
			if m.CodDiagnosticoPrincipal == "" {
				errs = append(errs, fmt.Errorf("%w: usuario %d medicamento %d sin diagnóstico principal", ErrInvalidRIPS, u.Consecutivo, m.Consecutivo))
			}
			if m.CodTecnologiaSalud == "" {
				errs = append(errs, fmt.Errorf("%w: usuario %d medicamento %d sin CUM", ErrInvalidRIPS, u.Consecutivo, m.Consecutivo))
			}
		}
	}
	return errors.Join(errs...)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func onlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
