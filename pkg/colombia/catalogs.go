package colombia

import "regexp"

// Tipos de documento de identificación (tabla TipoIdPISIS).
var DocumentTypes = map[string]string{
	"CC": "Cédula de ciudadanía",
	"TI": "Tarjeta de identidad",
	"RC": "Registro civil",
	"CE": "Cédula de extranjería",
	"PA": "Pasaporte",
	"PE": "Permiso especial de permanencia",
	"PT": "Permiso por protección temporal",
	"MS": "Menor sin identificación",
	"AS": "Adulto sin identificación",
	"CN": "Certificado de nacido vivo",
	"SC": "Salvoconducto",
	"DE": "Documento extranjero",
	"CD": "Carné diplomático",
}

// Tipos de usuario RIPS (tabla RIPSTipoUsuarioVersion2).
var UserTypes = map[string]string{
	"01": "Contributivo cotizante",
	"02": "Contributivo beneficiario",
	"03": "Contributivo adicional",
	"04": "Subsidiado",
	"05": "No asegurado",
	"06": "Especial o excepción cotizante",
	"07": "Especial o excepción beneficiario",
	"08": "Personas privadas de la libertad",
	"09": "Tomador / amparado ARL",
	"10": "Tomador / amparado SOAT",
	"11": "Tomador / amparado planes voluntarios de salud",
	"12": "Particular",
}

// Regímenes de afiliación.
const (
	RegimeContributivo = "contributivo"
	RegimeSubsidiado   = "subsidiado"
	RegimeEspecial     = "especial"
	RegimeParticular   = "particular"
)

var regimes = map[string]bool{
	RegimeContributivo: true, RegimeSubsidiado: true, RegimeEspecial: true, RegimeParticular: true,
}

// Sexo biológico (M, F, I indeterminado).
var sexes = map[string]bool{"M": true, "F": true, "I": true}

// Zona territorial de residencia.
const (
	ZoneUrban = "01"
	ZoneRural = "02"
)

var municipalityCode = regexp.MustCompile(`^\d{5}$`)

func ValidDocumentType(c string) bool { _, ok := DocumentTypes[c]; return ok }
func ValidUserType(c string) bool     { _, ok := UserTypes[c]; return ok }
func ValidRegime(c string) bool       { return regimes[c] }
func ValidSex(c string) bool          { return sexes[c] }
func ValidZone(c string) bool         { return c == ZoneUrban || c == ZoneRural }

// ValidMunicipalityCode código DIVIPOLA de 5 dígitos (2 de departamento + 3 de municipio).
func ValidMunicipalityCode(c string) bool { return municipalityCode.MatchString(c) }
