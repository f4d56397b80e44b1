package entity

import "time"

// Patient representa un afiliado que recibe medicamentos.
// Los códigos siguen las tablas de referencia de RIPS (Resolución 2275 de 2023).
type Patient struct {
	ID               string
	OrganizationID   string
	DocumentType     string // CC, TI, RC, CE, PA, ...
	DocumentNumber   string
	FirstName        string
	SecondName       string
	FirstSurname     string
	SecondSurname    string
	BirthDate        time.Time
	Sex              string // M, F, I
	EPSCode          string
	Regime           string // contributivo, subsidiado, especial, particular
	UserType         string // tipoUsuario RIPS 01-12
	MunicipalityCode string // DIVIPOLA, 5 dígitos
	Zone             string // 01 urbana, 02 rural
	Phone            string
	Address          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName devuelve nombres y apellidos sin espacios sobrantes.
func (p *Patient) FullName() string {
	out := ""
	for _, part := range []string{p.FirstName, p.SecondName, p.FirstSurname, p.SecondSurname} {
		if part == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += part
	}
	return out
}
