// seed_municipios genera la migración con el catálogo DIVIPOLA de municipios,
// requerido para validar el municipio de residencia de los pacientes (RIPS).
//
// Acepta el CSV del DANE (separado por ';', ISO-8859-1) o el Municipios.xml
// de tablas paramétricas de la DIAN.
//
// Uso: go run ./cmd/seed_municipios [ruta/DIVIPOLA.csv | ruta/Municipios.xml]
// Escribe: internal/infrastructure/postgres/migrations/002_seed_municipios.sql
package main

import (
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type municipio struct {
	code, name, department string
}

type parametros struct {
	Tabla struct {
		Valores []valor `xml:"valor"`
	} `xml:"tabla"`
}

type valor struct {
	Cod    string `xml:"cod,attr"`
	Nombre string `xml:"nombre,attr"`
	Otro   struct {
		Codigo string `xml:"codigo,attr"`
		Valor  string `xml:"valor,attr"`
	} `xml:"otro"`
}

func main() {
	path := "DIVIPOLA.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir archivo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var rows []municipio
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		rows, err = readXML(f)
	} else {
		rows, err = readCSV(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer %s: %v\n", path, err)
		os.Exit(1)
	}
	rows = dedupe(rows)

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_municipios.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows, filepath.Base(path)); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d municipios\n", outPath, len(rows))
}

// readCSV espera columnas: código depto; nombre depto; código municipio; nombre municipio.
// La primera fila es encabezado.
func readCSV(r io.Reader) ([]municipio, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	var out []municipio
	for i, rec := range records {
		if i == 0 || len(rec) < 4 {
			continue
		}
		code := normalizeCode(rec[2])
		if code == "" {
			continue
		}
		out = append(out, municipio{
			code:       code,
			name:       strings.TrimSpace(rec[3]),
			department: strings.TrimSpace(rec[1]),
		})
	}
	return out, nil
}

func readXML(r io.Reader) ([]municipio, error) {
	var p parametros
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	var out []municipio
	for _, v := range p.Tabla.Valores {
		code := normalizeCode(v.Cod)
		if code == "" || v.Nombre == "" {
			continue
		}
		out = append(out, municipio{
			code:       code,
			name:       strings.TrimSpace(v.Nombre),
			department: strings.TrimSpace(v.Otro.Valor),
		})
	}
	return out, nil
}

// normalizeCode deja el código DANE en 5 dígitos; Excel suele perder el cero inicial.
func normalizeCode(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "0123456789") != "" || len(s) > 5 {
		return ""
	}
	return strings.Repeat("0", 5-len(s)) + s
}

func dedupe(rows []municipio) []municipio {
	byCode := make(map[string]municipio, len(rows))
	for _, m := range rows {
		byCode[m.code] = m
	}
	out := make([]municipio, 0, len(byCode))
	for _, m := range byCode {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].code < out[j].code })
	return out
}

func writeSQL(w io.Writer, rows []municipio, source string) error {
	if _, err := fmt.Fprintf(w, "-- Municipios de Colombia (DIVIPOLA, código DANE)\n-- Generado desde %s con cmd/seed_municipios\n\n", source); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "INSERT INTO municipalities (code, name, department) VALUES\n"); err != nil {
		return err
	}
	for i, m := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "  ('%s', '%s', '%s')%s\n", m.code, escapeSQL(m.name), escapeSQL(m.department), sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, department = EXCLUDED.department;\n")
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
