package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestReadCSV_Latin1(t *testing.T) {
	raw := "Código Departamento;Nombre Departamento;Código Municipio;Nombre Municipio\n" +
		"05;ANTIOQUIA;5001;MEDELLÍN\n" +
		"11;BOGOTÁ, D.C.;11001;BOGOTÁ, D.C.\n" +
		"99;X;abc;INVÁLIDO\n"
	var latin1 bytes.Buffer
	w := transform.NewWriter(&latin1, charmap.ISO8859_1.NewEncoder())
	_, err := w.Write([]byte(raw))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rows, err := readCSV(transform.NewReader(&latin1, charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, municipio{code: "05001", name: "MEDELLÍN", department: "ANTIOQUIA"}, rows[0])
	assert.Equal(t, "11001", rows[1].code)
}

func TestReadXML(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<parametros><tabla>
<valor cod="76001" nombre="Cali"><otro codigo="76" valor="Valle del Cauca"/></valor>
</tabla></parametros>`
	rows, err := readXML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, municipio{code: "76001", name: "Cali", department: "Valle del Cauca"}, rows[0])
}

func TestWriteSQL_EscapaYDeduplica(t *testing.T) {
	rows := dedupe([]municipio{
		{code: "05001", name: "Medellín", department: "Antioquia"},
		{code: "05001", name: "Medellín", department: "Antioquia"},
		{code: "05002", name: "Abejorral's", department: "Antioquia"},
	})
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, rows, "DIVIPOLA.csv"))
	sql := buf.String()
	assert.Equal(t, 2, strings.Count(sql, "('0500"))
	assert.Contains(t, sql, "'Abejorral''s'")
	assert.Contains(t, sql, "ON CONFLICT (code) DO UPDATE")
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "05001", normalizeCode("5001"))
	assert.Equal(t, "11001", normalizeCode(" 11001 "))
	assert.Empty(t, normalizeCode("123456"))
	assert.Empty(t, normalizeCode("A1"))
}
