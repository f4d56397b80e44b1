package muv_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/reports"
	"github.com/jhoicas/farmacia-api/internal/domain/rips"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/muv"
	"github.com/jhoicas/farmacia-api/pkg/config"
)

func newServer(t *testing.T, submit http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Auth/LoginSISPRO", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["clave"] != "secreta" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"login":false,"errors":["Credenciales inválidas"]}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok-1","login":true}`))
	})
	mux.HandleFunc("/api/PaquetesFevRips/CargarFevRips", submit)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func cfg(url, password string) config.MUVConfig {
	return config.MUVConfig{BaseURL: url, User: "1036654321", Password: password, NIT: "900123456", Timeout: 5 * time.Second}
}

func pkg() reports.MUVPackage {
	return reports.MUVPackage{
		RIPS:         &rips.Transaction{NumDocumentoIdObligado: "9001234568", NumFactura: "FE-10", Usuarios: []rips.User{}},
		XMLFEVBase64: "PEludm9pY2UvPg==",
	}
}

func TestNewClient_DeshabilitadoSinURL(t *testing.T) {
	assert.Nil(t, muv.NewClient(config.MUVConfig{}))
}

func TestSubmit_Aceptado(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		var body struct {
			RIPS       map[string]any `json:"rips"`
			XMLFEVFile string         `json:"xmlFevFile"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "FE-10", body.RIPS["numFactura"])
		assert.Equal(t, "PEludm9pY2UvPg==", body.XMLFEVFile)
		_, _ = w.Write([]byte(`{"ResultState":true,"ProcesoId":991,"CodigoUnicoValidacion":"cuv-abc","ResultadosValidacion":[]}`))
	})

	res, err := muv.NewClient(cfg(srv.URL, "secreta")).Submit(context.Background(), pkg())
	require.NoError(t, err)
	assert.True(t, res.ResultState)
	assert.Equal(t, "cuv-abc", res.CUV)
	assert.Equal(t, "991", res.ProcessID)
	assert.Empty(t, res.Observations)
}

func TestSubmit_RechazoConObservaciones(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ResultState":false,"ResultadosValidacion":[{"Clase":"RECHAZADO","Codigo":"RVG02","Descripcion":"Factura no encontrada","Observaciones":""}]}`))
	})

	res, err := muv.NewClient(cfg(srv.URL, "secreta")).Submit(context.Background(), pkg())
	require.NoError(t, err)
	assert.False(t, res.ResultState)
	assert.Equal(t, []string{"[RECHAZADO] RVG02: Factura no encontrada"}, res.Observations)
}

func TestSubmit_LoginRechazado(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no debe radicar sin sesión")
	})

	_, err := muv.NewClient(cfg(srv.URL, "otra")).Submit(context.Background(), pkg())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Credenciales inválidas")
}

func TestSubmit_ErrorDelServidor(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := muv.NewClient(cfg(srv.URL, "secreta")).Submit(context.Background(), pkg())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
