// Package muv adaptador HTTP de la API FEV-RIPS del Mecanismo Único de
// Validación (SISPRO).
package muv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jhoicas/farmacia-api/internal/application/reports"
	"github.com/jhoicas/farmacia-api/pkg/config"
)

var _ reports.MUVClient = (*Client)(nil)

const (
	loginPath  = "/api/Auth/LoginSISPRO"
	submitPath = "/api/PaquetesFevRips/CargarFevRips"

	maxResponseBytes = 4 << 20
)

// Client implementa reports.MUVClient.
type Client struct {
	cfg        config.MUVConfig
	httpClient *http.Client
}

// NewClient construye el cliente; devuelve nil si la integración no está configurada.
func NewClient(cfg config.MUVConfig) *Client {
	if !cfg.Enabled() {
		return nil
	}
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}
}

type loginRequest struct {
	Persona struct {
		Identificacion struct {
			Tipo   string `json:"tipo"`
			Numero string `json:"numero"`
		} `json:"identificacion"`
	} `json:"persona"`
	Clave string `json:"clave"`
	NIT   string `json:"nit"`
}

type loginResponse struct {
	Token  string   `json:"token"`
	Login  bool     `json:"login"`
	Errors []string `json:"errors"`
}

type submitRequest struct {
	RIPS       any    `json:"rips"`
	XMLFEVFile string `json:"xmlFevFile"`
}

type submitResponse struct {
	ResultState           bool   `json:"ResultState"`
	ProcesoID             int64  `json:"ProcesoId"`
	CodigoUnicoValidacion string `json:"CodigoUnicoValidacion"`
	ResultadosValidacion  []struct {
		Clase         string `json:"Clase"`
		Codigo        string `json:"Codigo"`
		Descripcion   string `json:"Descripcion"`
		Observaciones string `json:"Observaciones"`
	} `json:"ResultadosValidacion"`
}

// Submit inicia sesión y radica el paquete. Un rechazo de validación no es
// error: se devuelve con ResultState=false y sus observaciones.
func (c *Client) Submit(ctx context.Context, pkg reports.MUVPackage) (*reports.MUVResult, error) {
	token, err := c.login(ctx)
	if err != nil {
		return nil, err
	}
	var res submitResponse
	status, err := c.postJSON(ctx, submitPath, token, submitRequest{RIPS: pkg.RIPS, XMLFEVFile: pkg.XMLFEVBase64}, &res)
	if err != nil {
		return nil, err
	}
	// El MUV responde 400 con el detalle cuando el paquete tiene rechazos.
	if status != http.StatusOK && status != http.StatusBadRequest {
		return nil, fmt.Errorf("muv: radicación respondió %d", status)
	}
	out := &reports.MUVResult{
		ResultState:  res.ResultState,
		CUV:          res.CodigoUnicoValidacion,
		Observations: make([]string, 0, len(res.ResultadosValidacion)),
	}
	if res.ProcesoID != 0 {
		out.ProcessID = fmt.Sprintf("%d", res.ProcesoID)
	}
	for _, v := range res.ResultadosValidacion {
		msg := strings.TrimSpace(fmt.Sprintf("[%s] %s: %s %s", v.Clase, v.Codigo, v.Descripcion, v.Observaciones))
		out.Observations = append(out.Observations, msg)
	}
	return out, nil
}

func (c *Client) login(ctx context.Context) (string, error) {
	var body loginRequest
	body.Persona.Identificacion.Tipo = "CC"
	body.Persona.Identificacion.Numero = c.cfg.User
	body.Clave = c.cfg.Password
	body.NIT = c.cfg.NIT

	var res loginResponse
	status, err := c.postJSON(ctx, loginPath, "", body, &res)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK || !res.Login || res.Token == "" {
		return "", fmt.Errorf("muv: inicio de sesión rechazado (%d): %s", status, strings.Join(res.Errors, "; "))
	}
	return res.Token, nil
}

func (c *Client) postJSON(ctx context.Context, path, token string, in, out any) (int, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("muv: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("muv: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("muv: timeout o cancelación: %w", ctx.Err())
		}
		return 0, fmt.Errorf("muv: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("muv: leer respuesta: %w", err)
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("muv: respuesta inválida (%d): %w", resp.StatusCode, err)
		}
	}
	return resp.StatusCode, nil
}
