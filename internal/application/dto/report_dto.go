package dto

import "time"

// RIPSRequest período y factura a reportar.
type RIPSRequest struct {
	From          time.Time
	To            time.Time
	EPSCode       string
	InvoiceNumber string
}

// SubmitMUVRequest body de POST /api/reports/muv.
// from/to en formato YYYY-MM-DD; xml_fev_base64 es la factura electrónica firmada.
type SubmitMUVRequest struct {
	From          string `json:"from" validate:"required"`
	To            string `json:"to" validate:"required"`
	EPSCode       string `json:"eps_code"`
	InvoiceNumber string `json:"invoice_number" validate:"required"`
	XMLFEVBase64  string `json:"xml_fev_base64" validate:"required"`
}

// MUVResultResponse resultado de la validación en el MUV.
type MUVResultResponse struct {
	ResultState  bool     `json:"result_state"`
	CUV          string   `json:"cuv,omitempty"`
	ProcessID    string   `json:"process_id,omitempty"`
	Observations []string `json:"observations"`
}
