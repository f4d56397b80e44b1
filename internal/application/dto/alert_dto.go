package dto

import (
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// AlertListResponse alertas calculadas en el momento de la consulta.
type AlertListResponse struct {
	Total       int            `json:"total"`
	Alerts      []entity.Alert `json:"alerts"`
	GeneratedAt time.Time      `json:"generated_at"`
}
