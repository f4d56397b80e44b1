package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/farmacia-api/internal/application/analytics"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
)

// AnalyticsHandler maneja el dashboard y el reporte de consumo.
type AnalyticsHandler struct {
	dashboardUC   *appanalytics.DashboardUseCase
	consumptionUC *appanalytics.ConsumptionUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(dashboardUC *appanalytics.DashboardUseCase, consumptionUC *appanalytics.ConsumptionUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{dashboardUC: dashboardUC, consumptionUC: consumptionUC}
}

// GetDashboard devuelve el resumen operativo del día y del mes en curso.
// GET /api/dashboard
//
// Respuesta: DashboardSummaryDTO (patients, open_prescriptions, deliveries_today,
// deliveries_month, top_products[5], alerts, date_label).
// Las fechas se calculan en el servidor.
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	summary, err := h.dashboardUC.GetSummary(c.UserContext(), orgID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetConsumption godoc
// @Summary      Ranking de medicamentos dispensados (Pareto 80/20)
// @Description  Unidades entregadas por producto en el período, con participación,
// @Description  acumulado y los productos que concentran el 80% de la dispensación.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        top_n       query  int     false  "Máx. productos en el ranking (default 20, max 200)."
// @Success      200  {object}  dto.ConsumptionReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/consumption [get]
func (h *AnalyticsHandler) GetConsumption(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var req dto.ConsumptionReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	report, err := h.consumptionUC.GetReport(c.UserContext(), orgID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
