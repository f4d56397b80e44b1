package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler maneja RIPS, radicación en el MUV y exportación a Siigo.
type ReportHandler struct {
	ripsUC  *reports.RIPSUseCase
	muvUC   *reports.MUVUseCase
	siigoUC *reports.SiigoUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(ripsUC *reports.RIPSUseCase, muvUC *reports.MUVUseCase, siigoUC *reports.SiigoUseCase) *ReportHandler {
	return &ReportHandler{ripsUC: ripsUC, muvUC: muvUC, siigoUC: siigoUC}
}

// GetRIPS godoc
// @Summary      RIPS de medicamentos (Resolución 2275 de 2023)
// @Description  Un usuario por paciente con entregas en el período y sus medicamentos dispensados.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from            query  string  true   "Desde (YYYY-MM-DD)"
// @Param        to              query  string  true   "Hasta (YYYY-MM-DD)"
// @Param        invoice_number  query  string  true   "Número de la factura electrónica"
// @Param        eps_code        query  string  false  "Solo pacientes de esta EPS"
// @Success      200  {object}  rips.Transaction
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/rips [get]
func (h *ReportHandler) GetRIPS(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	from, to, ok := requiredDateRange(c)
	if !ok {
		return badRequest(c, "INVALID_DATE", "from y to son requeridos con formato YYYY-MM-DD")
	}
	invoice := c.Query("invoice_number")
	if invoice == "" {
		return badRequest(c, "VALIDATION", "invoice_number es requerido")
	}
	tx, err := h.ripsUC.Generate(c.UserContext(), orgID, dto.RIPSRequest{
		From:          from,
		To:            to,
		EPSCode:       c.Query("eps_code"),
		InvoiceNumber: invoice,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(tx)
}

// SubmitMUV godoc
// @Summary      Radicar RIPS y factura en el MUV (SISPRO)
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitMUVRequest  true  "Período, factura y XML de la factura en base64"
// @Success      200   {object}  dto.MUVResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse  "integración deshabilitada"
// @Router       /api/reports/muv [post]
func (h *ReportHandler) SubmitMUV(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var in dto.SubmitMUVRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.muvUC.Submit(c.UserContext(), orgID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportSiigo godoc
// @Summary      Exportar compras para Siigo (.xlsx)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  true  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  true  "Hasta (YYYY-MM-DD)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/siigo [get]
func (h *ReportHandler) ExportSiigo(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	from, to, ok := requiredDateRange(c)
	if !ok {
		return badRequest(c, "INVALID_DATE", "from y to son requeridos con formato YYYY-MM-DD")
	}
	content, filename, err := h.siigoUC.Export(c.UserContext(), orgID, from, to)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}
