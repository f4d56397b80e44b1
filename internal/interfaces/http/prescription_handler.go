package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dispensing"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
)

// PrescriptionHandler maneja fórmulas médicas.
type PrescriptionHandler struct {
	uc *dispensing.PrescriptionUseCase
}

// NewPrescriptionHandler construye el handler.
func NewPrescriptionHandler(uc *dispensing.PrescriptionUseCase) *PrescriptionHandler {
	return &PrescriptionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar fórmula médica
// @Tags         prescriptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePrescriptionRequest  true  "Fórmula con sus líneas"
// @Success      201   {object}  dto.PrescriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prescriptions [post]
func (h *PrescriptionHandler) Create(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var in dto.CreatePrescriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.PatientID == "" || len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "patient_id e items son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), orgID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener fórmula
// @Tags         prescriptions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la fórmula"
// @Success      200  {object}  dto.PrescriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prescriptions/{id} [get]
func (h *PrescriptionHandler) GetByID(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(c.UserContext(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByPatient godoc
// @Summary      Fórmulas de un paciente
// @Tags         prescriptions
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del paciente"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.PrescriptionListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/patients/{id}/prescriptions [get]
func (h *PrescriptionHandler) ListByPatient(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	p := pageFromQuery(c)
	out, err := h.uc.ListByPatient(c.UserContext(), orgID, c.Params("id"), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular fórmula sin entregas
// @Tags         prescriptions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la fórmula"
// @Success      200  {object}  dto.PrescriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/prescriptions/{id}/cancel [post]
func (h *PrescriptionHandler) Cancel(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Cancel(c.UserContext(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
