package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dispensing"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// DeliveryHandler maneja la dispensación y las devoluciones de pacientes.
type DeliveryHandler struct {
	deliveryUC *dispensing.DeliveryUseCase
	returnUC   *dispensing.ReturnUseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(deliveryUC *dispensing.DeliveryUseCase, returnUC *dispensing.ReturnUseCase) *DeliveryHandler {
	return &DeliveryHandler{deliveryUC: deliveryUC, returnUC: returnUC}
}

// Create godoc
// @Summary      Dispensar medicamentos a un paciente
// @Description  Descuenta stock del dispensario (salida por entrega) y actualiza la fórmula asociada.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "Entrega"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente o supera lo formulado"
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var in dto.CreateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.WarehouseID == "" || in.PatientID == "" || len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "warehouse_id, patient_id e items son requeridos")
	}
	out, err := h.deliveryUC.Create(c.UserContext(), orgID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	out, err := h.deliveryUC.GetByID(c.UserContext(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Dispensario"
// @Param        patient_id    query  string  false  "Paciente"
// @Param        from          query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200           {object}  dto.DeliveryListResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	from, to, err := dateRangeQuery(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", "from/to deben tener formato YYYY-MM-DD")
	}
	p := pageFromQuery(c)
	f := repository.DeliveryFilter{
		WarehouseID: c.Query("warehouse_id"),
		PatientID:   c.Query("patient_id"),
		From:        from,
		To:          to,
	}
	out, err := h.deliveryUC.List(c.UserContext(), orgID, f, p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateReturn godoc
// @Summary      Registrar devolución de un paciente
// @Description  Reingresa al dispensario de la entrega original al costo con que se entregó.
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "Devolución"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "supera lo entregado"
// @Router       /api/returns [post]
func (h *DeliveryHandler) CreateReturn(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.DeliveryID == "" || len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "delivery_id e items son requeridos")
	}
	out, err := h.returnUC.Create(c.UserContext(), orgID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetReturn godoc
// @Summary      Obtener devolución
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{id} [get]
func (h *DeliveryHandler) GetReturn(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	out, err := h.returnUC.GetByID(c.UserContext(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListReturns godoc
// @Summary      Devoluciones de una entrega
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {array}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/returns [get]
func (h *DeliveryHandler) ListReturns(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	out, err := h.returnUC.ListByDelivery(c.UserContext(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
