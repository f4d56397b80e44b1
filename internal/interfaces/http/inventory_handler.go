package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// InventoryHandler maneja stock, kardex, traslados y alertas de rotación (protegido).
type InventoryHandler struct {
	movementUC *inventory.RegisterMovementUseCase
	stockUC    *inventory.StockUseCase
	transferUC *inventory.TransferUseCase
	alertUC    *inventory.AlertUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movementUC *inventory.RegisterMovementUseCase,
	stockUC *inventory.StockUseCase,
	transferUC *inventory.TransferUseCase,
	alertUC *inventory.AlertUseCase,
) *InventoryHandler {
	return &InventoryHandler{movementUC: movementUC, stockUC: stockUC, transferUC: transferUC, alertUC: alertUC}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, warehouse_id, type (IN | OUT | ADJUSTMENT), quantity, unit_cost (entradas)"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.movementUC.RegisterMovementFromRequest(c.UserContext(), orgID, GetUserID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "movimiento registrado"})
}

// ListStock godoc
// @Summary      Stock de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "Bodega o dispensario"
// @Success      200  {object}  dto.StockListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return badRequest(c, "VALIDATION", "warehouse_id es requerido")
	}
	out, err := h.stockUC.ListStock(c.UserContext(), orgID, warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Kardex de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "Bodega o dispensario"
// @Param        from          query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return badRequest(c, "VALIDATION", "warehouse_id es requerido")
	}
	from, to, err := dateRangeQuery(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", "from/to deben tener formato YYYY-MM-DD")
	}
	p := pageFromQuery(c)
	out, err := h.stockUC.ListMovements(c.UserContext(), orgID, warehouseID, from, to, p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateTransfer godoc
// @Summary      Trasladar medicamentos entre bodegas
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Traslado"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *InventoryHandler) CreateTransfer(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.transferUC.Create(c.UserContext(), orgID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetTransfer godoc
// @Summary      Obtener traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *InventoryHandler) GetTransfer(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	out, err := h.transferUC.GetByID(c.UserContext(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListTransfers godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.TransferListResponse
// @Router       /api/transfers [get]
func (h *InventoryHandler) ListTransfers(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	p := pageFromQuery(c)
	out, err := h.transferUC.List(c.UserContext(), orgID, p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetAlerts godoc
// @Summary      Alertas de rotación
// @Description  Compara el stock de cada dispensario con la rotación semanal de los últimos 28 días.
// @Description  warning = hay existencias en bodega (trasladar); danger = se debe comprar.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Solo este dispensario"
// @Success      200  {object}  dto.AlertListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *InventoryHandler) GetAlerts(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	alerts, err := h.alertUC.Generate(c.UserContext(), orgID, c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	if alerts == nil {
		alerts = []entity.Alert{}
	}
	return c.JSON(dto.AlertListResponse{
		Total:       len(alerts),
		Alerts:      alerts,
		GeneratedAt: time.Now(),
	})
}
