package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/purchasing"
)

// PurchasingHandler maneja proveedores, cotizaciones, calificación y recepciones de compra.
type PurchasingHandler struct {
	supplierUC *purchasing.SupplierUseCase
	quoteUC    *purchasing.QuoteUseCase
	scoringUC  *purchasing.ScoringUseCase
	receiptUC  *purchasing.ReceiptUseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(
	supplierUC *purchasing.SupplierUseCase,
	quoteUC *purchasing.QuoteUseCase,
	scoringUC *purchasing.ScoringUseCase,
	receiptUC *purchasing.ReceiptUseCase,
) *PurchasingHandler {
	return &PurchasingHandler{supplierUC: supplierUC, quoteUC: quoteUC, scoringUC: scoringUC, receiptUC: receiptUC}
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor (NIT con dígito de verificación)"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *PurchasingHandler) CreateSupplier(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" || in.NIT == "" {
		return badRequest(c, "VALIDATION", "name y nit son requeridos")
	}
	out, err := h.supplierUC.Create(c.UserContext(), orgID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSupplier godoc
// @Summary      Obtener proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *PurchasingHandler) GetSupplier(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	out, err := h.supplierUC.GetByID(c.UserContext(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSupplier godoc
// @Summary      Actualizar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.UpdateSupplierRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *PurchasingHandler) UpdateSupplier(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var in dto.UpdateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.supplierUC.Update(c.UserContext(), orgID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activos"
// @Param        limit   query  int   false  "Límite"  default(20)
// @Param        offset  query  int   false  "Offset"  default(0)
// @Success      200     {object}  dto.SupplierListResponse
// @Router       /api/suppliers [get]
func (h *PurchasingHandler) ListSuppliers(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	p := pageFromQuery(c)
	out, err := h.supplierUC.List(c.UserContext(), orgID, c.QueryBool("active", false), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateQuote godoc
// @Summary      Registrar cotización de proveedor
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuoteRequest  true  "Cotización"
// @Success      201   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotes [post]
func (h *PurchasingHandler) CreateQuote(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.quoteUC.Create(c.UserContext(), orgID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CompareQuotes godoc
// @Summary      Comparar cotizaciones vigentes de un producto
// @Description  Ordena por precio neto ascendente y, en empate, por puntaje del proveedor.
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "Producto"
// @Success      200  {object}  dto.QuoteComparisonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/compare [get]
func (h *PurchasingHandler) CompareQuotes(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	productID := c.Query("product_id")
	if productID == "" {
		return badRequest(c, "VALIDATION", "product_id es requerido")
	}
	out, err := h.quoteUC.CompareQuotes(c.UserContext(), orgID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSupplierScore godoc
// @Summary      Calificar una transacción con el proveedor
// @Description  Cada eje informado se mezcla 70/30 con el valor anterior; el global se recalcula.
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSupplierScoreRequest  true  "supplierId o supplier_id y al menos una señal"
// @Success      200   {object}  dto.SupplierScoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotes/recommendations [post]
func (h *PurchasingHandler) UpdateSupplierScore(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var in dto.UpdateSupplierScoreRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Supplier() == "" {
		return badRequest(c, "VALIDATION", "supplierId es requerido")
	}
	out, err := h.scoringUC.UpdateSupplierScore(c.UserContext(), orgID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetRecommendations godoc
// @Summary      Recomendaciones de proveedores
// @Description  Proveedores activos con su calificación, nivel, fortalezas y debilidades.
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SupplierRecommendationsResponse
// @Router       /api/quotes/recommendations [get]
func (h *PurchasingHandler) GetRecommendations(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	out, err := h.scoringUC.GetSupplierRecommendations(c.UserContext(), orgID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateReceipt godoc
// @Summary      Registrar recepción de compra
// @Description  Ingresa el inventario con costo promedio ponderado.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseReceiptRequest  true  "Factura recibida"
// @Success      201   {object}  dto.PurchaseReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchasingHandler) CreateReceipt(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	var in dto.CreatePurchaseReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.receiptUC.Create(c.UserContext(), orgID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetReceipt godoc
// @Summary      Obtener recepción de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.PurchaseReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchasingHandler) GetReceipt(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	out, err := h.receiptUC.GetByID(c.UserContext(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListReceipts godoc
// @Summary      Listar recepciones de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.PurchaseReceiptListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *PurchasingHandler) ListReceipts(c *fiber.Ctx) error {
	orgID, ok := requireOrganization(c)
	if !ok {
		return nil
	}
	from, to, err := dateRangeQuery(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", "from/to deben tener formato YYYY-MM-DD")
	}
	p := pageFromQuery(c)
	out, err := h.receiptUC.List(c.UserContext(), orgID, from, to, p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
