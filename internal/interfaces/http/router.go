package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/farmacia-api/internal/application/analytics"
	"github.com/jhoicas/farmacia-api/internal/application/auth"
	"github.com/jhoicas/farmacia-api/internal/application/dispensing"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/application/purchasing"
	"github.com/jhoicas/farmacia-api/internal/application/reports"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganizationUC *usecase.OrganizationUseCase
	ModuleService  *usecase.ModuleService
	UserUC         *usecase.UserUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	ProductUC      *usecase.ProductUseCase
	PatientUC      *usecase.PatientUseCase

	RegisterMovement *inventory.RegisterMovementUseCase
	StockUC          *inventory.StockUseCase
	TransferUC       *inventory.TransferUseCase
	AlertUC          *inventory.AlertUseCase

	PrescriptionUC *dispensing.PrescriptionUseCase
	DeliveryUC     *dispensing.DeliveryUseCase
	ReturnUC       *dispensing.ReturnUseCase

	SupplierUC *purchasing.SupplierUseCase
	QuoteUC    *purchasing.QuoteUseCase
	ScoringUC  *purchasing.ScoringUseCase
	ReceiptUC  *purchasing.ReceiptUseCase

	DashboardUC   *appanalytics.DashboardUseCase
	ConsumptionUC *appanalytics.ConsumptionUseCase

	RIPSUC  *reports.RIPSUseCase
	MUVUC   *reports.MUVUseCase
	SiigoUC *reports.SiigoUseCase

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	allRoles := RequireRole(entity.RoleAdmin, entity.RoleRegente, entity.RoleAuxiliar)
	managers := RequireRole(entity.RoleAdmin, entity.RoleRegente)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Organizations (público: alta inicial del tenant)
	orgHandler := NewOrganizationHandler(deps.OrganizationUC, deps.ModuleService, deps.UserUC)
	orgs := api.Group("/organizations")
	orgs.Get("/", orgHandler.List)
	orgs.Post("/", orgHandler.Create)
	orgs.Get("/:id", orgHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/modules", allRoles, orgHandler.ListModules)
	protected.Put("/modules", adminOnly, orgHandler.ActivateModule)
	protected.Get("/users", adminOnly, orgHandler.ListUsers)
	protected.Get("/users/me", allRoles, orgHandler.Me)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", allRoles, warehouseHandler.List)
	warehouses.Get("/:id", allRoles, warehouseHandler.GetByID)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", managers, productHandler.Create)
	products.Get("/", allRoles, productHandler.List)
	products.Get("/:id", allRoles, productHandler.GetByID)
	products.Put("/:id", managers, productHandler.Update)

	patients := protected.Group("/patients")
	patientHandler := NewPatientHandler(deps.PatientUC)
	patients.Post("/", allRoles, patientHandler.Create)
	patients.Get("/", allRoles, patientHandler.List)
	patients.Get("/:id", allRoles, patientHandler.GetByID)
	patients.Put("/:id", allRoles, patientHandler.Update)

	// Inventario, traslados y alertas
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockUC, deps.TransferUC, deps.AlertUC)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", managers, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", allRoles, inventoryHandler.ListMovements)
	invGroup.Get("/stock", allRoles, inventoryHandler.ListStock)

	transfers := protected.Group("/transfers")
	transfers.Post("/", managers, inventoryHandler.CreateTransfer)
	transfers.Get("/", allRoles, inventoryHandler.ListTransfers)
	transfers.Get("/:id", allRoles, inventoryHandler.GetTransfer)

	protected.Get("/alerts", allRoles, inventoryHandler.GetAlerts)

	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC, deps.ConsumptionUC)
	protected.Get("/dashboard", allRoles, analyticsHandler.GetDashboard)
	protected.Get("/analytics/consumption", managers, analyticsHandler.GetConsumption)

	// Dispensación (módulo dispensing)
	dispensingModule := RequireModule(entity.ModuleDispensing, deps.ModuleService)
	prescriptionHandler := NewPrescriptionHandler(deps.PrescriptionUC)
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC, deps.ReturnUC)

	patients.Get("/:id/prescriptions", dispensingModule, allRoles, prescriptionHandler.ListByPatient)

	prescriptions := protected.Group("/prescriptions", dispensingModule)
	prescriptions.Post("/", allRoles, prescriptionHandler.Create)
	prescriptions.Get("/:id", allRoles, prescriptionHandler.GetByID)
	prescriptions.Post("/:id/cancel", managers, prescriptionHandler.Cancel)

	deliveries := protected.Group("/deliveries", dispensingModule)
	deliveries.Post("/", allRoles, deliveryHandler.Create)
	deliveries.Get("/", allRoles, deliveryHandler.List)
	deliveries.Get("/:id", allRoles, deliveryHandler.GetByID)
	deliveries.Get("/:id/returns", allRoles, deliveryHandler.ListReturns)

	returns := protected.Group("/returns", dispensingModule)
	returns.Post("/", allRoles, deliveryHandler.CreateReturn)
	returns.Get("/:id", allRoles, deliveryHandler.GetReturn)

	// Compras (módulo purchasing)
	purchasingModule := RequireModule(entity.ModulePurchasing, deps.ModuleService)
	purchasingHandler := NewPurchasingHandler(deps.SupplierUC, deps.QuoteUC, deps.ScoringUC, deps.ReceiptUC)

	suppliers := protected.Group("/suppliers", purchasingModule, managers)
	suppliers.Post("/", purchasingHandler.CreateSupplier)
	suppliers.Get("/", purchasingHandler.ListSuppliers)
	suppliers.Get("/:id", purchasingHandler.GetSupplier)
	suppliers.Put("/:id", purchasingHandler.UpdateSupplier)

	quotes := protected.Group("/quotes", purchasingModule, managers)
	quotes.Post("/", purchasingHandler.CreateQuote)
	quotes.Get("/compare", purchasingHandler.CompareQuotes)
	quotes.Get("/recommendations", purchasingHandler.GetRecommendations)
	quotes.Post("/recommendations", purchasingHandler.UpdateSupplierScore)

	purchases := protected.Group("/purchases", purchasingModule, managers)
	purchases.Post("/", purchasingHandler.CreateReceipt)
	purchases.Get("/", purchasingHandler.ListReceipts)
	purchases.Get("/:id", purchasingHandler.GetReceipt)

	// Reportes regulatorios y contables (módulo reports)
	reportHandler := NewReportHandler(deps.RIPSUC, deps.MUVUC, deps.SiigoUC)
	reportGroup := protected.Group("/reports", RequireModule(entity.ModuleReports, deps.ModuleService), managers)
	reportGroup.Get("/rips", reportHandler.GetRIPS)
	reportGroup.Post("/muv", reportHandler.SubmitMUV)
	reportGroup.Get("/siigo", reportHandler.ExportSiigo)
}
