package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appanalytics "github.com/jhoicas/farmacia-api/internal/application/analytics"
	"github.com/jhoicas/farmacia-api/internal/application/auth"
	"github.com/jhoicas/farmacia-api/internal/application/dispensing"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/application/purchasing"
	"github.com/jhoicas/farmacia-api/internal/application/reports"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/muv"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/siigo"
	httpRouter "github.com/jhoicas/farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/farmacia-api/pkg/config"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

// loadConfig carga y valida la configuración e instala el logger global.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuración inválida: %w", err)
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	return cfg, log, nil
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return pool, nil
}

// buildDeps arma repositorios y casos de uso sobre el pool.
func buildDeps(pool *pgxpool.Pool, cfg *config.Config) httpRouter.RouterDeps {
	orgRepo := postgres.NewOrganizationRepository(pool)
	moduleRepo := postgres.NewModuleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	rxRepo := postgres.NewPrescriptionRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	receiptRepo := postgres.NewPurchaseReceiptRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	scoreRepo := postgres.NewSupplierScoreRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	rotationRepo := postgres.NewRotationRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	alertUC := inventory.NewAlertUseCase(rotationRepo, warehouseRepo, rxRepo, inventory.AlertWindow{
		Days:  cfg.Alerts.WindowDays,
		Weeks: cfg.Alerts.WeeksInWindow,
	})

	// Sin MUV_BASE_URL el envío queda deshabilitado y responde 503.
	var muvClient reports.MUVClient
	if c := muv.NewClient(cfg.MUV); c != nil {
		muvClient = c
	}
	ripsUC := reports.NewRIPSUseCase(reportRepo, orgRepo)

	return httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(userRepo, orgRepo, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		OrganizationUC: usecase.NewOrganizationUseCase(orgRepo),
		ModuleService:  usecase.NewModuleService(moduleRepo),
		UserUC:         usecase.NewUserUseCase(userRepo),
		WarehouseUC:    usecase.NewWarehouseUseCase(warehouseRepo),
		ProductUC:      usecase.NewProductUseCase(productRepo),
		PatientUC:      usecase.NewPatientUseCase(patientRepo),

		RegisterMovement: inventory.NewRegisterMovementUseCase(txRunner, productRepo, warehouseRepo),
		StockUC:          inventory.NewStockUseCase(stockRepo, movementRepo, warehouseRepo),
		TransferUC:       inventory.NewTransferUseCase(txRunner, transferRepo, productRepo, warehouseRepo),
		AlertUC:          alertUC,

		PrescriptionUC: dispensing.NewPrescriptionUseCase(txRunner, rxRepo, patientRepo, productRepo),
		DeliveryUC:     dispensing.NewDeliveryUseCase(txRunner, deliveryRepo, warehouseRepo, patientRepo, productRepo, rxRepo),
		ReturnUC:       dispensing.NewReturnUseCase(txRunner, returnRepo, deliveryRepo, warehouseRepo),

		SupplierUC: purchasing.NewSupplierUseCase(supplierRepo),
		QuoteUC:    purchasing.NewQuoteUseCase(quoteRepo, supplierRepo, productRepo, scoreRepo),
		ScoringUC:  purchasing.NewScoringUseCase(txRunner, supplierRepo, scoreRepo),
		ReceiptUC:  purchasing.NewReceiptUseCase(txRunner, receiptRepo, supplierRepo, warehouseRepo, productRepo),

		DashboardUC:   appanalytics.NewDashboardUseCase(analyticsRepo, rxRepo, alertUC),
		ConsumptionUC: appanalytics.NewConsumptionUseCase(analyticsRepo),

		RIPSUC:  ripsUC,
		MUVUC:   reports.NewMUVUseCase(ripsUC, muvClient),
		SiigoUC: reports.NewSiigoUseCase(reportRepo, siigo.NewExporter()),

		JWTSecret: cfg.JWT.Secret,
	}
}
