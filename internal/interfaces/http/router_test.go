package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/farmacia-api/internal/application/analytics"
	"github.com/jhoicas/farmacia-api/internal/application/auth"
	"github.com/jhoicas/farmacia-api/internal/application/dispensing"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/application/purchasing"
	"github.com/jhoicas/farmacia-api/internal/application/reports"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/siigo"
	apphttp "github.com/jhoicas/farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/farmacia-api/pkg/jwt"
)

// newRouterApp arma la API completa sobre un memstore, sin cliente MUV.
func newRouterApp(s *memstore.Store) *fiber.App {
	alertUC := inventory.NewAlertUseCase(s.Rotation(), s.Warehouses(), s.Prescriptions(), inventory.DefaultAlertWindow())
	ripsUC := reports.NewRIPSUseCase(s.Reports(), s.Organizations())
	deps := apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(s.Users(), s.Organizations(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		OrganizationUC:   usecase.NewOrganizationUseCase(s.Organizations()),
		ModuleService:    usecase.NewModuleService(s.Modules()),
		UserUC:           usecase.NewUserUseCase(s.Users()),
		WarehouseUC:      usecase.NewWarehouseUseCase(s.Warehouses()),
		ProductUC:        usecase.NewProductUseCase(s.Products()),
		PatientUC:        usecase.NewPatientUseCase(s.Patients()),
		RegisterMovement: inventory.NewRegisterMovementUseCase(s, s.Products(), s.Warehouses()),
		StockUC:          inventory.NewStockUseCase(s.Stock(), s.Movements(), s.Warehouses()),
		TransferUC:       inventory.NewTransferUseCase(s, s.Transfers(), s.Products(), s.Warehouses()),
		AlertUC:          alertUC,
		PrescriptionUC:   dispensing.NewPrescriptionUseCase(s, s.Prescriptions(), s.Patients(), s.Products()),
		DeliveryUC:       dispensing.NewDeliveryUseCase(s, s.Deliveries(), s.Warehouses(), s.Patients(), s.Products(), s.Prescriptions()),
		ReturnUC:         dispensing.NewReturnUseCase(s, s.Returns(), s.Deliveries(), s.Warehouses()),
		SupplierUC:       purchasing.NewSupplierUseCase(s.Suppliers()),
		QuoteUC:          purchasing.NewQuoteUseCase(s.Quotes(), s.Suppliers(), s.Products(), s.Scores()),
		ScoringUC:        purchasing.NewScoringUseCase(s, s.Suppliers(), s.Scores()),
		ReceiptUC:        purchasing.NewReceiptUseCase(s, s.Receipts(), s.Suppliers(), s.Warehouses(), s.Products()),
		DashboardUC:      appanalytics.NewDashboardUseCase(s.Analytics(), s.Prescriptions(), alertUC),
		ConsumptionUC:    appanalytics.NewConsumptionUseCase(s.Analytics()),
		RIPSUC:           ripsUC,
		MUVUC:            reports.NewMUVUseCase(ripsUC, nil),
		SiigoUC:          reports.NewSiigoUseCase(s.Reports(), siigo.NewExporter()),
		JWTSecret:        testJWTSecret,
	}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger())
	apphttp.Router(app, deps)
	return app
}

func activateModule(t *testing.T, s *memstore.Store, orgID, module string) {
	t.Helper()
	require.NoError(t, s.Modules().Upsert(context.Background(), &entity.OrganizationModule{
		ID: uuid.New().String(), OrganizationID: orgID, ModuleName: module, IsActive: true, ActivatedAt: time.Now(),
	}))
}

func bearer(t *testing.T, orgID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, orgID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, path, authHeader string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestRouter_AlertasWarningYDanger(t *testing.T) {
	s := memstore.New()
	orgID := uuid.New().String()
	disp := s.SeedWarehouse(orgID, "Dispensario norte", entity.WarehouseTypeDispensario)
	bodega := s.SeedWarehouse(orgID, "Bodega central", entity.WarehouseTypeBodega)
	losartan := s.SeedProduct(orgID, "19900001-1", "Losartán 50 mg", decimal.NewFromInt(100))
	insulina := s.SeedProduct(orgID, "19900002-1", "Insulina glargina", decimal.NewFromInt(900))

	// 40 unidades en 28 días: rotación semanal 10 para ambos.
	for _, p := range []*entity.Product{losartan, insulina} {
		s.AddDelivery(entity.Delivery{
			ID: uuid.New().String(), OrganizationID: orgID, WarehouseID: disp.ID, PatientID: "p",
			DeliveredAt: time.Now().AddDate(0, 0, -5),
			Items:       []entity.DeliveryItem{{ID: uuid.New().String(), ProductID: p.ID, Quantity: decimal.NewFromInt(40)}},
		})
		s.SetStock(p.ID, disp.ID, decimal.NewFromInt(5))
	}
	s.SetStock(losartan.ID, bodega.ID, decimal.NewFromInt(200))

	app := newRouterApp(s)
	resp, body := call(t, app, http.MethodGet, "/api/alerts?warehouse_id="+disp.ID, bearer(t, orgID, entity.RoleAuxiliar), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out struct {
		Total  int `json:"total"`
		Alerts []struct {
			Type      string `json:"type"`
			Href      string `json:"href"`
			ProductID string `json:"product_id"`
		} `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, 2, out.Total)

	byProduct := map[string]string{}
	for _, a := range out.Alerts {
		byProduct[a.ProductID] = a.Type
	}
	assert.Equal(t, entity.AlertWarning, byProduct[losartan.ID])
	assert.Equal(t, entity.AlertDanger, byProduct[insulina.ID])
}

func TestRouter_AlertasDispensarioDeOtraOrganizacion_404(t *testing.T) {
	s := memstore.New()
	otra := s.SeedWarehouse(uuid.New().String(), "Ajeno", entity.WarehouseTypeDispensario)
	app := newRouterApp(s)

	resp, _ := call(t, app, http.MethodGet, "/api/alerts?warehouse_id="+otra.ID, bearer(t, uuid.New().String(), entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_CalificacionRequiereModuloCompras(t *testing.T) {
	s := memstore.New()
	orgID := uuid.New().String()
	sup := s.SeedSupplier(orgID, "Droguería Andina")
	app := newRouterApp(s)
	tok := bearer(t, orgID, entity.RoleRegente)
	payload := map[string]any{"supplierId": sup.ID, "priceCompetitive": true}

	resp, body := call(t, app, http.MethodPost, "/api/quotes/recommendations", tok, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "MODULE_DISABLED")

	activateModule(t, s, orgID, entity.ModulePurchasing)

	resp, body = call(t, app, http.MethodPost, "/api/quotes/recommendations", tok, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var score struct {
		SupplierID    string `json:"supplier_id"`
		PriceScore    int    `json:"price_score"`
		DeliveryScore int    `json:"delivery_score"`
		TotalOrders   int    `json:"total_orders"`
	}
	require.NoError(t, json.Unmarshal(body, &score))
	assert.Equal(t, sup.ID, score.SupplierID)
	assert.Equal(t, 65, score.PriceScore)
	assert.Equal(t, 50, score.DeliveryScore)
	assert.Equal(t, 1, score.TotalOrders)

	resp, body = call(t, app, http.MethodGet, "/api/quotes/recommendations", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var recs struct {
		Items []struct {
			SupplierID string `json:"supplier_id"`
			HasHistory bool   `json:"has_history"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &recs))
	require.Len(t, recs.Items, 1)
	assert.True(t, recs.Items[0].HasHistory)
}

func TestRouter_CalificacionSinSenales_400(t *testing.T) {
	s := memstore.New()
	orgID := uuid.New().String()
	sup := s.SeedSupplier(orgID, "Droguería Andina")
	activateModule(t, s, orgID, entity.ModulePurchasing)
	app := newRouterApp(s)

	resp, body := call(t, app, http.MethodPost, "/api/quotes/recommendations", bearer(t, orgID, entity.RoleAdmin),
		map[string]any{"supplier_id": sup.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestRouter_AuxiliarNoAccedeACompras(t *testing.T) {
	s := memstore.New()
	orgID := uuid.New().String()
	activateModule(t, s, orgID, entity.ModulePurchasing)
	app := newRouterApp(s)

	resp, _ := call(t, app, http.MethodGet, "/api/suppliers", bearer(t, orgID, entity.RoleAuxiliar), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_EntregaSinStock_409(t *testing.T) {
	s := memstore.New()
	orgID := uuid.New().String()
	activateModule(t, s, orgID, entity.ModuleDispensing)
	disp := s.SeedWarehouse(orgID, "Dispensario", entity.WarehouseTypeDispensario)
	prod := s.SeedProduct(orgID, "19900003-1", "Metformina 850 mg", decimal.NewFromInt(50))
	pat := s.SeedPatient(orgID, "1020304050")
	app := newRouterApp(s)

	resp, body := call(t, app, http.MethodPost, "/api/deliveries", bearer(t, orgID, entity.RoleAuxiliar), map[string]any{
		"warehouse_id": disp.ID,
		"patient_id":   pat.ID,
		"items":        []map[string]any{{"product_id": prod.ID, "quantity": "3"}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")
}

func TestRouter_EntregaDesdeBodega_400(t *testing.T) {
	s := memstore.New()
	orgID := uuid.New().String()
	activateModule(t, s, orgID, entity.ModuleDispensing)
	bodega := s.SeedWarehouse(orgID, "Bodega", entity.WarehouseTypeBodega)
	prod := s.SeedProduct(orgID, "19900004-1", "Acetaminofén 500 mg", decimal.NewFromInt(20))
	pat := s.SeedPatient(orgID, "1020304051")
	s.SetStock(prod.ID, bodega.ID, decimal.NewFromInt(100))
	app := newRouterApp(s)

	resp, body := call(t, app, http.MethodPost, "/api/deliveries", bearer(t, orgID, entity.RoleRegente), map[string]any{
		"warehouse_id": bodega.ID,
		"patient_id":   pat.ID,
		"items":        []map[string]any{{"product_id": prod.ID, "quantity": "1"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_WAREHOUSE_TYPE")
}

func TestRouter_StockDeBodega(t *testing.T) {
	s := memstore.New()
	orgID := uuid.New().String()
	disp := s.SeedWarehouse(orgID, "Dispensario", entity.WarehouseTypeDispensario)
	prod := s.SeedProduct(orgID, "19900005-1", "Enalapril 20 mg", decimal.NewFromInt(30))
	s.SetStock(prod.ID, disp.ID, decimal.NewFromInt(12))
	app := newRouterApp(s)

	resp, body := call(t, app, http.MethodGet, "/api/inventory/stock?warehouse_id="+disp.ID, bearer(t, orgID, entity.RoleAuxiliar), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), "Enalapril 20 mg")

	resp, _ = call(t, app, http.MethodGet, "/api/inventory/stock", bearer(t, orgID, entity.RoleAuxiliar), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_MUVDeshabilitado_503(t *testing.T) {
	s := memstore.New()
	orgID := uuid.New().String()
	activateModule(t, s, orgID, entity.ModuleReports)
	app := newRouterApp(s)

	resp, body := call(t, app, http.MethodPost, "/api/reports/muv", bearer(t, orgID, entity.RoleAdmin), map[string]any{
		"from": "2026-01-01", "to": "2026-01-31", "invoice_number": "FE-1", "xml_fev_base64": "PGE+PC9hPg==",
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), "MUV_DISABLED")
}

func TestRouter_ExportSiigoDevuelveXLSX(t *testing.T) {
	s := memstore.New()
	orgID := uuid.New().String()
	activateModule(t, s, orgID, entity.ModuleReports)
	app := newRouterApp(s)

	resp, body := call(t, app, http.MethodGet, "/api/reports/siigo?from=2026-01-01&to=2026-01-31", bearer(t, orgID, entity.RoleRegente), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "compras_siigo_20260101_20260131.xlsx")
	assert.NotEmpty(t, body)

	resp, _ = call(t, app, http.MethodGet, "/api/reports/siigo?from=2026-01-01", bearer(t, orgID, entity.RoleRegente), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_RequestIDEnRespuesta(t *testing.T) {
	app := newRouterApp(memstore.New())
	req := httptest.NewRequest(http.MethodGet, "/api/organizations", nil)
	req.Header.Set(apphttp.HeaderRequestID, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))
}

func TestRouter_SinTokenEnRutaProtegida_401(t *testing.T) {
	app := newRouterApp(memstore.New())
	resp, body := call(t, app, http.MethodGet, "/api/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRouter_RutaInexistente_404(t *testing.T) {
	app := newRouterApp(memstore.New())
	resp, body := call(t, app, http.MethodGet, "/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
}
