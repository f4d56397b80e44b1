// Package analytics contiene los casos de uso del tablero principal y el
// reporte de consumo por producto.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // productos en el widget del dashboard

// AlertGenerator puerto hacia el generador de alertas de rotación.
type AlertGenerator interface {
	Generate(ctx context.Context, organizationID, warehouseID string) ([]entity.Alert, error)
}

// DashboardUseCase genera el resumen operativo del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository y PrescriptionRepository (read-only) y
// el generador de alertas, que se recalcula en cada consulta.
type DashboardUseCase struct {
	analyticsRepo    repository.AnalyticsRepository
	prescriptionRepo repository.PrescriptionRepository
	alerts           AlertGenerator
	now              func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	prescriptionRepo repository.PrescriptionRepository,
	alerts AlertGenerator,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo:    analyticsRepo,
		prescriptionRepo: prescriptionRepo,
		alerts:           alerts,
		now:              time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO de la organización.
//
// Seis consultas en paralelo:
//  1. CountPatients
//  2. CountOpen (fórmulas pendientes o parciales)
//  3. CountDeliveries(hoy)
//  4. CountDeliveries(mes)
//  5. TopDispensed(mes, top 5)
//  6. Alertas de rotación de todos los dispensarios
func (uc *DashboardUseCase) GetSummary(ctx context.Context, organizationID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type countResult struct {
		n   int
		err error
	}
	type topResult struct {
		rows []repository.DispensedProduct
		err  error
	}
	type alertsResult struct {
		alerts []entity.Alert
		err    error
	}

	patientsCh := make(chan countResult, 1)
	openCh := make(chan countResult, 1)
	todayCh := make(chan countResult, 1)
	monthCh := make(chan countResult, 1)
	topCh := make(chan topResult, 1)
	alertsCh := make(chan alertsResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountPatients(ctx, organizationID)
		patientsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.prescriptionRepo.CountOpen(ctx, organizationID)
		openCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountDeliveries(ctx, organizationID, todayStart, todayEnd)
		todayCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountDeliveries(ctx, organizationID, monthStart, todayEnd)
		monthCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.TopDispensed(ctx, organizationID, monthStart, todayEnd, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		alerts, err := uc.alerts.Generate(ctx, organizationID, "")
		alertsCh <- alertsResult{alerts, err}
	}()

	patients := <-patientsCh
	open := <-openCh
	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	alerts := <-alertsCh

	if patients.err != nil {
		return nil, fmt.Errorf("dashboard: pacientes: %w", patients.err)
	}
	if open.err != nil {
		return nil, fmt.Errorf("dashboard: fórmulas pendientes: %w", open.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: entregas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: entregas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if alerts.err != nil {
		return nil, fmt.Errorf("dashboard: alertas: %w", alerts.err)
	}

	products := make([]dto.TopProductDTO, 0, len(top.rows))
	for _, r := range top.rows {
		products = append(products, dto.TopProductDTO{
			ProductID:   r.ProductID,
			CUM:         r.CUM,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			Deliveries:  r.Deliveries,
		})
	}
	list := alerts.alerts
	if list == nil {
		list = []entity.Alert{}
	}

	return &dto.DashboardSummaryDTO{
		Patients:          patients.n,
		OpenPrescriptions: open.n,
		DeliveriesToday:   today.n,
		DeliveriesMonth:   month.n,
		TopProducts:       products,
		Alerts:            list,
		DateLabel:         monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
