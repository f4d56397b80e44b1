package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/internal/domain/rotation"
)

// AlertWindow ventana de consumo usada para la rotación semanal.
type AlertWindow struct {
	Days  int
	Weeks int
}

// DefaultAlertWindow 28 días / 4 semanas.
func DefaultAlertWindow() AlertWindow {
	return AlertWindow{Days: rotation.DefaultWindowDays, Weeks: rotation.DefaultWeeksInWindow}
}

// AlertUseCase genera las alertas de reposición. Solo lectura; se recalcula en cada consulta.
type AlertUseCase struct {
	rotationRepo     repository.RotationRepository
	warehouseRepo    repository.WarehouseRepository
	prescriptionRepo repository.PrescriptionRepository
	window           AlertWindow
	now              func() time.Time
}

// NewAlertUseCase construye el caso de uso. Valores no positivos de la ventana usan el default.
func NewAlertUseCase(
	rotationRepo repository.RotationRepository,
	warehouseRepo repository.WarehouseRepository,
	prescriptionRepo repository.PrescriptionRepository,
	window AlertWindow,
) *AlertUseCase {
	def := DefaultAlertWindow()
	if window.Days <= 0 {
		window.Days = def.Days
	}
	if window.Weeks <= 0 {
		window.Weeks = def.Weeks
	}
	return &AlertUseCase{
		rotationRepo:     rotationRepo,
		warehouseRepo:    warehouseRepo,
		prescriptionRepo: prescriptionRepo,
		window:           window,
		now:              time.Now,
	}
}

// Generate alertas de rotación de todos los dispensarios activos, o solo del
// indicado, más una alerta informativa si hay fórmulas pendientes.
func (uc *AlertUseCase) Generate(ctx context.Context, organizationID, warehouseID string) ([]entity.Alert, error) {
	if warehouseID != "" {
		wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil || wh.OrganizationID != organizationID {
			return nil, domain.ErrNotFound
		}
		if !wh.IsDispensary() {
			return nil, domain.ErrInvalidWarehouseType
		}
		if !wh.IsActive {
			return []entity.Alert{}, nil
		}
	}

	since := uc.now().AddDate(0, 0, -uc.window.Days)
	rows, err := uc.rotationRepo.ConsumptionSince(ctx, organizationID, warehouseID, since)
	if err != nil {
		return nil, fmt.Errorf("alertas: consumo: %w", err)
	}
	supply, err := uc.rotationRepo.SupplyStock(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("alertas: stock en bodegas: %w", err)
	}
	alerts := rotation.Evaluate(rows, supply, uc.window.Weeks)

	open, err := uc.prescriptionRepo.CountOpen(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("alertas: fórmulas pendientes: %w", err)
	}
	if a, ok := rotation.PendingPrescriptionsAlert(open); ok {
		alerts = append(alerts, a)
	}
	return alerts, nil
}
