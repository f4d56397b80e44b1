package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

const (
	defaultTopN     = 20
	maxTopN         = 200
	paretoThreshold = 80 // el top de productos que concentra ~80% de las unidades dispensadas
)

var (
	hundred  = decimal.NewFromInt(100)
	pareto80 = decimal.NewFromInt(paretoThreshold)
)

// ConsumptionUseCase ranking de productos dispensados con análisis Pareto.
type ConsumptionUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewConsumptionUseCase construye el caso de uso.
func NewConsumptionUseCase(analyticsRepo repository.AnalyticsRepository) *ConsumptionUseCase {
	return &ConsumptionUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetReport genera el reporte de consumo para un período.
func (uc *ConsumptionUseCase) GetReport(ctx context.Context, organizationID string, req dto.ConsumptionReportRequest) (*dto.ConsumptionReportDTO, error) {
	start, end, err := parsePeriod(uc.now(), req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	rows, err := uc.analyticsRepo.TopDispensed(ctx, organizationID, start, end, topN)
	if err != nil {
		return nil, fmt.Errorf("analytics: consumo: %w", err)
	}
	ranking, total := buildRanking(rows)

	pareto := make([]dto.ConsumptionRankingDTO, 0)
	for _, r := range ranking {
		if r.IsTopPareto {
			pareto = append(pareto, r)
		}
	}
	return &dto.ConsumptionReportDTO{
		Period: dto.PeriodDTO{
			StartDate: start.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
		},
		TotalUnits:     total,
		Ranking:        ranking,
		ParetoProducts: pareto,
	}, nil
}

// buildRanking asigna posición, participación y acumulado. El producto que cruza
// el umbral del 80% se incluye en el Pareto.
func buildRanking(rows []repository.DispensedProduct) ([]dto.ConsumptionRankingDTO, decimal.Decimal) {
	var total decimal.Decimal
	for _, r := range rows {
		total = total.Add(r.Quantity)
	}
	ranking := make([]dto.ConsumptionRankingDTO, 0, len(rows))
	var cumulative decimal.Decimal
	for i, r := range rows {
		share := decimal.Zero
		if total.IsPositive() {
			share = r.Quantity.Div(total).Mul(hundred).Round(2)
		}
		before := cumulative
		cumulative = cumulative.Add(share)
		ranking = append(ranking, dto.ConsumptionRankingDTO{
			Rank:          i + 1,
			ProductID:     r.ProductID,
			CUM:           r.CUM,
			ProductName:   r.ProductName,
			Quantity:      r.Quantity,
			Deliveries:    r.Deliveries,
			SharePct:      share,
			CumulativePct: cumulative.Round(2),
			IsTopPareto:   before.LessThan(pareto80),
		})
	}
	return ranking, total
}

// parsePeriod convierte las fechas YYYY-MM-DD; vacías usan el mes en curso hasta hoy.
func parsePeriod(now time.Time, startStr, endStr string) (start, end time.Time, err error) {
	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date inválido: %w", err)
		}
		end = end.Add(24*time.Hour - time.Nanosecond) // inclusive hasta el final del día
	}

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	} else {
		start, err = time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start_date inválido: %w", err)
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date no puede ser posterior a end_date")
	}
	return start, end, nil
}
