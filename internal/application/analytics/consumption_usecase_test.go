package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

func TestBuildRanking_Pareto(t *testing.T) {
	rows := []repository.DispensedProduct{
		{ProductID: "a", Quantity: decimal.NewFromInt(50)},
		{ProductID: "b", Quantity: decimal.NewFromInt(30)},
		{ProductID: "c", Quantity: decimal.NewFromInt(15)},
		{ProductID: "d", Quantity: decimal.NewFromInt(5)},
	}
	ranking, total := buildRanking(rows)

	assert.True(t, total.Equal(decimal.NewFromInt(100)))
	require.Len(t, ranking, 4)
	assert.Equal(t, 1, ranking[0].Rank)
	assert.True(t, ranking[1].CumulativePct.Equal(decimal.NewFromInt(80)))
	assert.True(t, ranking[0].IsTopPareto)
	assert.True(t, ranking[1].IsTopPareto, "el producto que alcanza el 80% se incluye")
	assert.False(t, ranking[2].IsTopPareto)
	assert.False(t, ranking[3].IsTopPareto)
}

func TestBuildRanking_Vacio(t *testing.T) {
	ranking, total := buildRanking(nil)
	assert.NotNil(t, ranking)
	assert.True(t, total.IsZero())
}

func TestParsePeriod(t *testing.T) {
	now := time.Date(2026, time.May, 20, 15, 0, 0, 0, time.UTC)

	start, end, err := parsePeriod(now, "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, now, end)

	_, end, err = parsePeriod(now, "2026-04-01", "2026-04-30")
	require.NoError(t, err)
	assert.Equal(t, 30, end.Day())
	assert.Equal(t, 23, end.Hour())

	_, _, err = parsePeriod(now, "2026-04-30", "2026-04-01")
	assert.Error(t, err)
	_, _, err = parsePeriod(now, "30/04/2026", "")
	assert.Error(t, err)
}

func TestGetReport_FechaInvalida(t *testing.T) {
	uc := NewConsumptionUseCase(memstore.New().Analytics())
	_, err := uc.GetReport(context.Background(), "org-1", dto.ConsumptionReportRequest{StartDate: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetReport_RankingDelPeriodo(t *testing.T) {
	s := memstore.New()
	a := s.SeedProduct("org-1", "1", "Acetaminofén", decimal.NewFromInt(1))
	b := s.SeedProduct("org-1", "2", "Ibuprofeno", decimal.NewFromInt(1))
	at := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.Local)
	seedDelivery(s, "d1", a.ID, 90, at)
	seedDelivery(s, "d2", b.ID, 10, at)

	uc := NewConsumptionUseCase(s.Analytics())
	out, err := uc.GetReport(context.Background(), "org-1", dto.ConsumptionReportRequest{StartDate: "2026-04-01", EndDate: "2026-04-30"})
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01", out.Period.StartDate)
	require.Len(t, out.Ranking, 2)
	assert.Equal(t, a.ID, out.Ranking[0].ProductID)
	require.Len(t, out.ParetoProducts, 1)
	assert.True(t, out.TotalUnits.Equal(decimal.NewFromInt(100)))
}
