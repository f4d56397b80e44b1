package purchasing

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/internal/domain/scoring"
)

// ScoringUseCase calificación incremental de proveedores y recomendaciones.
type ScoringUseCase struct {
	txRunner     inventory.TxRunner
	supplierRepo repository.SupplierRepository
	scoreRepo    repository.SupplierScoreRepository
	now          func() time.Time
}

// NewScoringUseCase construye el caso de uso.
func NewScoringUseCase(
	txRunner inventory.TxRunner,
	supplierRepo repository.SupplierRepository,
	scoreRepo repository.SupplierScoreRepository,
) *ScoringUseCase {
	return &ScoringUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		scoreRepo:    scoreRepo,
		now:          time.Now,
	}
}

// UpdateSupplierScore aplica las señales de una transacción a la calificación
// del proveedor; si no existe se crea con 50 en cada eje.
func (uc *ScoringUseCase) UpdateSupplierScore(ctx context.Context, organizationID string, in dto.UpdateSupplierScoreRequest) (*dto.SupplierScoreResponse, error) {
	supplierID := in.Supplier()
	m := scoring.Metrics{
		PriceCompetitive:   in.PriceCompetitive,
		DeliveredOnTime:    in.DeliveredOnTime,
		QualityOK:          in.QualityOK,
		PaymentScore:       in.PaymentScore,
		DiscountScore:      in.DiscountScore,
		CommunicationScore: in.CommunicationScore,
	}
	if supplierID == "" || m.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}

	var out *entity.SupplierScore
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		score, err := repos.Scores.GetForUpdate(ctx, supplierID)
		if err != nil {
			return err
		}
		if score == nil {
			score = scoring.NewScore(supplierID)
		}
		scoring.Apply(score, m, uc.now())
		out = score
		return repos.Scores.Upsert(ctx, score)
	})
	if err != nil {
		return nil, err
	}
	return toScoreResponse(out), nil
}

// GetSupplierRecommendations proveedores activos con su nivel, fortalezas y
// debilidades, ordenados por puntaje global descendente y luego por nombre.
func (uc *ScoringUseCase) GetSupplierRecommendations(ctx context.Context, organizationID string) (*dto.SupplierRecommendationsResponse, error) {
	suppliers, err := uc.supplierRepo.List(ctx, organizationID, true, 0, 0)
	if err != nil {
		return nil, err
	}
	scores, err := uc.scoreRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SupplierRecommendation, 0, len(suppliers))
	for _, s := range suppliers {
		score := scores[s.ID]
		if score == nil {
			score = scoring.NewScore(s.ID)
		}
		pros, cons := scoring.ProsCons(score)
		items = append(items, dto.SupplierRecommendation{
			SupplierID:     s.ID,
			SupplierName:   s.Name,
			Score:          *toScoreResponse(score),
			Tier:           scoring.Tier(score.Overall),
			Recommendation: scoring.RecommendationText(score),
			Pros:           pros,
			Cons:           cons,
			HasHistory:     score.TotalOrders > 0,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score.OverallScore != items[j].Score.OverallScore {
			return items[i].Score.OverallScore > items[j].Score.OverallScore
		}
		return items[i].SupplierName < items[j].SupplierName
	})
	return &dto.SupplierRecommendationsResponse{Items: items}, nil
}

func toScoreResponse(s *entity.SupplierScore) *dto.SupplierScoreResponse {
	return &dto.SupplierScoreResponse{
		SupplierID:       s.SupplierID,
		PriceScore:       s.Price,
		DeliveryScore:    s.Delivery,
		QualityScore:     s.Quality,
		PaymentScore:     s.Payment,
		DiscountScore:    s.Discount,
		TrackingScore:    s.Tracking,
		OverallScore:     s.Overall,
		TotalOrders:      s.TotalOrders,
		OnTimeDeliveries: s.OnTimeDeliveries,
		UpdatedAt:        s.UpdatedAt,
	}
}
