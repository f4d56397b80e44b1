package purchasing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/internal/domain/scoring"
)

var hundred = decimal.NewFromInt(100)

// QuoteUseCase registro y comparación de cotizaciones.
type QuoteUseCase struct {
	quoteRepo    repository.QuoteRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	scoreRepo    repository.SupplierScoreRepository
	now          func() time.Time
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	quoteRepo repository.QuoteRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	scoreRepo repository.SupplierScoreRepository,
) *QuoteUseCase {
	return &QuoteUseCase{
		quoteRepo:    quoteRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		scoreRepo:    scoreRepo,
		now:          time.Now,
	}
}

// Create registra la cotización de un proveedor activo para un producto.
func (uc *QuoteUseCase) Create(ctx context.Context, organizationID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if !in.UnitPrice.GreaterThan(decimal.Zero) ||
		in.DiscountPct.LessThan(decimal.Zero) || in.DiscountPct.GreaterThanOrEqual(hundred) {
		return nil, domain.ErrInvalidInput
	}
	validUntil, err := time.Parse("2006-01-02", in.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("%w: valid_until debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	// Vigente hasta el final del día indicado.
	validUntil = validUntil.Add(24*time.Hour - time.Nanosecond)

	s, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if !s.IsActive {
		return nil, fmt.Errorf("%w: el proveedor está inactivo", domain.ErrConflict)
	}
	p, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}

	q := &entity.Quote{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		SupplierID:     s.ID,
		ProductID:      p.ID,
		UnitPrice:      in.UnitPrice,
		DiscountPct:    in.DiscountPct,
		ValidUntil:     validUntil,
		CreatedAt:      uc.now(),
	}
	if err := uc.quoteRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return toQuoteResponse(q), nil
}

// CompareQuotes cotizaciones vigentes del producto ordenadas por precio neto
// ascendente y, en empate, por puntaje global del proveedor descendente.
func (uc *QuoteUseCase) CompareQuotes(ctx context.Context, organizationID, productID string) (*dto.QuoteComparisonResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	quotes, err := uc.quoteRepo.ListValidByProduct(ctx, organizationID, productID, uc.now())
	if err != nil {
		return nil, err
	}
	scores, err := uc.scoreRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.QuoteComparisonItem, 0, len(quotes))
	names := map[string]string{}
	for _, q := range quotes {
		name, ok := names[q.SupplierID]
		if !ok {
			s, err := uc.supplierRepo.GetByID(ctx, q.SupplierID)
			if err != nil {
				return nil, err
			}
			if s != nil {
				name = s.Name
			}
			names[q.SupplierID] = name
		}
		score := scores[q.SupplierID]
		if score == nil {
			score = scoring.NewScore(q.SupplierID)
		}
		items = append(items, dto.QuoteComparisonItem{
			QuoteResponse: *toQuoteResponse(q),
			SupplierName:  name,
			OverallScore:  score.Overall,
			Tier:          scoring.Tier(score.Overall),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if c := items[i].NetPrice.Cmp(items[j].NetPrice); c != 0 {
			return c < 0
		}
		return items[i].OverallScore > items[j].OverallScore
	})
	return &dto.QuoteComparisonResponse{ProductID: productID, Items: items}, nil
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		ID:          q.ID,
		SupplierID:  q.SupplierID,
		ProductID:   q.ProductID,
		UnitPrice:   q.UnitPrice,
		DiscountPct: q.DiscountPct,
		NetPrice:    q.NetPrice(),
		ValidUntil:  q.ValidUntil,
		CreatedAt:   q.CreatedAt,
	}
}
